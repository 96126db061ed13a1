package planner

import (
	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/llm"
)

// Request is an assembled generation request. It carries the values that
// are copied onto the plan after generation, so the generator never needs
// the form itself.
type Request struct {
	Instructions string
	Attachment   *llm.Attachment

	Topic      string
	Category   string
	UnitTopic  string
	GradeLevel string
	Duration   int
}

// FileGrounded reports whether the request carries a document the plan
// must be derived from.
func (r *Request) FileGrounded() bool {
	return r.Attachment != nil
}

// BuildRequest turns validated form state into a generation request. It
// makes no network calls. Reading the attached file may fail with an
// *lesson.AttachmentError.
func BuildRequest(form *lesson.FormData) (*Request, error) {
	req := &Request{
		Topic:      form.Topic,
		Category:   form.Category,
		UnitTopic:  form.UnitTopic,
		GradeLevel: form.GradeLevel,
		Duration:   lesson.ParseDuration(form.Duration),
	}

	if form.File != nil {
		data, err := form.File.Read()
		if err != nil {
			return nil, err
		}
		req.Attachment = &llm.Attachment{
			Name:     form.File.Name,
			MIMEType: form.File.MIMEType,
			Data:     data,
		}
	}

	req.Instructions = buildInstructions(form, req.FileGrounded())
	return req, nil
}

// message is the single user message sent for req.
func (r *Request) message() llm.Message {
	m := llm.Message{Role: llm.RoleUser, Content: r.Instructions}
	if r.Attachment != nil {
		m.Attachments = []llm.Attachment{*r.Attachment}
	}
	return m
}
