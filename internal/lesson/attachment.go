package lesson

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// MaxFileSize is the attach-time size limit for uploaded files (10 MB).
const MaxFileSize = 10 * 1024 * 1024

// AllowedMIMETypes is the allow-list of attachable document types.
var AllowedMIMETypes = []string{
	"application/pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
	"text/markdown",
}

// File is an attached document. Its content is read lazily, when the
// generation request is assembled.
type File struct {
	Name     string
	MIMEType string
	Size     int64

	open func() (io.ReadCloser, error)
}

// NewFile validates size and type and returns an attachable file.
// Rejected files produce an *AttachmentError.
func NewFile(name, mimeType string, size int64, open func() (io.ReadCloser, error)) (*File, error) {
	if size > MaxFileSize {
		return nil, &AttachmentError{
			Name:    name,
			Message: "הקובץ גדול מדי. הגודל המקסימלי הוא 10MB.",
		}
	}
	base := baseMIME(mimeType)
	if !allowedMIME(base) {
		return nil, &AttachmentError{
			Name:    name,
			Message: fmt.Sprintf("סוג הקובץ %q אינו נתמך. ניתן לצרף PDF, DOCX או קובץ טקסט.", base),
		}
	}
	return &File{Name: name, MIMEType: base, Size: size, open: open}, nil
}

// OpenFile stats and sniffs the file at path and returns it as an
// attachable File. The size limit is checked before any content is read.
func OpenFile(path string) (*File, error) {
	name := filepath.Base(path)
	info, err := os.Stat(path)
	if err != nil {
		return nil, &AttachmentError{Name: name, Message: "לא ניתן לקרוא את הקובץ.", Err: err}
	}
	if info.Size() > MaxFileSize {
		return nil, &AttachmentError{Name: name, Message: "הקובץ גדול מדי. הגודל המקסימלי הוא 10MB."}
	}
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, &AttachmentError{Name: name, Message: "לא ניתן לקרוא את הקובץ.", Err: err}
	}
	mt := detected.String()
	if filepath.Ext(path) == ".md" && detected.Is("text/plain") {
		mt = "text/markdown"
	}
	return NewFile(name, mt, info.Size(), func() (io.ReadCloser, error) {
		return os.Open(path)
	})
}

// FileFromBytes wraps in-memory content. The MIME type is sniffed from data.
func FileFromBytes(name string, data []byte) (*File, error) {
	mt := mimetype.Detect(data).String()
	return NewFile(name, mt, int64(len(data)), func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// Read returns the file content. Failures are reported as *AttachmentError.
func (f *File) Read() ([]byte, error) {
	if f.open == nil {
		return nil, &AttachmentError{Name: f.Name, Message: "לא ניתן לקרוא את הקובץ.", Err: fmt.Errorf("no content source")}
	}
	rc, err := f.open()
	if err != nil {
		return nil, &AttachmentError{Name: f.Name, Message: "לא ניתן לקרוא את הקובץ.", Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxFileSize+1))
	if err != nil {
		return nil, &AttachmentError{Name: f.Name, Message: "לא ניתן לקרוא את הקובץ.", Err: err}
	}
	if len(data) > MaxFileSize {
		return nil, &AttachmentError{Name: f.Name, Message: "הקובץ גדול מדי. הגודל המקסימלי הוא 10MB."}
	}
	return data, nil
}

func baseMIME(mt string) string {
	base, _, err := mime.ParseMediaType(mt)
	if err != nil {
		return mt
	}
	return base
}

func allowedMIME(mt string) bool {
	for _, a := range AllowedMIMETypes {
		if a == mt {
			return true
		}
	}
	return false
}
