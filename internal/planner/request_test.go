package planner

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lessoncraft/internal/lesson"
)

func TestBuildRequest_FieldGroundedFallbacks(t *testing.T) {
	form := testForm()
	form.Objectives = "התלמידים יסבירו אידוי"
	form.Main.Screens = []lesson.ScreenInput{{Type: string(lesson.ScreenImage), Description: "ים וענן"}}

	req, err := BuildRequest(form)
	require.NoError(t, err)

	assert.False(t, req.FileGrounded())
	assert.Nil(t, req.Attachment)
	assert.Equal(t, 45, req.Duration)

	in := req.Instructions
	assert.NotContains(t, in, "אך ורק")
	assert.Contains(t, in, "מטרות למידה רצויות: התלמידים יסבירו אידוי")
	assert.Contains(t, in, "מושגי מפתח לכיסוי: "+inferFromTopic)
	assert.Contains(t, in, "מדדי הצלחה: "+notSpecified)
	assert.Contains(t, in, "סגנון הוראה מועדף: "+flexibleStyle)
	assert.Contains(t, in, "טון השיעור: "+neutralTone)
	assert.Contains(t, in, "מסך 1: תמונה - ים וענן")
	// The topic falls back to the unit topic in the instruction only.
	assert.Contains(t, in, "נושא השיעור: מחזור המים")
	assert.Equal(t, "", req.Topic)
}

func TestBuildRequest_EveryOptionalFieldNamed(t *testing.T) {
	req, err := BuildRequest(testForm())
	require.NoError(t, err)

	for _, label := range []string{
		"ידע קודם נדרש:",
		"מיקום השיעור ברצף התוכן:",
		"מטרות תוכן:",
		"מטרות מיומנות:",
		"תיאור כללי:",
		"מטרות למידה רצויות:",
		"מושגי מפתח לכיסוי:",
		"מדדי הצלחה:",
		"הנחיות הכללה והתאמה:",
		"רעיון לחוויה אימרסיבית:",
	} {
		line := lineWith(req.Instructions, label)
		if line == "" {
			t.Errorf("instruction is missing %q", label)
			continue
		}
		if strings.TrimSpace(strings.TrimPrefix(line, label)) == "" {
			t.Errorf("%q has no value or fallback", label)
		}
	}
}

func lineWith(s, prefix string) string {
	for _, l := range strings.Split(s, "\n") {
		if strings.HasPrefix(l, prefix) {
			return l
		}
	}
	return ""
}

func TestBuildRequest_FileGrounded(t *testing.T) {
	data := bytes.Repeat([]byte("פוטוסינתזה היא תהליך שבו צמחים מייצרים סוכר.\n"), 2*1024*1024/80)
	file, err := lesson.FileFromBytes("photosynthesis.txt", data)
	require.NoError(t, err)

	form := testForm()
	form.Topic = "Photosynthesis"
	form.Attach(file)

	req, err := BuildRequest(form)
	require.NoError(t, err)

	require.True(t, req.FileGrounded())
	assert.Equal(t, "text/plain", req.Attachment.MIMEType)
	assert.Equal(t, data, req.Attachment.Data)
	assert.Contains(t, req.Instructions, "אך ורק")
	assert.Contains(t, req.Instructions, "מטרות למידה רצויות: "+fromDocument)
	assert.Equal(t, "Photosynthesis", req.Topic)

	msg := req.message()
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "photosynthesis.txt", msg.Attachments[0].Name)
}

func TestBuildRequest_UnreadableFile(t *testing.T) {
	file, err := lesson.NewFile("gone.pdf", "application/pdf", 10, func() (io.ReadCloser, error) {
		return nil, errors.New("file was removed")
	})
	require.NoError(t, err)

	form := testForm()
	form.Attach(file)

	_, err = BuildRequest(form)
	var ae *lesson.AttachmentError
	require.True(t, errors.As(err, &ae), "got %v", err)
}
