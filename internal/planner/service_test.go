package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/llm"
)

func TestService_ValidationBeforeAnyCall(t *testing.T) {
	mock := mockFor(plainPlan(t))
	svc := NewService(mock, nil, DefaultConfig(), nil)

	form := testForm()
	form.UnitTopic = ""
	_, err := svc.Generate(context.Background(), form, Options{})

	var ve *lesson.ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Zero(t, mock.CallCount())
}

func TestService_GenerateWithImages(t *testing.T) {
	raw := rawPlan(t,
		part(screen(lesson.ScreenImage, "טיפה מתאדה")),
		part(screen(lesson.ScreenPresentation, "מצגת")),
		part(screen(lesson.ScreenImage, "ענן גשם")),
	)
	images := llm.NewMockImageGenerator()
	svc := NewService(mockFor(raw), images, DefaultConfig(), nil)

	plan, err := svc.Generate(context.Background(), testForm(), Options{Images: true})
	require.NoError(t, err)
	assert.Equal(t, 2, plan.ImageCount())
	assert.Equal(t, 2, images.CallCount())
	assert.Contains(t, images.Calls[0].Prompt, StyleFor("חטיבת ביניים"))
}

func TestService_StartConsume(t *testing.T) {
	svc := NewService(mockFor(plainPlan(t)), nil, DefaultConfig(), nil)

	_, done, _ := svc.Consume()
	assert.False(t, done)

	svc.Start(context.Background(), testForm(), Options{})

	var (
		plan *lesson.Plan
		err  error
	)
	require.Eventually(t, func() bool {
		var ok bool
		plan, ok, err = svc.Consume()
		return ok
	}, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "המסע של טיפת המים", plan.LessonTitle)

	_, done, _ = svc.Consume()
	assert.False(t, done, "result is consumed once")
}

func TestService_StartReportsFailure(t *testing.T) {
	svc := NewService(nil, nil, DefaultConfig(), nil)
	svc.Start(context.Background(), testForm(), Options{})

	var err error
	require.Eventually(t, func() bool {
		var ok bool
		_, ok, err = svc.Consume()
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	var ge *lesson.GenerationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, MissingKeyMessage, ge.Message)
}
