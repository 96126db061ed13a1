package cmd

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lessoncraft/internal/lesson"
)

func TestApplyFormFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addFormFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{
		"--category", "מדעים",
		"--unit-topic", "מחזור המים",
		"--grade", "כיתה ה",
		"--opening-screen", "video: סרטון על עננים",
		"--opening-screen", "image:מפת אידוי",
		"--main-space", "משולב",
	}))

	form := &lesson.FormData{Duration: "60", Tone: "חוויתי"}
	require.NoError(t, applyFormFlags(cmd, form))

	assert.Equal(t, "מדעים", form.Category)
	assert.Equal(t, "מחזור המים", form.UnitTopic)
	assert.Equal(t, "60", form.Duration, "unset flags keep the existing value")
	assert.Equal(t, "חוויתי", form.Tone)
	assert.Equal(t, []lesson.ScreenInput{
		{Type: "video", Description: "סרטון על עננים"},
		{Type: "image", Description: "מפת אידוי"},
	}, form.Opening.Screens)
	assert.Equal(t, "משולב", form.Main.SpaceUsage)
}

func TestParseScreensRejectsMissingType(t *testing.T) {
	_, err := parseScreens([]string{"just a description"})
	assert.Error(t, err)
}

func TestParseStart(t *testing.T) {
	got, err := parseStart("2025-09-01 08:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 1, 8, 30, 0, 0, time.Local), got)

	got, err = parseStart("2025-09-01T08:30:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 9, 1, 8, 30, 0, 0, time.UTC)))

	_, err = parseStart("tomorrow")
	assert.Error(t, err)
}
