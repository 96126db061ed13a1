// Package loader shows a progress screen while a lesson plan is generated
// in the background.
package loader

import (
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/ui/theme"
)

const (
	tickInterval    = 100 * time.Millisecond
	messageInterval = 2500 * time.Millisecond
)

var messages = []string{
	"מגייסים רעיונות יצירתיים...",
	"מרכיבים פעילויות מהנות...",
	"מוודאים שהשיעור יהיה בלתי נשכח...",
	"מוסיפים קורטוב של קסם...",
	"כמעט מוכן! הפתעה בדרך...",
}

var spinnerFrames = []string{"✦", "✧", "★", "✧"}

// ErrCancelled is returned when the user quits before the plan is ready.
var ErrCancelled = errors.New("generation cancelled")

// Source is polled for the background result. *planner.Service implements it.
type Source interface {
	Consume() (plan *lesson.Plan, done bool, err error)
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model polls a Source on every tick and quits once the result is in.
type Model struct {
	src     Source
	styles  theme.Styles
	elapsed time.Duration
	frame   int

	plan *lesson.Plan
	err  error
	done bool
}

// New creates a loader model.
func New(src Source, styles theme.Styles) Model {
	return Model{src: src, styles: styles}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if plan, done, err := m.src.Consume(); done {
			m.plan, m.err, m.done = plan, err, true
			return m, tea.Quit
		}
		m.elapsed += tickInterval
		m.frame++
		return m, tick()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.err, m.done = ErrCancelled, true
			return m, tea.Quit
		}
	}
	return m, nil
}

// Message returns the progress line shown after elapsed time.
func Message(elapsed time.Duration) string {
	return messages[int(elapsed/messageInterval)%len(messages)]
}

func (m Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m Model) render() string {
	spinner := m.styles.Spinner.Render(spinnerFrames[m.frame%len(spinnerFrames)])
	return strings.Join([]string{
		spinner + " " + m.styles.Title.Render("יוצרים עבורך שיעור חווייתי..."),
		"  " + m.styles.Subtitle.Render(Message(m.elapsed)),
		"",
		"  " + m.styles.Hint.Render("ctrl+c לביטול"),
	}, "\n")
}

// Result returns the generated plan once the model has finished.
func (m Model) Result() (*lesson.Plan, error) {
	if !m.done {
		return nil, ErrCancelled
	}
	return m.plan, m.err
}

// Run shows the loader until src delivers a result or the user quits.
func Run(src Source, styles theme.Styles) (*lesson.Plan, error) {
	final, err := tea.NewProgram(New(src, styles)).Run()
	if err != nil {
		return nil, err
	}
	return final.(Model).Result()
}

// Wait polls src without a terminal UI.
func Wait(src Source) (*lesson.Plan, error) {
	for {
		if plan, done, err := src.Consume(); done {
			return plan, err
		}
		time.Sleep(tickInterval)
	}
}
