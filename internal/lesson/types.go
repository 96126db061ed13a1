package lesson

import "time"

// MaxScreens is the maximum number of screens a lesson part may hold.
const MaxScreens = 3

// CreationDateLayout matches the ISO 8601 form stored by earlier versions
// (millisecond precision, UTC "Z").
const CreationDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Screen is a planned instructional display inside a lesson part.
// ImageURL is only set for image screens whose enrichment succeeded.
type Screen struct {
	Type        ScreenType `json:"type"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl,omitempty"`
}

// Part is one of the three structural phases of a lesson.
type Part struct {
	Content    string     `json:"content"`
	SpaceUsage SpaceUsage `json:"spaceUsage"`
	Screens    []Screen   `json:"screens"`
}

// PartName identifies a lesson part.
type PartName string

const (
	PartOpening PartName = "opening"
	PartMain    PartName = "main"
	PartSummary PartName = "summary"
)

// PartNames lists the lesson parts in lesson order.
var PartNames = []PartName{PartOpening, PartMain, PartSummary}

// Idea is a titled free-text block (immersive experience, assessment).
type Idea struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Activity is the pre-three-part lesson structure. Plans stored before the
// part model existed still carry these and are preserved as-is.
type Activity struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Type        string `json:"type"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Plan is a generated lesson plan and the unit of persistence.
type Plan struct {
	ID                 string   `json:"id"`
	Topic              string   `json:"topic"`
	UnitTopic          string   `json:"unitTopic"`
	Category           string   `json:"category"`
	LessonTitle        string   `json:"lessonTitle"`
	TargetAudience     string   `json:"targetAudience"`
	LessonDuration     int      `json:"lessonDuration"`
	PriorKnowledge     string   `json:"priorKnowledge"`
	PlacementInContent string   `json:"placementInContent"`
	ContentGoals       []string `json:"contentGoals"`
	SkillGoals         []string `json:"skillGoals"`
	GeneralDescription string   `json:"generalDescription"`
	TeachingStyle      string   `json:"teachingStyle,omitempty"`
	Tone               string   `json:"tone,omitempty"`

	LearningObjectives      []string `json:"learningObjectives"`
	Materials               []string `json:"materials"`
	ImmersiveExperienceIdea Idea     `json:"immersiveExperienceIdea"`
	Assessment              Idea     `json:"assessment"`

	Status       Status `json:"status"`
	CreationDate string `json:"creationDate"`

	Opening Part `json:"opening"`
	Main    Part `json:"main"`
	Summary Part `json:"summary"`

	LegacyActivities []Activity `json:"lessonActivities,omitempty"`
}

// Part returns a pointer to the named lesson part, or nil for an unknown name.
func (p *Plan) Part(name PartName) *Part {
	switch name {
	case PartOpening:
		return &p.Opening
	case PartMain:
		return &p.Main
	case PartSummary:
		return &p.Summary
	}
	return nil
}

// Published reports whether the plan has been published.
func (p *Plan) Published() bool {
	return p.Status == StatusPublished
}

// CreatedAt parses CreationDate. The zero time is returned when the stored
// value is missing or malformed.
func (p *Plan) CreatedAt() time.Time {
	t, err := time.Parse(time.RFC3339Nano, p.CreationDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Clone returns a deep copy of the plan.
func (p *Plan) Clone() *Plan {
	c := *p
	c.ContentGoals = cloneStrings(p.ContentGoals)
	c.SkillGoals = cloneStrings(p.SkillGoals)
	c.LearningObjectives = cloneStrings(p.LearningObjectives)
	c.Materials = cloneStrings(p.Materials)
	c.Opening = p.Opening.clone()
	c.Main = p.Main.clone()
	c.Summary = p.Summary.clone()
	if p.LegacyActivities != nil {
		c.LegacyActivities = append([]Activity(nil), p.LegacyActivities...)
	}
	return &c
}

// WithoutImages returns a deep copy with every inline image removed. This is
// the only form of a plan that is ever written to storage.
func (p *Plan) WithoutImages() *Plan {
	c := p.Clone()
	for _, name := range PartNames {
		part := c.Part(name)
		for i := range part.Screens {
			part.Screens[i].ImageURL = ""
		}
	}
	for i := range c.LegacyActivities {
		c.LegacyActivities[i].ImageURL = ""
	}
	return c
}

// ImageCount returns the number of screens carrying an image.
func (p *Plan) ImageCount() int {
	n := 0
	for _, name := range PartNames {
		for _, s := range p.Part(name).Screens {
			if s.ImageURL != "" {
				n++
			}
		}
	}
	return n
}

// Normalize fills nil collections and a missing status so documents written
// by older versions behave like freshly generated ones. It is idempotent.
func Normalize(p *Plan) *Plan {
	p.ContentGoals = nonNil(p.ContentGoals)
	p.SkillGoals = nonNil(p.SkillGoals)
	p.LearningObjectives = nonNil(p.LearningObjectives)
	p.Materials = nonNil(p.Materials)
	for _, name := range PartNames {
		part := p.Part(name)
		if part.Screens == nil {
			part.Screens = []Screen{}
		}
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	return p
}

func (pt Part) clone() Part {
	if pt.Screens != nil {
		pt.Screens = append(make([]Screen, 0, len(pt.Screens)), pt.Screens...)
	}
	return pt
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
