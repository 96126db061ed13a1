package lesson

// ScreenType is the medium of a planned screen. Values are the stored
// (Hebrew) labels, so documents written by earlier versions stay readable.
type ScreenType string

const (
	ScreenVideo        ScreenType = "סרטון"
	ScreenImage        ScreenType = "תמונה"
	ScreenPadlet       ScreenType = "פדלט"
	ScreenWebsite      ScreenType = "אתר"
	ScreenGenially     ScreenType = "ג'ניאלי"
	ScreenPresentation ScreenType = "מצגת"
)

// ScreenTypes lists every valid screen type in display order.
var ScreenTypes = []ScreenType{
	ScreenVideo,
	ScreenImage,
	ScreenPadlet,
	ScreenWebsite,
	ScreenGenially,
	ScreenPresentation,
}

// SpaceUsage describes how the classroom is organized during a lesson part.
type SpaceUsage string

const (
	SpaceWholeClass SpaceUsage = "מליאה"
	SpaceGroupWork  SpaceUsage = "עבודה בקבוצות"
	SpaceIndividual SpaceUsage = "עבודה אישית"
	SpaceMixed      SpaceUsage = "משולב"
)

// SpaceUsages lists every valid space-usage mode.
var SpaceUsages = []SpaceUsage{
	SpaceWholeClass,
	SpaceGroupWork,
	SpaceIndividual,
	SpaceMixed,
}

// Status is the publication state of a plan. The only transition is
// StatusDraft -> StatusPublished.
type Status string

const (
	StatusDraft     Status = "טיוטה"
	StatusPublished Status = "פורסם"
)

// TeachingStyles is the closed vocabulary for the teaching-style field.
var TeachingStyles = []string{
	"למידה מבוססת פרויקטים",
	"למידת חקר",
	"למידה שיתופית",
	"הוראה ישירה",
	"כיתה הפוכה",
	"למידה מבוססת משחק",
}

// Tones is the closed vocabulary for the lesson tone field.
var Tones = []string{
	"חוויתי ומשחקי",
	"מעורר השראה",
	"רציני ואקדמי",
	"הומוריסטי",
	"ניטרלי",
}

// GradeLevels are the suggested audience values offered by the form.
// Free text is accepted as well.
var GradeLevels = []string{
	"גן",
	"כיתות א-ב",
	"כיתות ג-ד",
	"כיתות ה-ו",
	"חטיבת ביניים",
	"תיכון",
	"מבוגרים",
}

// Valid reports whether t is a known screen type.
func (t ScreenType) Valid() bool {
	for _, v := range ScreenTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known space-usage mode.
func (s SpaceUsage) Valid() bool {
	for _, v := range SpaceUsages {
		if v == s {
			return true
		}
	}
	return false
}

// IsTeachingStyle reports whether s belongs to TeachingStyles.
func IsTeachingStyle(s string) bool { return contains(TeachingStyles, s) }

// IsTone reports whether s belongs to Tones.
func IsTone(s string) bool { return contains(Tones, s) }

// EnumValues converts a vocabulary to the []any form used by JSON schemas.
func EnumValues[T ~string](vals []T) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

func contains(vals []string, s string) bool {
	for _, v := range vals {
		if v == s {
			return true
		}
	}
	return false
}
