package planner

import (
	"fmt"
	"strings"

	"github.com/abhisek/lessoncraft/internal/lesson"
)

const systemPrompt = `את/ה מומחה/ית לעיצוב הדרכה ולפדגוגיה חדשנית. את/ה בונה מערכי שיעור אימרסיביים ויצירתיים למורים בישראל.
כל התוכן חייב להיות בעברית. הפלט חייב להיות אובייקט JSON התואם לסכמה שסופקה.`

// Fallback phrases for blank optional fields. They tell the model the
// decision is its own instead of letting the field disappear.
const (
	notSpecified   = "לא צוין"
	inferFromTopic = "יש להסיק מהנושא"
	fromDocument   = "יש להגדיר על סמך תוכן המסמך"
	flexibleStyle  = "גמיש"
	neutralTone    = "ניטרלי"
)

const (
	fieldGroundedIntro = "צור מערך שיעור אימרסיבי ויצירתי המבוסס על הפרטים הבאים."
	fileGroundedIntro  = `בהתבסס **אך ורק** על תוכן המסמך המצורף, צור מערך שיעור אימרסיבי ויצירתי.
השתמש בשדה 'נושא השיעור' רק עבור הכותרת של מערך השיעור, אך בנה את כל התוכן (מטרות, חלקי השיעור, מסכים, הערכה) מתוך המסמך בלבד.`
)

// buildInstructions renders the form as the user message. Every optional
// field is always present, with a fallback phrase when blank.
func buildInstructions(form *lesson.FormData, fromFile bool) string {
	blank := inferFromTopic
	if fromFile {
		blank = fromDocument
	}
	or := func(v, fallback string) string {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
		return fallback
	}

	var b strings.Builder
	if fromFile {
		b.WriteString(fileGroundedIntro)
	} else {
		b.WriteString(fieldGroundedIntro)
	}
	b.WriteString("\n\n--- פרטי השיעור ---\n")
	fmt.Fprintf(&b, "נושא השיעור: %s\n", or(form.Topic, form.UnitTopic))
	fmt.Fprintf(&b, "תחום דעת: %s\n", form.Category)
	fmt.Fprintf(&b, "נושא היחידה: %s\n", form.UnitTopic)
	fmt.Fprintf(&b, "שכבת גיל: %s\n", form.GradeLevel)
	fmt.Fprintf(&b, "משך השיעור (דקות): %d\n", lesson.ParseDuration(form.Duration))
	fmt.Fprintf(&b, "ידע קודם נדרש: %s\n", or(form.PriorKnowledge, blank))
	fmt.Fprintf(&b, "מיקום השיעור ברצף התוכן: %s\n", or(form.PlacementInContent, notSpecified))
	fmt.Fprintf(&b, "מטרות תוכן: %s\n", or(form.ContentGoals, blank))
	fmt.Fprintf(&b, "מטרות מיומנות: %s\n", or(form.SkillGoals, blank))
	fmt.Fprintf(&b, "תיאור כללי: %s\n", or(form.GeneralDescription, notSpecified))

	b.WriteString("\n--- מבנה השיעור ---\n")
	for _, name := range lesson.PartNames {
		writePart(&b, name, form.Part(name), blank)
	}

	b.WriteString("\n--- תוכן והנחיות נוספות ---\n")
	fmt.Fprintf(&b, "מטרות למידה רצויות: %s\n", or(form.Objectives, blank))
	fmt.Fprintf(&b, "מושגי מפתח לכיסוי: %s\n", or(form.KeyConcepts, blank))
	fmt.Fprintf(&b, "סגנון הוראה מועדף: %s\n", or(form.TeachingStyle, flexibleStyle))
	fmt.Fprintf(&b, "טון השיעור: %s\n", or(form.Tone, neutralTone))
	fmt.Fprintf(&b, "מדדי הצלחה: %s\n", or(form.SuccessMetrics, notSpecified))
	fmt.Fprintf(&b, "הנחיות הכללה והתאמה: %s\n", or(form.Inclusion, notSpecified))
	fmt.Fprintf(&b, "רעיון לחוויה אימרסיבית: %s\n",
		or(lesson.FormatImmersive(form.ImmersiveExperienceTitle, form.ImmersiveExperienceDescription), blank))

	b.WriteString(`
--- הנחיות ---
1. חלק את השיעור לשלושה חלקים: פתיחה, גוף השיעור וסיכום. לכל חלק כתוב תוכן מפורט ובחר אופן ניצול מרחב.
2. לכל חלק הצע עד 3 מסכים (סרטון, תמונה, פדלט, אתר, ג'ניאלי, מצגת) עם תיאור ברור של מה שמוצג בכל מסך.
3. מסך מסוג "תמונה" צריך תיאור חזותי מפורט שממנו אפשר ליצור איור.
4. מטרות הלמידה צריכות לסכם את מטרות התוכן והמיומנות.`)

	return b.String()
}

var partLabels = map[lesson.PartName]string{
	lesson.PartOpening: "פתיחה",
	lesson.PartMain:    "גוף השיעור",
	lesson.PartSummary: "סיכום",
}

func writePart(b *strings.Builder, name lesson.PartName, p *lesson.PartInput, blank string) {
	fmt.Fprintf(b, "%s:\n", partLabels[name])
	content := strings.TrimSpace(p.Content)
	if content == "" {
		content = blank
	}
	fmt.Fprintf(b, "  תוכן: %s\n", content)
	space := p.SpaceUsage
	if space == "" {
		space = notSpecified
	}
	fmt.Fprintf(b, "  ניצול המרחב: %s\n", space)
	if len(p.Screens) == 0 {
		fmt.Fprintf(b, "  מסכים: %s\n", notSpecified)
		return
	}
	for i, s := range p.Screens {
		typ := s.Type
		if typ == "" {
			typ = notSpecified
		}
		fmt.Fprintf(b, "  מסך %d: %s - %s\n", i+1, typ, strings.TrimSpace(s.Description))
	}
}
