package planner

import (
	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/llm"
)

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func stringList(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

func ideaProp(desc, titleDesc, bodyDesc string) map[string]any {
	return map[string]any{
		"type":        "object",
		"description": desc,
		"properties": map[string]any{
			"title":       stringProp(titleDesc),
			"description": stringProp(bodyDesc),
		},
		"required":             []any{"title", "description"},
		"additionalProperties": false,
	}
}

func partProp(desc string) map[string]any {
	return map[string]any{
		"type":        "object",
		"description": desc,
		"properties": map[string]any{
			"content": stringProp("תיאור מפורט של מה שקורה בחלק זה של השיעור."),
			"spaceUsage": map[string]any{
				"type":        "string",
				"enum":        lesson.EnumValues(lesson.SpaceUsages),
				"description": "אופן ניצול המרחב בכיתה בחלק זה.",
			},
			"screens": map[string]any{
				"type":        "array",
				"maxItems":    lesson.MaxScreens,
				"description": "עד 3 מסכים המוצגים בחלק זה, לפי סדר ההצגה.",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type":        "string",
							"enum":        lesson.EnumValues(lesson.ScreenTypes),
							"description": "סוג המסך.",
						},
						"description": stringProp("מה מוצג במסך. עבור תמונה: תיאור חזותי מפורט."),
					},
					"required":             []any{"type", "description"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"content", "spaceUsage", "screens"},
		"additionalProperties": false,
	}
}

// PlanSchema is the structured output contract for a lesson plan. Identity,
// status, creation date and the display topic are set locally and are not
// requested from the model.
var PlanSchema = &llm.Schema{
	Name:        "lesson-plan",
	Description: "A three-part immersive lesson plan",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"lessonTitle":        stringProp("כותרת מרתקת ומסקרנת לשיעור."),
			"targetAudience":     stringProp("קהל היעד של השיעור, כפי שצוין על ידי המשתמש."),
			"lessonDuration":     map[string]any{"type": "integer", "description": "משך השיעור הכולל בדקות."},
			"priorKnowledge":     stringProp("הידע הקודם הנדרש מהתלמידים."),
			"placementInContent": stringProp("מיקום השיעור ברצף ההוראה של היחידה."),
			"contentGoals":       stringList("מטרות התוכן של השיעור."),
			"skillGoals":         stringList("מטרות המיומנות של השיעור."),
			"generalDescription": stringProp("תיאור כללי ותמציתי של השיעור."),
			"teachingStyle": map[string]any{
				"type":        "string",
				"enum":        lesson.EnumValues(lesson.TeachingStyles),
				"description": "סגנון ההוראה המרכזי בשיעור.",
			},
			"tone": map[string]any{
				"type":        "string",
				"enum":        lesson.EnumValues(lesson.Tones),
				"description": "הטון של השיעור.",
			},
			"learningObjectives": stringList("3-5 מטרות למידה ברורות ומדידות שהתלמידים ישיגו בסוף השיעור."),
			"materials":          stringList("חומרים וציוד הנדרשים לשיעור, דיגיטליים ופיזיים."),
			"immersiveExperienceIdea": ideaProp(
				"רעיון יצירתי לחוויה אימרסיבית הקשורה לנושא השיעור.",
				"שם רעיון החוויה האימרסיבית.",
				"תיאור מפורט של החוויה (סימולציה, משחק תפקידים, סיור וירטואלי וכו').",
			),
			"assessment": ideaProp(
				"דרך הערכת השגת מטרות הלמידה.",
				"שם פעילות ההערכה.",
				"כיצד תיבדק הבנת התלמידים.",
			),
			"opening": partProp("פתיחת השיעור."),
			"main":    partProp("גוף השיעור."),
			"summary": partProp("סיכום השיעור."),
		},
		"required": []any{
			"lessonTitle",
			"targetAudience",
			"lessonDuration",
			"priorKnowledge",
			"placementInContent",
			"contentGoals",
			"skillGoals",
			"generalDescription",
			"teachingStyle",
			"tone",
			"learningObjectives",
			"materials",
			"immersiveExperienceIdea",
			"assessment",
			"opening",
			"main",
			"summary",
		},
		"additionalProperties": false,
	},
}
