package planner

import (
	"context"
	"errors"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/llm"
)

// MissingKeyMessage is shown when no LLM provider is configured.
const MissingKeyMessage = "לא נמצא מפתח API. יש להגדיר GEMINI_API_KEY (או API_KEY) ולנסות שוב."

// ErrNoProvider marks a call made without a configured provider.
var ErrNoProvider = errors.New("no LLM provider configured")

// GenerationFailure wraps a backend error as a *lesson.GenerationError with
// a Hebrew message chosen by the error's kind. Errors that already carry a
// domain type pass through unchanged.
func GenerationFailure(op string, err error) error {
	var ae *lesson.AttachmentError
	var ge *lesson.GenerationError
	if errors.As(err, &ae) || errors.As(err, &ge) {
		return err
	}
	return &lesson.GenerationError{Op: op, Message: failureMessage(op, err), Err: err}
}

func failureMessage(op string, err error) string {
	var (
		rateLimit   *llm.ErrRateLimit
		invalid     *llm.ErrInvalidResponse
		maxTokens   *llm.ErrMaxTokensExceeded
		unsupported *llm.ErrUnsupportedAttachment
		auth        *llm.ErrUnauthorized
	)
	switch {
	case errors.Is(err, ErrNoProvider):
		return MissingKeyMessage
	case errors.Is(err, context.DeadlineExceeded):
		return "הבקשה ארכה זמן רב מדי ובוטלה. נסו שוב."
	case errors.As(err, &auth):
		return "מפתח ה-API נדחה על ידי שירות הבינה המלאכותית. בדקו את המפתח ונסו שוב."
	case errors.As(err, &rateLimit):
		return "חרגתם ממכסת הבקשות לשירות הבינה המלאכותית. נסו שוב בעוד מספר רגעים."
	case errors.As(err, &unsupported):
		return "ספק הבינה המלאכותית הנוכחי אינו תומך בסוג הקובץ המצורף."
	case errors.As(err, &maxTokens):
		return "התשובה שהתקבלה ארוכה מדי ונקטעה."
	case errors.As(err, &invalid):
		return "התשובה שהתקבלה מהמודל אינה במבנה הנדרש."
	}
	return opMessages[op]
}

var opMessages = map[string]string{
	"generate": "יצירת מערך השיעור נכשלה",
	"autofill": "יצירת הצעות לטופס נכשלה",
	"suggest":  "קבלת הצעות נכשלה",
	"chat":     "שגיאה בעוזר השיעור",
}
