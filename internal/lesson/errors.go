package lesson

import (
	"errors"
	"fmt"
)

// ErrPlanNotFound is returned when an operation names a plan id that is not
// in the collection.
var ErrPlanNotFound = errors.New("lesson plan not found")

// ValidationError reports a missing or malformed form field. It is raised
// before any backend call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AttachmentError reports a file that was rejected at attach time or could
// not be read into a transmittable payload.
type AttachmentError struct {
	Name    string
	Message string
	Err     error
}

func (e *AttachmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.Message, e.Name, e.Err)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Name)
}

func (e *AttachmentError) Unwrap() error { return e.Err }

// GenerationError reports a failed backend call, a malformed response or
// missing credentials. Op names the failing operation ("generate",
// "autofill", "suggest", "chat").
type GenerationError struct {
	Op      string
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error { return e.Err }

// EnrichmentError reports a single failed image request. It is logged and
// never propagated out of the enrichment stage.
type EnrichmentError struct {
	Part  PartName
	Index int
	Err   error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("enrich %s screen %d: %v", e.Part, e.Index+1, e.Err)
}

func (e *EnrichmentError) Unwrap() error { return e.Err }

// PersistenceError reports a storage read or write failure. Load failures
// degrade to an empty collection; write failures leave memory authoritative.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// UserMessage returns the Hebrew text to show for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var ae *AttachmentError
	if errors.As(err, &ae) {
		return ae.Message
	}
	var ge *GenerationError
	if errors.As(err, &ge) {
		if ge.Err != nil {
			return fmt.Sprintf("%s: %v", ge.Message, ge.Err)
		}
		return ge.Message
	}
	if errors.Is(err, ErrPlanNotFound) {
		return "מערך השיעור לא נמצא."
	}
	return "אירעה שגיאה לא ידועה."
}
