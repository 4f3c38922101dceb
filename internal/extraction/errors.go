package extraction

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument is logged when a page has no markup at all.
var ErrEmptyDocument = errors.New("empty document")

// ParseError represents markup that could not be turned into a document.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// FieldError represents a request for a field the extractor does not know how to resolve.
type FieldError struct {
	Field   Field
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Message)
}
