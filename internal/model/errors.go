package model

import (
	"errors"
	"fmt"
)

// MalformedInputError reports structurally invalid sample data detected
// at the engine boundary, before any index or classification work.
type MalformedInputError struct {
	Field  string `json:"field"`  // which input field failed
	Detail string `json:"detail"` // what was wrong with it
}

// NewMalformedInput creates a MalformedInputError for the given field.
func NewMalformedInput(field, detail string) *MalformedInputError {
	return &MalformedInputError{Field: field, Detail: detail}
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %s: %s", e.Field, e.Detail)
}

// IsMalformedInput reports whether err is (or wraps) a MalformedInputError.
func IsMalformedInput(err error) bool {
	var me *MalformedInputError
	return errors.As(err, &me)
}
