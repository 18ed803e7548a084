package extract

import (
	"fmt"
	"strings"
)

// Extraction failure reasons.
const (
	ReasonEmptyCompletion = "empty completion"
	ReasonNoJSONObject    = "no JSON object found"
	ReasonMalformedJSON   = "malformed JSON"
)

// ExtractionError indicates that no usable JSON object could be isolated
// from a model completion.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// FieldViolation describes a single schema violation on a present field.
type FieldViolation struct {
	Field  string
	Detail string
}

// ValidationError indicates that one or more present fields violated the
// check field schema. Fields holds every offending field, not just the first.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Detail)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the names of the offending fields.
func (e *ValidationError) Fields() []string {
	names := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		names[i] = v.Field
	}
	return names
}
