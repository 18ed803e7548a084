package extract

import (
	"fmt"
	"time"

	"checkdesk/internal/domain"
)

// CandidateCheck is the typed result of validating an extracted payload.
// It carries the same optional fields as a check record minus identity,
// image, and status; it exists only between validation and persistence.
type CandidateCheck struct {
	CheckNumber *string
	Date        *time.Time
	Amount      *float64
	Memo        *string
	Payor       *string
	Payee       *string
}

// dateLayouts are the accepted calendar date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	time.RFC3339,
}

// ValidateCandidate checks a raw extracted payload against the check field
// schema and coerces it to a CandidateCheck. Every field is optional, but
// each present field must satisfy its declared type; all violations are
// collected into a single *ValidationError. Unknown keys are ignored.
func ValidateCandidate(raw map[string]any) (*CandidateCheck, error) {
	cand := &CandidateCheck{}
	var violations []FieldViolation

	for _, field := range []struct {
		key  string
		dest **string
	}{
		{"checkNumber", &cand.CheckNumber},
		{"memo", &cand.Memo},
		{"payor", &cand.Payor},
		{"payee", &cand.Payee},
	} {
		val, ok := raw[field.key]
		if !ok || val == nil {
			continue
		}
		s, ok := val.(string)
		if !ok {
			violations = append(violations, FieldViolation{
				Field:  field.key,
				Detail: fmt.Sprintf("expected string, got %T", val),
			})
			continue
		}
		*field.dest = &s
	}

	if val, ok := raw["amount"]; ok && val != nil {
		switch n := val.(type) {
		case float64:
			if n < 0 {
				violations = append(violations, FieldViolation{
					Field:  "amount",
					Detail: fmt.Sprintf("must be non-negative, got %v", n),
				})
			} else {
				cand.Amount = &n
			}
		default:
			violations = append(violations, FieldViolation{
				Field:  "amount",
				Detail: fmt.Sprintf("expected number, got %T", val),
			})
		}
	}

	if val, ok := raw["date"]; ok && val != nil {
		s, ok := val.(string)
		if !ok {
			violations = append(violations, FieldViolation{
				Field:  "date",
				Detail: fmt.Sprintf("expected string, got %T", val),
			})
		} else if d, ok := ParseDate(s); ok {
			cand.Date = &d
		} else {
			// A present but unparseable date is a violation, not a silent drop.
			violations = append(violations, FieldViolation{
				Field:  "date",
				Detail: fmt.Sprintf("not a parseable calendar date: %q", s),
			})
		}
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	return cand, nil
}

// ParseDate parses s against the accepted layouts, truncating to day
// granularity in UTC.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Classify derives the review status of a validated candidate. A record is
// parsed only when check number, amount, and date are all present; any
// partial result needs manual review.
func Classify(cand *CandidateCheck) domain.ReviewStatus {
	if cand.CheckNumber != nil && cand.Amount != nil && cand.Date != nil {
		return domain.StatusParsed
	}
	return domain.StatusNeedsReview
}
