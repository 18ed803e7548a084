package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"checkdesk/internal/domain"
)

// Columns defines the CSV header row.
var Columns = []string{
	"id",
	"checkNumber",
	"date",
	"amount",
	"memo",
	"payor",
	"payee",
	"status",
	"createdAt",
	"imageUrl",
}

// Writer wraps csv.Writer for exporting check records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteChecks converts a batch of check records to CSV rows and writes them.
func (w *Writer) WriteChecks(checks []domain.Check) error {
	for i := range checks {
		if err := w.csv.Write(CheckToRow(&checks[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// CheckToRow converts a single check record to a string slice matching
// Columns. Absent optional fields become empty strings; the date is
// formatted at day granularity; newlines inside text fields are collapsed
// to spaces so each record stays on one line.
func CheckToRow(check *domain.Check) []string {
	row := make([]string, len(Columns))
	row[0] = check.ID.String()
	row[1] = collapseNewlines(strVal(check.CheckNumber))
	row[2] = formatDate(check.Date)
	row[3] = formatAmount(check.Amount)
	row[4] = collapseNewlines(strVal(check.Memo))
	row[5] = collapseNewlines(strVal(check.Payor))
	row[6] = collapseNewlines(strVal(check.Payee))
	row[7] = string(check.Status)
	row[8] = check.CreatedAt.Format(time.RFC3339)
	row[9] = check.ImageURL
	return row
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

var newlines = regexp.MustCompile(`[\r\n]+`)

func collapseNewlines(s string) string {
	return newlines.ReplaceAllString(s, " ")
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a filename for the Content-Disposition header.
// Format: checks_{YYYY-MM-DD}.{ext}
func BuildFilename(ext string) string {
	return fmt.Sprintf("checks_%s.%s", time.Now().Format("2006-01-02"), ext)
}
