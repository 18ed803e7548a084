package csvexport_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkdesk/internal/csvexport"
	"checkdesk/internal/domain"
)

func strPtr(s string) *string    { return &s }
func f64Ptr(v float64) *float64  { return &v }
func datePtr(t time.Time) *time.Time { return &t }

func TestWriter_HeaderRow(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)

	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	assert.Equal(t, "id,checkNumber,date,amount,memo,payor,payee,status,createdAt,imageUrl\n", buf.String())
}

func TestCheckToRow_FullRecord(t *testing.T) {
	id := uuid.New()
	check := &domain.Check{
		ID:          id,
		ImageURL:    "https://bucket.s3.amazonaws.com/checks/img.jpg",
		CheckNumber: strPtr("1001"),
		Date:        datePtr(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
		Amount:      f64Ptr(1200.50),
		Memo:        strPtr("rent, March"),
		Payor:       strPtr("Jane Doe"),
		Payee:       strPtr("Acme Corp"),
		Status:      domain.StatusParsed,
		CreatedAt:   time.Date(2024, 3, 6, 10, 30, 0, 0, time.UTC),
	}

	row := csvexport.CheckToRow(check)

	assert.Equal(t, []string{
		id.String(),
		"1001",
		"2024-03-05",
		"1200.5",
		"rent, March",
		"Jane Doe",
		"Acme Corp",
		"parsed",
		"2024-03-06T10:30:00Z",
		"https://bucket.s3.amazonaws.com/checks/img.jpg",
	}, row)
}

func TestCheckToRow_AbsentFieldsAreEmpty(t *testing.T) {
	check := &domain.Check{
		ID:        uuid.New(),
		ImageURL:  "data:image/png;base64,abc",
		Status:    domain.StatusNeedsReview,
		CreatedAt: time.Date(2024, 3, 6, 10, 30, 0, 0, time.UTC),
	}

	row := csvexport.CheckToRow(check)

	assert.Equal(t, "", row[1])
	assert.Equal(t, "", row[2])
	assert.Equal(t, "", row[3])
	assert.Equal(t, "needs_review", row[7])
}

func TestCheckToRow_CollapsesNewlines(t *testing.T) {
	check := &domain.Check{
		ID:     uuid.New(),
		Memo:   strPtr("line one\nline two\r\nline three"),
		Status: domain.StatusNeedsReview,
	}

	row := csvexport.CheckToRow(check)

	assert.Equal(t, "line one line two line three", row[4])
}

func TestWriter_QuotesFieldsWithCommas(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)

	check := domain.Check{
		ID:        uuid.New(),
		Memo:      strPtr("rent, March"),
		Status:    domain.StatusParsed,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteChecks([]domain.Check{check}))
	w.Flush()
	require.NoError(t, w.Error())

	assert.Contains(t, buf.String(), `"rent, March"`)

	// The output must round-trip through a CSV reader.
	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "rent, March", records[1][4])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"checks export.csv", "checks_export_csv"},
		{"__weird__name__", "weird_name"},
		{"plain-name_1", "plain-name_1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, csvexport.SanitizeFilename(tt.in))
	}
}

func TestBuildFilename(t *testing.T) {
	name := csvexport.BuildFilename("csv")

	assert.True(t, strings.HasPrefix(name, "checks_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))

	datePart := strings.TrimSuffix(strings.TrimPrefix(name, "checks_"), ".csv")
	_, err := time.Parse("2006-01-02", datePart)
	assert.NoError(t, err)
}
