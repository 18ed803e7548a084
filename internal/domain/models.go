package domain

import (
	"time"

	"github.com/google/uuid"
)

// Check represents a scanned check and its extracted fields.
// All extracted fields are optional; nil means the vision model did not
// find the field (or a reviewer cleared it).
type Check struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	ImageURL    string       `db:"image_url" json:"image_url"`
	CheckNumber *string      `db:"check_number" json:"check_number"`
	Date        *time.Time   `db:"check_date" json:"date"`
	Amount      *float64     `db:"amount" json:"amount"`
	Memo        *string      `db:"memo" json:"memo"`
	Payor       *string      `db:"payor" json:"payor"`
	Payee       *string      `db:"payee" json:"payee"`
	Status      ReviewStatus `db:"status" json:"status"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}
