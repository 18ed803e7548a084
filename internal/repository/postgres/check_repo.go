package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"checkdesk/internal/domain"
	"checkdesk/internal/port"
)

type checkRepo struct {
	db *sqlx.DB
}

// NewCheckRepo creates a new PostgreSQL-backed CheckRepository.
func NewCheckRepo(db *sqlx.DB) port.CheckRepository {
	return &checkRepo{db: db}
}

func (r *checkRepo) Create(ctx context.Context, check *domain.Check) error {
	now := time.Now().UTC()
	check.CreatedAt = now
	check.UpdatedAt = now

	query := `INSERT INTO checks (
		id, image_url, check_number, check_date, amount,
		memo, payor, payee, status, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9, $10, $11
	)`

	_, err := r.db.ExecContext(ctx, query,
		check.ID, check.ImageURL, check.CheckNumber, check.Date, check.Amount,
		check.Memo, check.Payor, check.Payee, check.Status, check.CreatedAt, check.UpdatedAt)
	if err != nil {
		return fmt.Errorf("checkRepo.Create: %w", err)
	}
	return nil
}

func (r *checkRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Check, error) {
	var check domain.Check
	err := r.db.GetContext(ctx, &check,
		"SELECT * FROM checks WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCheckNotFound
		}
		return nil, fmt.Errorf("checkRepo.GetByID: %w", err)
	}
	return &check, nil
}

func (r *checkRepo) Update(ctx context.Context, check *domain.Check) error {
	check.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE checks SET
			check_number = $1, check_date = $2, amount = $3,
			memo = $4, payor = $5, payee = $6,
			status = $7, updated_at = $8
		 WHERE id = $9`,
		check.CheckNumber, check.Date, check.Amount,
		check.Memo, check.Payor, check.Payee,
		check.Status, check.UpdatedAt,
		check.ID)
	if err != nil {
		return fmt.Errorf("checkRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCheckNotFound
	}
	return nil
}

func (r *checkRepo) List(ctx context.Context, filter port.CheckFilter, offset, limit int) ([]domain.Check, int, error) {
	where, args := buildFilter(filter)

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM checks"+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("checkRepo.List count: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT * FROM checks%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	checks := []domain.Check{}
	err = r.db.SelectContext(ctx, &checks, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("checkRepo.List: %w", err)
	}
	return checks, total, nil
}

func (r *checkRepo) ListAll(ctx context.Context, filter port.CheckFilter) ([]domain.Check, error) {
	where, args := buildFilter(filter)

	checks := []domain.Check{}
	err := r.db.SelectContext(ctx, &checks,
		"SELECT * FROM checks"+where+" ORDER BY created_at DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("checkRepo.ListAll: %w", err)
	}
	return checks, nil
}

// likeEscaper neutralizes LIKE/ILIKE metacharacters so a search for a
// literal "%" or "_" matches only rows containing it.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// buildFilter translates a CheckFilter into a WHERE clause with numbered
// placeholders. The text query matches case-insensitively across check
// number, payor, payee, and memo; date and amount bounds are inclusive.
func buildFilter(filter port.CheckFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Query != "" {
		p := arg("%" + likeEscaper.Replace(filter.Query) + "%")
		conds = append(conds, fmt.Sprintf(
			"(check_number ILIKE %[1]s OR payor ILIKE %[1]s OR payee ILIKE %[1]s OR memo ILIKE %[1]s)", p))
	}
	if filter.DateFrom != nil {
		conds = append(conds, "check_date >= "+arg(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		conds = append(conds, "check_date <= "+arg(*filter.DateTo))
	}
	if filter.AmountMin != nil {
		conds = append(conds, "amount >= "+arg(*filter.AmountMin))
	}
	if filter.AmountMax != nil {
		conds = append(conds, "amount <= "+arg(*filter.AmountMax))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
