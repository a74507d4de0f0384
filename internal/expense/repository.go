package expense

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripledger/tripledger/internal/ledger/split"
)

// Repository handles expense persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const expenseColumns = `id, trip_id, payer_id, amount, currency, expense_date, category,
	description, receipt_url, tax_percent, tax_absolute, tip_percent, tip_absolute,
	split_type, split_details, created_at, updated_at`

// Create inserts a new expense
func (r *Repository) Create(ctx context.Context, e *Expense) (*Expense, error) {
	details, err := json.Marshal(e.SplitDetails)
	if err != nil {
		return nil, fmt.Errorf("failed to encode split details: %w", err)
	}

	query := `
		INSERT INTO expenses (id, trip_id, payer_id, amount, currency, expense_date, category,
			description, receipt_url, tax_percent, tax_absolute, tip_percent, tip_absolute,
			split_type, split_details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + expenseColumns

	row := r.db.QueryRowContext(ctx, query,
		uuid.New().String(),
		e.TripID,
		e.PayerID,
		e.Amount,
		e.Currency,
		e.ExpenseDate,
		e.Category,
		e.Description,
		e.ReceiptURL,
		e.TaxPercent,
		e.TaxAbsolute,
		e.TipPercent,
		e.TipAbsolute,
		string(e.SplitType),
		details,
	)

	created, err := scanExpense(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return created, nil
}

// GetByID retrieves an expense by its ID. Returns nil when not found.
func (r *Repository) GetByID(ctx context.Context, id string) (*Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`

	e, err := scanExpense(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

// ListByTrip retrieves a page of expenses for a trip, newest expense date first
func (r *Repository) ListByTrip(ctx context.Context, tripID string, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE trip_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, tripID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = $1
		ORDER BY expense_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`

	expenses, err := r.queryExpenses(ctx, query, tripID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// ListAllByTrip retrieves every expense for a trip in logged order. The
// balance sheet and exports need the complete set, not a page.
func (r *Repository) ListAllByTrip(ctx context.Context, tripID string) ([]*Expense, error) {
	query := `SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = $1
		ORDER BY expense_date, created_at`

	return r.queryExpenses(ctx, query, tripID)
}

// Update rewrites the stored expense row
func (r *Repository) Update(ctx context.Context, e *Expense) (*Expense, error) {
	details, err := json.Marshal(e.SplitDetails)
	if err != nil {
		return nil, fmt.Errorf("failed to encode split details: %w", err)
	}

	query := `
		UPDATE expenses
		SET payer_id = $2, amount = $3, currency = $4, expense_date = $5, category = $6,
			description = $7, receipt_url = $8, tax_percent = $9, tax_absolute = $10,
			tip_percent = $11, tip_absolute = $12, split_type = $13, split_details = $14,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + expenseColumns

	row := r.db.QueryRowContext(ctx, query,
		e.ID,
		e.PayerID,
		e.Amount,
		e.Currency,
		e.ExpenseDate,
		e.Category,
		e.Description,
		e.ReceiptURL,
		e.TaxPercent,
		e.TaxAbsolute,
		e.TipPercent,
		e.TipAbsolute,
		string(e.SplitType),
		details,
	)

	updated, err := scanExpense(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return updated, nil
}

// Delete removes an expense
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *Repository) queryExpenses(ctx context.Context, query string, args ...any) ([]*Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(s scanner) (*Expense, error) {
	var (
		e           Expense
		splitType   string
		details     []byte
		receiptURL  sql.NullString
		taxPercent  sql.NullFloat64
		taxAbsolute sql.NullFloat64
		tipPercent  sql.NullFloat64
		tipAbsolute sql.NullFloat64
		expenseDate time.Time
	)

	err := s.Scan(
		&e.ID,
		&e.TripID,
		&e.PayerID,
		&e.Amount,
		&e.Currency,
		&expenseDate,
		&e.Category,
		&e.Description,
		&receiptURL,
		&taxPercent,
		&taxAbsolute,
		&tipPercent,
		&tipAbsolute,
		&splitType,
		&details,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.ExpenseDate = expenseDate
	e.SplitType = split.Type(splitType)
	if receiptURL.Valid {
		e.ReceiptURL = &receiptURL.String
	}
	e.TaxPercent = nullFloat(taxPercent)
	e.TaxAbsolute = nullFloat(taxAbsolute)
	e.TipPercent = nullFloat(tipPercent)
	e.TipAbsolute = nullFloat(tipAbsolute)

	e.SplitDetails = map[string]float64{}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &e.SplitDetails); err != nil {
			return nil, fmt.Errorf("failed to decode split details: %w", err)
		}
	}

	return &e, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
