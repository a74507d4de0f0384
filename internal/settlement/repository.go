package settlement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles settlement persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new recorded settlement
func (r *Repository) Create(ctx context.Context, tripID, fromID, toID string, amount float64) (*Settlement, error) {
	query := `
		INSERT INTO settlements (id, trip_id, from_id, to_id, amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, trip_id, from_id, to_id, amount, settled_at
	`

	s := &Settlement{}
	err := r.db.QueryRowContext(ctx, query, uuid.New().String(), tripID, fromID, toID, amount).Scan(
		&s.ID,
		&s.TripID,
		&s.FromID,
		&s.ToID,
		&s.Amount,
		&s.SettledAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}

	return s, nil
}

// ListByTrip retrieves every settlement recorded on a trip, oldest first
func (r *Repository) ListByTrip(ctx context.Context, tripID string) ([]*Settlement, error) {
	query := `
		SELECT id, trip_id, from_id, to_id, amount, settled_at
		FROM settlements
		WHERE trip_id = $1
		ORDER BY settled_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		s := &Settlement{}
		if err := rows.Scan(&s.ID, &s.TripID, &s.FromID, &s.ToID, &s.Amount, &s.SettledAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, s)
	}

	return settlements, rows.Err()
}

// Delete removes a recorded settlement
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM settlements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetByID retrieves a settlement by its ID. Returns nil when not found.
func (r *Repository) GetByID(ctx context.Context, id string) (*Settlement, error) {
	query := `
		SELECT id, trip_id, from_id, to_id, amount, settled_at
		FROM settlements
		WHERE id = $1
	`

	s := &Settlement{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.TripID, &s.FromID, &s.ToID, &s.Amount, &s.SettledAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	return s, nil
}
