package trip

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles trip data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new trip repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a trip and its participants in one transaction
func (r *Repository) Create(ctx context.Context, ownerID string, req *CreateTripRequest) (*Trip, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	t := &Trip{}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO trips (id, title, start_date, end_date, currency, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, start_date, end_date, currency, owner_id, created_at, updated_at
	`, uuid.New().String(), req.Title, req.StartDate, req.EndDate, currency, ownerID).Scan(
		&t.ID, &t.Title, &t.StartDate, &t.EndDate, &t.Currency, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	for i, in := range req.Participants {
		p := Participant{
			ID:        uuid.New().String(),
			Name:      in.Name,
			Email:     in.Email,
			AvatarURL: in.AvatarURL,
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO trip_participants (trip_id, participant_id, name, email, avatar_url, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, t.ID, p.ID, p.Name, p.Email, p.AvatarURL, i)
		if err != nil {
			return nil, fmt.Errorf("failed to insert participant: %w", err)
		}
		t.Participants = append(t.Participants, p)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return t, nil
}

// GetByID retrieves a trip with its participants
func (r *Repository) GetByID(ctx context.Context, id string) (*Trip, error) {
	t := &Trip{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, start_date, end_date, currency, owner_id, created_at, updated_at
		FROM trips
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Title, &t.StartDate, &t.EndDate, &t.Currency, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	participants, err := r.participants(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Participants = participants

	return t, nil
}

// ListByOwner retrieves all trips owned by a user, newest first
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]*Trip, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, start_date, end_date, currency, owner_id, created_at, updated_at
		FROM trips
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		t := &Trip{}
		if err := rows.Scan(&t.ID, &t.Title, &t.StartDate, &t.EndDate, &t.Currency, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	for _, t := range trips {
		participants, err := r.participants(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		t.Participants = participants
	}

	return trips, nil
}

// Update applies the non-nil fields of req and appends any new participants
func (r *Repository) Update(ctx context.Context, id string, req *UpdateTripRequest) (*Trip, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE trips
		SET title      = COALESCE($2, title),
		    start_date = COALESCE($3, start_date),
		    end_date   = COALESCE($4, end_date),
		    currency   = COALESCE($5, currency),
		    updated_at = now()
		WHERE id = $1
	`, id, req.Title, req.StartDate, req.EndDate, req.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}

	if len(req.NewParticipants) > 0 {
		var position int
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position), -1) + 1 FROM trip_participants WHERE trip_id = $1`, id,
		).Scan(&position); err != nil {
			return nil, fmt.Errorf("failed to count participants: %w", err)
		}

		for i, in := range req.NewParticipants {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO trip_participants (trip_id, participant_id, name, email, avatar_url, position)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, id, uuid.New().String(), in.Name, in.Email, in.AvatarURL, position+i)
			if err != nil {
				return nil, fmt.Errorf("failed to insert participant: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a trip; expenses, participants and settlements cascade
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// participants loads the roster in its original insertion order. Expense
// splitting distributes remainder cents by this ordering, so it must be
// stable across reads.
func (r *Repository) participants(ctx context.Context, tripID string) ([]Participant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT participant_id, name, email, avatar_url
		FROM trip_participants
		WHERE trip_id = $1
		ORDER BY position, participant_id
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}
