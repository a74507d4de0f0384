package trip

import (
	"context"
	"database/sql"
	"errors"
)

// Common errors
var (
	ErrTripNotFound   = errors.New("trip not found")
	ErrNotOwner       = errors.New("only the trip owner can do this")
	ErrNoParticipants = errors.New("a trip needs at least one participant")
	ErrInvalidDates   = errors.New("trip end date must not be before its start date")
)

// Service handles trip business logic
type Service struct {
	repo *Repository
}

// NewService creates a new trip service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and creates a trip owned by the requesting user
func (s *Service) Create(ctx context.Context, ownerID string, req *CreateTripRequest) (*Trip, error) {
	if len(req.Participants) == 0 {
		return nil, ErrNoParticipants
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, ErrInvalidDates
	}
	return s.repo.Create(ctx, ownerID, req)
}

// GetForOwner retrieves a trip, enforcing that the requester owns it
func (s *Service) GetForOwner(ctx context.Context, tripID, userID string) (*Trip, error) {
	t, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTripNotFound
	}
	if t.OwnerID != userID {
		return nil, ErrNotOwner
	}
	return t, nil
}

// ListByOwner retrieves all trips owned by a user
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*Trip, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Update applies changes to a trip the requester owns
func (s *Service) Update(ctx context.Context, tripID, userID string, req *UpdateTripRequest) (*Trip, error) {
	if _, err := s.GetForOwner(ctx, tripID, userID); err != nil {
		return nil, err
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, ErrInvalidDates
	}
	return s.repo.Update(ctx, tripID, req)
}

// Delete removes a trip the requester owns
func (s *Service) Delete(ctx context.Context, tripID, userID string) error {
	if _, err := s.GetForOwner(ctx, tripID, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tripID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTripNotFound
		}
		return err
	}
	return nil
}
