package settlement

import (
	"context"
	"errors"

	"github.com/tripledger/tripledger/internal/expense"
	"github.com/tripledger/tripledger/internal/ledger"
	"github.com/tripledger/tripledger/internal/trip"
)

// Common errors
var (
	ErrSettlementNotFound = errors.New("settlement not found")
	ErrUnknownParticipant = errors.New("settlement names a person who is not on the trip")
	ErrSamePerson         = errors.New("a settlement needs two different people")
	ErrInvalidAmount      = errors.New("settlement amount must be positive")
)

// Service computes balance sheets and settlement plans for trips, and
// records the payments that actually happen.
type Service struct {
	repo     *Repository
	trips    *trip.Service
	expenses *expense.Service
}

// NewService creates a new settlement service with dependencies injected
func NewService(repo *Repository, trips *trip.Service, expenses *expense.Service) *Service {
	return &Service{repo: repo, trips: trips, expenses: expenses}
}

// BalanceSheet builds the current per-person balance sheet for a trip
func (s *Service) BalanceSheet(ctx context.Context, tripID, userID string) (*trip.Trip, []ledger.Entry, error) {
	t, err := s.trips.GetForOwner(ctx, tripID, userID)
	if err != nil {
		return nil, nil, err
	}

	entries, err := s.sheet(ctx, t)
	if err != nil {
		return nil, nil, err
	}
	return t, entries, nil
}

// Plan builds the minimal payment plan that settles a trip's balances
func (s *Service) Plan(ctx context.Context, tripID, userID string) (*trip.Trip, []ledger.Transfer, error) {
	t, err := s.trips.GetForOwner(ctx, tripID, userID)
	if err != nil {
		return nil, nil, err
	}

	entries, err := s.sheet(ctx, t)
	if err != nil {
		return nil, nil, err
	}
	return t, ledger.Plan(entries), nil
}

// History lists every settlement recorded on a trip, oldest first
func (s *Service) History(ctx context.Context, tripID, userID string) (*trip.Trip, []*Settlement, error) {
	t, err := s.trips.GetForOwner(ctx, tripID, userID)
	if err != nil {
		return nil, nil, err
	}

	settlements, err := s.repo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}
	return t, settlements, nil
}

// Record stores a payment that happened between two trip participants
func (s *Service) Record(ctx context.Context, userID string, req *RecordSettlementRequest) (*Settlement, error) {
	t, err := s.trips.GetForOwner(ctx, req.TripID, userID)
	if err != nil {
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.FromID == req.ToID {
		return nil, ErrSamePerson
	}
	if !onTrip(t, req.FromID) || !onTrip(t, req.ToID) {
		return nil, ErrUnknownParticipant
	}

	return s.repo.Create(ctx, req.TripID, req.FromID, req.ToID, req.Amount)
}

// Delete removes a recorded settlement, restoring the balances it offset
func (s *Service) Delete(ctx context.Context, settlementID, userID string) error {
	rec, err := s.repo.GetByID(ctx, settlementID)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrSettlementNotFound
	}

	if _, err := s.trips.GetForOwner(ctx, rec.TripID, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, settlementID)
}

// sheet assembles ledger inputs from storage and runs the build
func (s *Service) sheet(ctx context.Context, t *trip.Trip) ([]ledger.Entry, error) {
	expenses, err := s.expenses.ForLedger(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	settlements, err := s.repo.ListByTrip(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	payments := make([]ledger.Payment, len(settlements))
	for i, rec := range settlements {
		payments[i] = rec.ToLedger()
	}

	participants := make([]ledger.Participant, len(t.Participants))
	for i, p := range t.Participants {
		participants[i] = ledger.Participant{ID: p.ID, Name: p.Name}
	}

	return ledger.Build(expenses, participants, payments)
}

// ParticipantNames maps a trip's participant ids to display names
func ParticipantNames(t *trip.Trip) map[string]string {
	names := make(map[string]string, len(t.Participants))
	for _, p := range t.Participants {
		names[p.ID] = p.Name
	}
	return names
}

func onTrip(t *trip.Trip, id string) bool {
	for _, p := range t.Participants {
		if p.ID == id {
			return true
		}
	}
	return false
}
