package expense

import (
	"context"
	"errors"
	"time"

	"github.com/tripledger/tripledger/internal/ledger"
	"github.com/tripledger/tripledger/internal/ledger/split"
	"github.com/tripledger/tripledger/internal/trip"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrUnknownPayer    = errors.New("payer is not a trip participant")
	ErrInvalidDate     = errors.New("expense date must be in YYYY-MM-DD format")
)

// Detail pairs an expense with its computed charge breakdown and shares
type Detail struct {
	Expense     *Expense
	Calculation *split.Calculation
}

// Service handles expense business logic. Every write is validated against
// the trip's roster with the same calculator the balance sheet uses, so a
// stored expense can never fail the ledger build later.
type Service struct {
	repo  *Repository
	trips *trip.Service
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, trips *trip.Service) *Service {
	return &Service{repo: repo, trips: trips}
}

// Create validates and logs a new expense on a trip
func (s *Service) Create(ctx context.Context, userID string, req *CreateExpenseRequest) (*Detail, error) {
	t, err := s.trips.GetForOwner(ctx, req.TripID, userID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	currency := req.Currency
	if currency == "" {
		currency = t.Currency
	}

	e := &Expense{
		TripID:       req.TripID,
		PayerID:      req.PayerID,
		Amount:       req.Amount,
		Currency:     currency,
		ExpenseDate:  date,
		Category:     req.Category,
		Description:  req.Description,
		ReceiptURL:   req.ReceiptURL,
		TaxPercent:   req.TaxPercent,
		TaxAbsolute:  req.TaxAbsolute,
		TipPercent:   req.TipPercent,
		TipAbsolute:  req.TipAbsolute,
		SplitType:    split.Type(req.SplitType),
		SplitDetails: req.SplitDetails,
	}

	calc, err := s.validate(e, t)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, err
	}

	return &Detail{Expense: created, Calculation: calc}, nil
}

// Get retrieves an expense with its computed breakdown
func (s *Service) Get(ctx context.Context, expenseID, userID string) (*Detail, error) {
	e, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrExpenseNotFound
	}

	t, err := s.trips.GetForOwner(ctx, e.TripID, userID)
	if err != nil {
		return nil, err
	}

	calc, err := split.Compute(e.SplitInput(), participantIDs(t))
	if err != nil {
		return nil, err
	}

	return &Detail{Expense: e, Calculation: calc}, nil
}

// ListByTrip retrieves a page of a trip's expenses
func (s *Service) ListByTrip(ctx context.Context, tripID, userID string, page, perPage int) ([]*Expense, int, error) {
	if _, err := s.trips.GetForOwner(ctx, tripID, userID); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByTrip(ctx, tripID, perPage, offset)
}

// Update applies partial changes to an expense and re-validates the result
func (s *Service) Update(ctx context.Context, expenseID, userID string, req *UpdateExpenseRequest) (*Detail, error) {
	e, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrExpenseNotFound
	}

	t, err := s.trips.GetForOwner(ctx, e.TripID, userID)
	if err != nil {
		return nil, err
	}

	if err := applyUpdate(e, req); err != nil {
		return nil, err
	}

	calc, err := s.validate(e, t)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, e)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrExpenseNotFound
	}

	return &Detail{Expense: updated, Calculation: calc}, nil
}

// Delete removes an expense from its trip
func (s *Service) Delete(ctx context.Context, expenseID, userID string) error {
	e, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrExpenseNotFound
	}

	if _, err := s.trips.GetForOwner(ctx, e.TripID, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, expenseID)
}

// AllByTrip loads the complete expense list for a trip in logged order.
// Callers are expected to have checked trip access already.
func (s *Service) AllByTrip(ctx context.Context, tripID string) ([]*Expense, error) {
	return s.repo.ListAllByTrip(ctx, tripID)
}

// ForLedger loads every expense on a trip as ledger input records
func (s *Service) ForLedger(ctx context.Context, tripID string) ([]ledger.Expense, error) {
	expenses, err := s.repo.ListAllByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	records := make([]ledger.Expense, len(expenses))
	for i, e := range expenses {
		records[i] = e.ToLedger()
	}
	return records, nil
}

// validate runs the split calculator against the trip roster. The calculator
// reports bad amounts, missing details, and sum mismatches; payer membership
// is checked here because the calculator never sees the payer.
func (s *Service) validate(e *Expense, t *trip.Trip) (*split.Calculation, error) {
	ids := participantIDs(t)

	found := false
	for _, id := range ids {
		if id == e.PayerID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrUnknownPayer
	}

	return split.Compute(e.SplitInput(), ids)
}

func applyUpdate(e *Expense, req *UpdateExpenseRequest) error {
	if req.PayerID != nil {
		e.PayerID = *req.PayerID
	}
	if req.Amount != nil {
		e.Amount = *req.Amount
	}
	if req.Currency != nil {
		e.Currency = *req.Currency
	}
	if req.ExpenseDate != nil {
		date, err := time.Parse("2006-01-02", *req.ExpenseDate)
		if err != nil {
			return ErrInvalidDate
		}
		e.ExpenseDate = date
	}
	if req.Category != nil {
		e.Category = *req.Category
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.ReceiptURL != nil {
		e.ReceiptURL = req.ReceiptURL
	}
	if req.TaxPercent != nil {
		e.TaxPercent = req.TaxPercent
	}
	if req.TaxAbsolute != nil {
		e.TaxAbsolute = req.TaxAbsolute
	}
	if req.TipPercent != nil {
		e.TipPercent = req.TipPercent
	}
	if req.TipAbsolute != nil {
		e.TipAbsolute = req.TipAbsolute
	}
	if req.SplitType != nil {
		e.SplitType = split.Type(*req.SplitType)
	}
	if req.SplitDetails != nil {
		e.SplitDetails = req.SplitDetails
	}
	return nil
}

func participantIDs(t *trip.Trip) []string {
	ids := make([]string, len(t.Participants))
	for i, p := range t.Participants {
		ids[i] = p.ID
	}
	return ids
}
