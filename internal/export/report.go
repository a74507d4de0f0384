// Package export renders a trip's full accounting — expenses, balance sheet,
// and settlement plan — as downloadable CSV and PDF reports.
package export

import (
	"context"

	"github.com/tripledger/tripledger/internal/expense"
	"github.com/tripledger/tripledger/internal/ledger"
	"github.com/tripledger/tripledger/internal/settlement"
	"github.com/tripledger/tripledger/internal/trip"
)

// Report is everything a trip export renders
type Report struct {
	Trip      *trip.Trip
	Expenses  []*expense.Expense
	Entries   []ledger.Entry
	Transfers []ledger.Transfer
}

// Service assembles trip reports
type Service struct {
	expenses    *expense.Service
	settlements *settlement.Service
}

// NewService creates a new export service with dependencies injected
func NewService(expenses *expense.Service, settlements *settlement.Service) *Service {
	return &Service{expenses: expenses, settlements: settlements}
}

// Report gathers a trip's expenses, balance sheet, and settlement plan.
// Access is checked once, by the balance sheet build.
func (s *Service) Report(ctx context.Context, tripID, userID string) (*Report, error) {
	t, entries, err := s.settlements.BalanceSheet(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenses.AllByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	return &Report{
		Trip:      t,
		Expenses:  expenses,
		Entries:   entries,
		Transfers: ledger.Plan(entries),
	}, nil
}

func participantNames(t *trip.Trip) map[string]string {
	return settlement.ParticipantNames(t)
}

// payerName resolves a payer id to its display name, falling back to the raw
// id so a row is never silently dropped
func payerName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return id
}
