// Package ledger turns a trip's raw expense records into per-participant
// balances and a minimal plan of settling payments. Everything here is a
// pure function of its inputs; persistence and HTTP live elsewhere.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/tripledger/tripledger/internal/ledger/split"
)

var (
	// ErrUnknownPayer is returned when an expense names a payer that is not
	// one of the trip's participants. The upstream data model allows this,
	// so the build fails loudly instead of dropping the payment.
	ErrUnknownPayer = errors.New("expense payer is not a trip participant")
)

// Participant identifies one person on a trip. Identity is the ID; Name is
// display-only and may repeat.
type Participant struct {
	ID   string
	Name string
}

// Expense is the input record for one logged expense
type Expense struct {
	ID           string
	PayerID      string
	Amount       float64
	TaxPercent   float64
	TaxAbsolute  float64
	TipPercent   float64
	TipAbsolute  float64
	SplitType    split.Type
	SplitDetails map[string]float64
}

// Payment is a recorded peer-to-peer payment that already happened
type Payment struct {
	FromID    string
	ToID      string
	Amount    float64
	SettledAt time.Time
}

// Entry is one participant's row in the balance sheet. Positive NetBalance
// means the participant is owed money; negative means they owe.
type Entry struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	TotalPaid  float64 `json:"total_paid"`
	TotalOwed  float64 `json:"total_owed"`
	NetBalance float64 `json:"net_balance"`
}

// Build computes the balance sheet for a trip. Each expense is divided with
// the full participant set, paid/owed totals are accumulated, recorded
// payments are folded in, and residual rounding drift is pushed onto the
// participant with the smallest absolute balance so the sheet sums to zero.
// Rows come back sorted by participant id.
//
// A single malformed expense fails the whole build; a partially applied
// ledger would misreport every balance on the trip.
func Build(expenses []Expense, participants []Participant, payments []Payment) ([]Entry, error) {
	byID := make(map[string]*Entry, len(participants))
	participantIDs := make([]string, len(participants))
	for i, p := range participants {
		participantIDs[i] = p.ID
		byID[p.ID] = &Entry{ID: p.ID, Name: p.Name}
	}

	for _, exp := range expenses {
		payer, ok := byID[exp.PayerID]
		if !ok {
			return nil, fmt.Errorf("expense %s: %w: %s", exp.ID, ErrUnknownPayer, exp.PayerID)
		}

		calc, err := split.Compute(split.Input{
			Amount:      exp.Amount,
			Type:        exp.SplitType,
			Details:     exp.SplitDetails,
			TaxPercent:  exp.TaxPercent,
			TaxAbsolute: exp.TaxAbsolute,
			TipPercent:  exp.TipPercent,
			TipAbsolute: exp.TipAbsolute,
		}, participantIDs)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", exp.ID, err)
		}

		payer.TotalPaid = round2(payer.TotalPaid + calc.TotalExpense)

		// Participants excluded from a subset split simply aren't credited
		// this expense; shares naming strangers are ignored.
		for id, share := range calc.Shares {
			if entry, ok := byID[id]; ok {
				entry.TotalOwed = round2(entry.TotalOwed + share)
			}
		}
	}

	for _, entry := range byID {
		entry.NetBalance = round2(entry.TotalPaid - entry.TotalOwed)
	}

	// A realized payment from debtor to creditor moves both balances toward
	// zero. Payments between unknown ids are skipped.
	for _, payment := range payments {
		from, okFrom := byID[payment.FromID]
		to, okTo := byID[payment.ToID]
		if !okFrom || !okTo {
			continue
		}
		from.NetBalance = round2(from.NetBalance + payment.Amount)
		to.NetBalance = round2(to.NetBalance - payment.Amount)
	}

	// Entries are collected in participant input order so normalize's
	// smallest-balance tie-break is deterministic.
	entries := make([]Entry, 0, len(byID))
	for _, p := range participants {
		entries = append(entries, *byID[p.ID])
	}

	normalize(entries)

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// normalize zeroes out residual rounding drift. The correction lands on the
// single participant whose balance is closest to zero, distorting any one
// balance as little as possible while keeping the target deterministic.
func normalize(entries []Entry) {
	if len(entries) == 0 {
		return
	}

	var totalNet float64
	for _, entry := range entries {
		totalNet += entry.NetBalance
	}
	totalNet = round2(totalNet)

	if math.Abs(totalNet) <= 0.01 {
		return
	}

	minIdx := 0
	minAbs := math.Abs(entries[0].NetBalance)
	for i := 1; i < len(entries); i++ {
		if abs := math.Abs(entries[i].NetBalance); abs < minAbs {
			minAbs = abs
			minIdx = i
		}
	}

	entries[minIdx].NetBalance = round2(entries[minIdx].NetBalance - totalNet)
}

// round2 rounds a value half-up to 2 decimal places
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
