package ledger

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/tripledger/tripledger/internal/ledger/split"
)

func tripParticipants() []Participant {
	return []Participant{
		{ID: "p1", Name: "Aisha"},
		{ID: "p2", Name: "Ben"},
		{ID: "p3", Name: "Chen"},
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name         string
		expenses     []Expense
		participants []Participant
		payments     []Payment
		wantErr      error
		validateFunc func(t *testing.T, entries []Entry)
	}{
		{
			name: "single equal expense",
			expenses: []Expense{
				{ID: "e1", PayerID: "p1", Amount: 90, SplitType: split.TypeEqual},
			},
			participants: tripParticipants(),
			validateFunc: func(t *testing.T, entries []Entry) {
				if entries[0].TotalPaid != 90 || entries[0].TotalOwed != 30 || entries[0].NetBalance != 60 {
					t.Errorf("p1 = %+v, want paid 90 owed 30 net 60", entries[0])
				}
				for _, e := range entries[1:] {
					if e.TotalPaid != 0 || e.TotalOwed != 30 || e.NetBalance != -30 {
						t.Errorf("%s = %+v, want paid 0 owed 30 net -30", e.ID, e)
					}
				}
			},
		},
		{
			name: "subset split leaves excluded participant untouched",
			expenses: []Expense{
				{
					ID:           "e1",
					PayerID:      "p2",
					Amount:       100,
					SplitType:    split.TypeSelectedEqual,
					SplitDetails: map[string]float64{"p1": 1, "p2": 1},
				},
			},
			participants: tripParticipants(),
			validateFunc: func(t *testing.T, entries []Entry) {
				if entries[2].TotalOwed != 0 || entries[2].NetBalance != 0 {
					t.Errorf("p3 = %+v, want zero owed and balance", entries[2])
				}
				if entries[0].TotalOwed != 50 {
					t.Errorf("p1 owed = %v, want 50", entries[0].TotalOwed)
				}
			},
		},
		{
			name: "recorded payment moves both balances toward zero",
			expenses: []Expense{
				{ID: "e1", PayerID: "p1", Amount: 90, SplitType: split.TypeEqual},
			},
			participants: tripParticipants(),
			payments: []Payment{
				{FromID: "p2", ToID: "p1", Amount: 30},
			},
			validateFunc: func(t *testing.T, entries []Entry) {
				if entries[0].NetBalance != 30 {
					t.Errorf("p1 net = %v, want 30", entries[0].NetBalance)
				}
				if entries[1].NetBalance != 0 {
					t.Errorf("p2 net = %v, want 0", entries[1].NetBalance)
				}
				if entries[2].NetBalance != -30 {
					t.Errorf("p3 net = %v, want -30", entries[2].NetBalance)
				}
			},
		},
		{
			name: "payment naming unknown participant is skipped",
			expenses: []Expense{
				{ID: "e1", PayerID: "p1", Amount: 90, SplitType: split.TypeEqual},
			},
			participants: tripParticipants(),
			payments: []Payment{
				{FromID: "ghost", ToID: "p1", Amount: 30},
			},
			validateFunc: func(t *testing.T, entries []Entry) {
				if entries[0].NetBalance != 60 {
					t.Errorf("p1 net = %v, want 60", entries[0].NetBalance)
				}
			},
		},
		{
			name: "unknown payer fails the build",
			expenses: []Expense{
				{ID: "e1", PayerID: "ghost", Amount: 90, SplitType: split.TypeEqual},
			},
			participants: tripParticipants(),
			wantErr:      ErrUnknownPayer,
		},
		{
			name: "malformed expense fails the whole build",
			expenses: []Expense{
				{ID: "e1", PayerID: "p1", Amount: 90, SplitType: split.TypeEqual},
				{ID: "e2", PayerID: "p2", Amount: -5, SplitType: split.TypeEqual},
			},
			participants: tripParticipants(),
			wantErr:      split.ErrInvalidAmount,
		},
		{
			name:         "no expenses yields all-zero rows",
			participants: tripParticipants(),
			validateFunc: func(t *testing.T, entries []Entry) {
				for _, e := range entries {
					if e.TotalPaid != 0 || e.TotalOwed != 0 || e.NetBalance != 0 {
						t.Errorf("%s = %+v, want all zeros", e.ID, e)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Build(tt.expenses, tt.participants, tt.payments)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Build() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build() unexpected error: %v", err)
			}
			if len(entries) != len(tt.participants) {
				t.Fatalf("got %d entries, want %d", len(entries), len(tt.participants))
			}
			for i := 1; i < len(entries); i++ {
				if entries[i-1].ID > entries[i].ID {
					t.Fatalf("entries not sorted by id: %s before %s", entries[i-1].ID, entries[i].ID)
				}
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, entries)
			}
		})
	}
}

// Net balances must sum to zero no matter how expenses and payments combine.
func TestBuildZeroSum(t *testing.T) {
	participants := []Participant{
		{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"},
		{ID: "d", Name: "D"}, {ID: "e", Name: "E"},
	}
	expenses := []Expense{
		{ID: "e1", PayerID: "a", Amount: 433.21, SplitType: split.TypeEqual, TaxPercent: 8.25},
		{ID: "e2", PayerID: "b", Amount: 99.99, SplitType: split.TypeEqual, TipPercent: 15},
		{ID: "e3", PayerID: "c", Amount: 700, SplitType: split.TypeSelectedEqual,
			SplitDetails: map[string]float64{"a": 1, "c": 1, "e": 1}},
		{ID: "e4", PayerID: "d", Amount: 120.50, SplitType: split.TypePercentages,
			SplitDetails: map[string]float64{"a": 10, "b": 20, "c": 30, "d": 25, "e": 15}},
		{ID: "e5", PayerID: "a", Amount: 60, SplitType: split.TypeCustomAmounts,
			SplitDetails: map[string]float64{"b": 25.5, "d": 34.5}},
	}
	payments := []Payment{
		{FromID: "b", ToID: "a", Amount: 50},
		{FromID: "e", ToID: "c", Amount: 120.75},
	}

	entries, err := Build(expenses, participants, payments)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	var totalNet float64
	for _, entry := range entries {
		totalNet += entry.NetBalance
	}
	if math.Abs(totalNet) > 0.01 {
		t.Errorf("net balances sum to %v, want 0", totalNet)
	}
}

// Expenses built from verbatim custom amounts can drift by a cent each;
// normalization pushes the accumulated drift onto the smallest balance.
func TestBuildNormalizesRoundingDrift(t *testing.T) {
	participants := tripParticipants()
	// Each custom split over-assigns one cent (allowed by the 0.01 tolerance).
	expenses := []Expense{
		{ID: "e1", PayerID: "p1", Amount: 100, SplitType: split.TypeCustomAmounts,
			SplitDetails: map[string]float64{"p1": 33.33, "p2": 33.33, "p3": 33.35}},
		{ID: "e2", PayerID: "p1", Amount: 100, SplitType: split.TypeCustomAmounts,
			SplitDetails: map[string]float64{"p1": 33.33, "p2": 33.33, "p3": 33.35}},
	}

	entries, err := Build(expenses, participants, nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	var totalNet float64
	for _, entry := range entries {
		totalNet += entry.NetBalance
	}
	if round := math.Abs(totalNet); round > 0.01 {
		t.Errorf("net balances sum to %v after normalization, want 0", totalNet)
	}
}

// Two builds over identical inputs must produce identical output.
func TestBuildDeterministic(t *testing.T) {
	participants := tripParticipants()
	expenses := []Expense{
		{ID: "e1", PayerID: "p1", Amount: 100, SplitType: split.TypeEqual},
		{ID: "e2", PayerID: "p2", Amount: 77.77, SplitType: split.TypePercentages,
			SplitDetails: map[string]float64{"p1": 40, "p2": 35, "p3": 25}},
	}
	payments := []Payment{{FromID: "p3", ToID: "p1", Amount: 10}}

	first, err := Build(expenses, participants, payments)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	second, err := Build(expenses, participants, payments)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated builds differ:\n%+v\n%+v", first, second)
	}
}
