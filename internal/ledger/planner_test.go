package ledger

import (
	"math"
	"testing"

	"github.com/tripledger/tripledger/internal/ledger/split"
)

func TestPlan(t *testing.T) {
	tests := []struct {
		name         string
		entries      []Entry
		want         []Transfer
		validateFunc func(t *testing.T, transfers []Transfer)
	}{
		{
			name: "largest debtor pays largest creditor first",
			entries: []Entry{
				{ID: "1", Name: "One", NetBalance: 800},
				{ID: "2", Name: "Two", NetBalance: -500},
				{ID: "3", Name: "Three", NetBalance: -300},
			},
			want: []Transfer{
				{From: "2", To: "1", Amount: 500, FromName: "Two", ToName: "One"},
				{From: "3", To: "1", Amount: 300, FromName: "Three", ToName: "One"},
			},
		},
		{
			name: "creditor split across two debtors",
			entries: []Entry{
				{ID: "a", Name: "A", NetBalance: -60},
				{ID: "b", Name: "B", NetBalance: 100},
				{ID: "c", Name: "C", NetBalance: -40},
			},
			want: []Transfer{
				{From: "a", To: "b", Amount: 60, FromName: "A", ToName: "B"},
				{From: "c", To: "b", Amount: 40, FromName: "C", ToName: "B"},
			},
		},
		{
			name: "balances within a cent are treated as settled",
			entries: []Entry{
				{ID: "a", Name: "A", NetBalance: 0.01},
				{ID: "b", Name: "B", NetBalance: -0.01},
				{ID: "c", Name: "C", NetBalance: 0},
			},
			want: []Transfer{},
		},
		{
			name:    "empty ledger plans nothing",
			entries: nil,
			want:    []Transfer{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plan(tt.entries)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d transfers, want %d: %+v", len(got), len(tt.want), got)
			}
			for i, want := range tt.want {
				if got[i] != want {
					t.Errorf("transfer[%d] = %+v, want %+v", i, got[i], want)
				}
			}
		})
	}
}

// The transferred total must equal the sum of positive balances, and the
// transfer count must stay below the number of unsettled participants.
func TestPlanConservationAndBound(t *testing.T) {
	cases := [][]Entry{
		{
			{ID: "a", NetBalance: 250.40},
			{ID: "b", NetBalance: -100.15},
			{ID: "c", NetBalance: -75.10},
			{ID: "d", NetBalance: -75.15},
		},
		{
			{ID: "a", NetBalance: 10},
			{ID: "b", NetBalance: 20},
			{ID: "c", NetBalance: 30},
			{ID: "d", NetBalance: -60},
		},
		{
			{ID: "a", NetBalance: 33.34},
			{ID: "b", NetBalance: -33.33},
			{ID: "c", NetBalance: 66.66},
			{ID: "d", NetBalance: -66.67},
		},
	}

	for _, entries := range cases {
		var credit float64
		unsettled := 0
		for _, e := range entries {
			if e.NetBalance > 0.01 {
				credit += e.NetBalance
			}
			if math.Abs(e.NetBalance) > 0.01 {
				unsettled++
			}
		}

		transfers := Plan(entries)

		var moved float64
		for _, tr := range transfers {
			moved += tr.Amount
			if tr.Amount <= 0 {
				t.Errorf("non-positive transfer amount: %+v", tr)
			}
		}
		if math.Abs(moved-credit) > 0.02 {
			t.Errorf("moved %v, want %v", moved, credit)
		}
		if len(transfers) > unsettled-1 {
			t.Errorf("%d transfers for %d unsettled participants", len(transfers), unsettled)
		}
	}
}

// A built ledger should settle completely: replaying the plan as recorded
// payments zeroes every balance.
func TestPlanSettlesBuiltLedger(t *testing.T) {
	participants := tripParticipants()
	expenses := []Expense{
		{ID: "e1", PayerID: "p1", Amount: 300, SplitType: split.TypeEqual},
		{ID: "e2", PayerID: "p2", Amount: 120.45, SplitType: split.TypeEqual},
	}

	entries, err := Build(expenses, participants, nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	payments := make([]Payment, len(Plan(entries)))
	for i, tr := range Plan(entries) {
		payments[i] = Payment{FromID: tr.From, ToID: tr.To, Amount: tr.Amount}
	}

	settled, err := Build(expenses, participants, payments)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	for _, entry := range settled {
		if math.Abs(entry.NetBalance) > 0.01 {
			t.Errorf("%s still has balance %v after settling", entry.ID, entry.NetBalance)
		}
	}
}
