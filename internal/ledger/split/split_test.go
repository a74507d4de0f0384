package split

import (
	"errors"
	"math"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		in           Input
		participants []string
		wantErr      error
		validateFunc func(t *testing.T, calc *Calculation)
	}{
		{
			name:         "equal split of 100 among 3 gives extra cent to first participant",
			in:           Input{Amount: 100, Type: TypeEqual},
			participants: []string{"a", "b", "c"},
			validateFunc: func(t *testing.T, calc *Calculation) {
				want := map[string]float64{"a": 33.34, "b": 33.33, "c": 33.33}
				for id, share := range want {
					if calc.Shares[id] != share {
						t.Errorf("share[%s] = %v, want %v", id, calc.Shares[id], share)
					}
				}
			},
		},
		{
			name: "equal split with percent tax and tip",
			in: Input{
				Amount:     1000,
				Type:       TypeEqual,
				TaxPercent: 5,
				TipPercent: 10,
			},
			participants: []string{"1", "2", "3", "4", "5"},
			validateFunc: func(t *testing.T, calc *Calculation) {
				if calc.TaxAmount != 50 {
					t.Errorf("tax = %v, want 50", calc.TaxAmount)
				}
				if calc.TipAmount != 100 {
					t.Errorf("tip = %v, want 100", calc.TipAmount)
				}
				if calc.TotalExpense != 1150 {
					t.Errorf("total = %v, want 1150", calc.TotalExpense)
				}
				for id, share := range calc.Shares {
					if share != 230 {
						t.Errorf("share[%s] = %v, want 230", id, share)
					}
				}
			},
		},
		{
			name: "percent tax takes precedence over absolute",
			in: Input{
				Amount:      200,
				Type:        TypeEqual,
				TaxPercent:  10,
				TaxAbsolute: 99,
			},
			participants: []string{"a", "b"},
			validateFunc: func(t *testing.T, calc *Calculation) {
				if calc.TaxAmount != 20 {
					t.Errorf("tax = %v, want 20", calc.TaxAmount)
				}
				if calc.TotalExpense != 220 {
					t.Errorf("total = %v, want 220", calc.TotalExpense)
				}
			},
		},
		{
			name: "absolute tip used when no percent given",
			in: Input{
				Amount:      80,
				Type:        TypeEqual,
				TipAbsolute: 12.5,
			},
			participants: []string{"a", "b"},
			validateFunc: func(t *testing.T, calc *Calculation) {
				if calc.TipAmount != 12.5 {
					t.Errorf("tip = %v, want 12.5", calc.TipAmount)
				}
				if calc.TotalExpense != 92.5 {
					t.Errorf("total = %v, want 92.5", calc.TotalExpense)
				}
			},
		},
		{
			name: "selected equal splits among detail keys only",
			in: Input{
				Amount:  8000,
				Type:    TypeSelectedEqual,
				Details: map[string]float64{"1": 1, "3": 1, "5": 1},
			},
			participants: []string{"1", "2", "3", "4", "5"},
			validateFunc: func(t *testing.T, calc *Calculation) {
				if len(calc.Shares) != 3 {
					t.Fatalf("got %d shares, want 3", len(calc.Shares))
				}
				if _, ok := calc.Shares["2"]; ok {
					t.Error("participant 2 should have no share")
				}
				if _, ok := calc.Shares["4"]; ok {
					t.Error("participant 4 should have no share")
				}
				var sum float64
				for _, share := range calc.Shares {
					sum += share
				}
				if math.Abs(sum-8000) > 0.001 {
					t.Errorf("shares sum = %v, want 8000", sum)
				}
			},
		},
		{
			name: "selected equal remainder goes to sorted-first ids",
			in: Input{
				Amount:  100,
				Type:    TypeSelectedEqual,
				Details: map[string]float64{"c": 1, "a": 1, "b": 1},
			},
			participants: []string{"a", "b", "c"},
			validateFunc: func(t *testing.T, calc *Calculation) {
				want := map[string]float64{"a": 33.34, "b": 33.33, "c": 33.33}
				for id, share := range want {
					if calc.Shares[id] != share {
						t.Errorf("share[%s] = %v, want %v", id, calc.Shares[id], share)
					}
				}
			},
		},
		{
			name: "custom amounts pass through when they reconcile",
			in: Input{
				Amount:  150,
				Type:    TypeCustomAmounts,
				Details: map[string]float64{"a": 100, "b": 50},
			},
			participants: []string{"a", "b", "c"},
			validateFunc: func(t *testing.T, calc *Calculation) {
				if calc.Shares["a"] != 100 || calc.Shares["b"] != 50 {
					t.Errorf("shares = %v, want a:100 b:50", calc.Shares)
				}
				if _, ok := calc.Shares["c"]; ok {
					t.Error("participant c should have no share")
				}
			},
		},
		{
			name: "custom amounts must reconcile with post-tax total",
			in: Input{
				Amount:     100,
				Type:       TypeCustomAmounts,
				TaxPercent: 10,
				Details:    map[string]float64{"a": 60, "b": 50},
			},
			participants: []string{"a", "b"},
			validateFunc: func(t *testing.T, calc *Calculation) {
				// 100 + 10% tax = 110; 60 + 50 reconciles with that, not with 100.
				if calc.TotalExpense != 110 {
					t.Errorf("total = %v, want 110", calc.TotalExpense)
				}
			},
		},
		{
			name: "percentages split exactly",
			in: Input{
				Amount:  1000,
				Type:    TypePercentages,
				Details: map[string]float64{"1": 50, "2": 30, "3": 20},
			},
			participants: []string{"1", "2", "3"},
			validateFunc: func(t *testing.T, calc *Calculation) {
				want := map[string]float64{"1": 500, "2": 300, "3": 200}
				for id, share := range want {
					if calc.Shares[id] != share {
						t.Errorf("share[%s] = %v, want %v", id, calc.Shares[id], share)
					}
				}
			},
		},
		{
			name: "percentages last participant absorbs rounding residual",
			in: Input{
				Amount:  100,
				Type:    TypePercentages,
				Details: map[string]float64{"a": 33.33, "b": 33.33, "c": 33.34},
			},
			participants: []string{"a", "b", "c"},
			validateFunc: func(t *testing.T, calc *Calculation) {
				var sum float64
				for _, share := range calc.Shares {
					sum += share
				}
				if math.Abs(sum-100) > 0.001 {
					t.Errorf("shares sum = %v, want 100", sum)
				}
			},
		},
		{
			name:         "zero amount rejected",
			in:           Input{Amount: 0, Type: TypeEqual},
			participants: []string{"a"},
			wantErr:      ErrInvalidAmount,
		},
		{
			name:         "negative amount rejected",
			in:           Input{Amount: -5, Type: TypeEqual},
			participants: []string{"a"},
			wantErr:      ErrInvalidAmount,
		},
		{
			name:         "equal split with no participants rejected",
			in:           Input{Amount: 10, Type: TypeEqual},
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "custom amounts without details rejected",
			in:           Input{Amount: 100, Type: TypeCustomAmounts},
			participants: []string{"a", "b"},
			wantErr:      ErrMissingDetails,
		},
		{
			name: "custom amounts off by more than a cent rejected",
			in: Input{
				Amount:  100,
				Type:    TypeCustomAmounts,
				Details: map[string]float64{"a": 60, "b": 50},
			},
			participants: []string{"a", "b"},
			wantErr:      ErrSplitMismatch,
		},
		{
			name:         "percentages without details rejected",
			in:           Input{Amount: 100, Type: TypePercentages},
			participants: []string{"a", "b"},
			wantErr:      ErrMissingDetails,
		},
		{
			name: "percentages not summing to 100 rejected",
			in: Input{
				Amount:  100,
				Type:    TypePercentages,
				Details: map[string]float64{"a": 50, "b": 40},
			},
			participants: []string{"a", "b"},
			wantErr:      ErrPercentageMismatch,
		},
		{
			name:         "unknown split type rejected",
			in:           Input{Amount: 100, Type: Type("WEIGHTED")},
			participants: []string{"a"},
			wantErr:      ErrUnknownSplitType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := Compute(tt.in, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Compute() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compute() unexpected error: %v", err)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, calc)
			}
		})
	}
}

// Shares must sum exactly to the expense total for every split type.
func TestComputeConservation(t *testing.T) {
	participants := []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"}

	inputs := []Input{
		{Amount: 99.97, Type: TypeEqual, TaxPercent: 7.25},
		{Amount: 1234.56, Type: TypeEqual, TipPercent: 18},
		{Amount: 500, Type: TypeSelectedEqual, Details: map[string]float64{"p2": 1, "p5": 1, "p7": 1}},
		{Amount: 250.10, Type: TypeCustomAmounts, Details: map[string]float64{"p1": 100.10, "p3": 150}},
		{Amount: 777.77, Type: TypePercentages, Details: map[string]float64{"p1": 12.5, "p2": 37.5, "p4": 50}},
	}

	for _, in := range inputs {
		calc, err := Compute(in, participants)
		if err != nil {
			t.Fatalf("Compute(%v) error: %v", in.Type, err)
		}
		var sum float64
		for _, share := range calc.Shares {
			sum += share
		}
		if math.Abs(sum-calc.TotalExpense) > 0.01 {
			t.Errorf("%s: shares sum %v differs from total %v", in.Type, sum, calc.TotalExpense)
		}
	}
}
