package split

import "math"

// =============================================================================
// CUSTOM_AMOUNTS SPLIT STRATEGY
// Each selected participant owes a stated amount; amounts must reconcile
// with the post-tax/tip expense total
// =============================================================================

// CustomAmountsStrategy implements the Strategy interface for exact-amount splits
type CustomAmountsStrategy struct{}

// Type returns the split type identifier
func (s *CustomAmountsStrategy) Type() Type {
	return TypeCustomAmounts
}

// Validate checks that amounts are present and sum to the expense total.
// The reconciliation target is the total including tax and tip, not the raw
// gross amount.
func (s *CustomAmountsStrategy) Validate(totalExpense float64, participantIDs []string, details map[string]float64) error {
	if len(details) == 0 {
		return ErrMissingDetails
	}

	var sum float64
	for _, amount := range details {
		sum += amount
	}
	if math.Abs(sum-totalExpense) > tolerance {
		return ErrSplitMismatch
	}
	return nil
}

// Shares returns the stated amounts verbatim once they validate
func (s *CustomAmountsStrategy) Shares(totalExpense float64, participantIDs []string, details map[string]float64) (map[string]float64, error) {
	if err := s.Validate(totalExpense, participantIDs, details); err != nil {
		return nil, err
	}

	shares := make(map[string]float64, len(details))
	for id, amount := range details {
		shares[id] = amount
	}
	return shares, nil
}
