package split

import (
	"math"
	"sort"
)

// =============================================================================
// PERCENTAGES SPLIT STRATEGY
// Divides the expense total by stated per-participant percentages
// =============================================================================

// PercentagesStrategy implements the Strategy interface for percentage splits
type PercentagesStrategy struct{}

// Type returns the split type identifier
func (s *PercentagesStrategy) Type() Type {
	return TypePercentages
}

// Validate checks that percentages are present and sum to 100
func (s *PercentagesStrategy) Validate(totalExpense float64, participantIDs []string, details map[string]float64) error {
	if len(details) == 0 {
		return ErrMissingDetails
	}

	var sum float64
	for _, pct := range details {
		sum += pct
	}
	if math.Abs(sum-100) > tolerance {
		return ErrPercentageMismatch
	}
	return nil
}

// Shares computes each participant's percentage of the total in sorted id
// order. Every participant except the lexicographically last gets a rounded
// share; the last absorbs the residual, so the shares reconcile exactly no
// matter how the individual roundings fall.
func (s *PercentagesStrategy) Shares(totalExpense float64, participantIDs []string, details map[string]float64) (map[string]float64, error) {
	if err := s.Validate(totalExpense, participantIDs, details); err != nil {
		return nil, err
	}

	selected := make([]string, 0, len(details))
	for id := range details {
		selected = append(selected, id)
	}
	sort.Strings(selected)

	shares := make(map[string]float64, len(selected))
	var assigned float64
	for _, id := range selected[:len(selected)-1] {
		share := round2(totalExpense * details[id] / 100)
		shares[id] = share
		assigned += share
	}

	last := selected[len(selected)-1]
	shares[last] = round2(totalExpense - assigned)

	return shares, nil
}
