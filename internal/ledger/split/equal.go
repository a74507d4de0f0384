package split

import "math"

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense total equally among all trip participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() Type {
	return TypeEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(totalExpense float64, participantIDs []string, details map[string]float64) error {
	if len(participantIDs) == 0 {
		return ErrNoParticipants
	}
	return nil
}

// Shares divides the total equally. Each participant gets the floor-to-cent
// base share; the leftover cents go one each to the first participants in
// input order, so the caller's ordering is part of the contract.
func (s *EqualStrategy) Shares(totalExpense float64, participantIDs []string, details map[string]float64) (map[string]float64, error) {
	if err := s.Validate(totalExpense, participantIDs, details); err != nil {
		return nil, err
	}
	return equalShares(totalExpense, participantIDs), nil
}

// equalShares is shared with SelectedEqualStrategy, which applies the same
// division to a restricted participant set.
func equalShares(totalExpense float64, participantIDs []string) map[string]float64 {
	n := len(participantIDs)
	baseShare := math.Floor(totalExpense/float64(n)*100) / 100
	remainderCents := int(math.Round((totalExpense - baseShare*float64(n)) * 100))

	shares := make(map[string]float64, n)
	for i, id := range participantIDs {
		share := baseShare
		if i < remainderCents {
			share += 0.01
		}
		shares[id] = round2(share)
	}
	return shares
}
