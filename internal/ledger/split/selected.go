package split

import "sort"

// =============================================================================
// SELECTED_EQUAL SPLIT STRATEGY
// Divides the expense total equally among a chosen subset of participants
// =============================================================================

// SelectedEqualStrategy implements the Strategy interface for subset splits.
// The subset is the key set of the split details; the values are ignored.
type SelectedEqualStrategy struct{}

// Type returns the split type identifier
func (s *SelectedEqualStrategy) Type() Type {
	return TypeSelectedEqual
}

// Validate checks if the inputs are valid for a selected-equal split
func (s *SelectedEqualStrategy) Validate(totalExpense float64, participantIDs []string, details map[string]float64) error {
	if len(details) == 0 && len(participantIDs) == 0 {
		return ErrNoParticipants
	}
	return nil
}

// Shares divides the total equally among the participants selected in the
// details map, taken in sorted id order before remainder distribution.
// Note the asymmetry with EQUAL, which distributes in input order; both
// policies are load-bearing for reproducible cent assignment.
// With no details the split falls back to all participants.
func (s *SelectedEqualStrategy) Shares(totalExpense float64, participantIDs []string, details map[string]float64) (map[string]float64, error) {
	if err := s.Validate(totalExpense, participantIDs, details); err != nil {
		return nil, err
	}

	selected := participantIDs
	if len(details) > 0 {
		selected = make([]string, 0, len(details))
		for id := range details {
			selected = append(selected, id)
		}
		sort.Strings(selected)
	}

	return equalShares(totalExpense, selected), nil
}
