package split

import (
	"errors"
	"fmt"
	"math"
)

// Type identifies how an expense total is divided among participants
type Type string

const (
	TypeEqual         Type = "EQUAL"
	TypeSelectedEqual Type = "SELECTED_EQUAL"
	TypeCustomAmounts Type = "CUSTOM_AMOUNTS"
	TypePercentages   Type = "PERCENTAGES"
)

// Valid reports whether t is one of the four known split types
func (t Type) Valid() bool {
	switch t {
	case TypeEqual, TypeSelectedEqual, TypeCustomAmounts, TypePercentages:
		return true
	}
	return false
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Shares divides totalExpense among participants and returns each
	// participant's share, summing exactly to totalExpense
	Shares(totalExpense float64, participantIDs []string, details map[string]float64) (map[string]float64, error)

	// Type returns the type identifier for this strategy
	Type() Type

	// Validate checks if the inputs are valid for this strategy
	Validate(totalExpense float64, participantIDs []string, details map[string]float64) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType Type) (Strategy, error) {
	switch splitType {
	case TypeEqual:
		return &EqualStrategy{}, nil
	case TypeSelectedEqual:
		return &SelectedEqualStrategy{}, nil
	case TypeCustomAmounts:
		return &CustomAmountsStrategy{}, nil
	case TypePercentages:
		return &PercentagesStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSplitType, splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(Type(splitType))
}

var (
	ErrInvalidAmount      = errors.New("expense amount must be greater than 0")
	ErrNoParticipants     = errors.New("at least one participant is required")
	ErrMissingDetails     = errors.New("split details required for this split type")
	ErrSplitMismatch      = errors.New("custom amounts must sum to the expense total")
	ErrPercentageMismatch = errors.New("percentages must sum to 100")
	ErrUnknownSplitType   = errors.New("unknown split type")
)

// tolerance used when reconciling sums of rounded monetary values
const tolerance = 0.01

// round2 rounds a value half-up to 2 decimal places (cent granularity)
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
