package split

// Input carries everything needed to divide a single expense.
// Tax and tip each accept a percent or an absolute value; when both are
// present the percent wins, matching how expenses are entered in the UI.
type Input struct {
	Amount      float64
	Type        Type
	Details     map[string]float64
	TaxPercent  float64
	TaxAbsolute float64
	TipPercent  float64
	TipAbsolute float64
}

// Calculation is the derived breakdown of one expense. Shares always sum
// exactly to TotalExpense after rounding-remainder distribution.
type Calculation struct {
	TotalExpense float64
	TaxAmount    float64
	TipAmount    float64
	Shares       map[string]float64
}

var defaultFactory = NewFactory()

// Compute resolves tax and tip, totals the expense, and divides it among
// participantIDs according to the input's split type. Pure function; the
// order of participantIDs matters for the EQUAL remainder policy.
func Compute(in Input, participantIDs []string) (*Calculation, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	taxAmount := resolveCharge(in.Amount, in.TaxPercent, in.TaxAbsolute)
	tipAmount := resolveCharge(in.Amount, in.TipPercent, in.TipAbsolute)
	totalExpense := round2(in.Amount + taxAmount + tipAmount)

	strategy, err := defaultFactory.Create(in.Type)
	if err != nil {
		return nil, err
	}

	shares, err := strategy.Shares(totalExpense, participantIDs, in.Details)
	if err != nil {
		return nil, err
	}

	return &Calculation{
		TotalExpense: totalExpense,
		TaxAmount:    taxAmount,
		TipAmount:    tipAmount,
		Shares:       shares,
	}, nil
}

// resolveCharge computes a tax or tip amount. A positive percent takes
// precedence over an absolute value; both default to zero when unset.
func resolveCharge(grossAmount, percent, absolute float64) float64 {
	if percent > 0 {
		return round2(grossAmount * percent / 100)
	}
	if absolute > 0 {
		return round2(absolute)
	}
	return 0
}
