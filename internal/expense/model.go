package expense

import (
	"time"

	"github.com/tripledger/tripledger/internal/ledger"
	"github.com/tripledger/tripledger/internal/ledger/split"
)

// Expense represents one logged expense on a trip. Tax and tip come in two
// flavors each; a percent value takes precedence over an absolute one when
// both are set.
type Expense struct {
	ID           string             `json:"id"`
	TripID       string             `json:"trip_id"`
	PayerID      string             `json:"payer_id"`
	Amount       float64            `json:"amount"`
	Currency     string             `json:"currency"`
	ExpenseDate  time.Time          `json:"expense_date"`
	Category     string             `json:"category"`
	Description  string             `json:"description"`
	ReceiptURL   *string            `json:"receipt_url,omitempty"`
	TaxPercent   *float64           `json:"tax_percent,omitempty"`
	TaxAbsolute  *float64           `json:"tax_absolute,omitempty"`
	TipPercent   *float64           `json:"tip_percent,omitempty"`
	TipAbsolute  *float64           `json:"tip_absolute,omitempty"`
	SplitType    split.Type         `json:"split_type"`
	SplitDetails map[string]float64 `json:"split_details"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ToLedger converts the stored record into the ledger input type. Absent
// tax/tip charges become zero, which the calculator treats as "none".
func (e *Expense) ToLedger() ledger.Expense {
	return ledger.Expense{
		ID:           e.ID,
		PayerID:      e.PayerID,
		Amount:       e.Amount,
		TaxPercent:   deref(e.TaxPercent),
		TaxAbsolute:  deref(e.TaxAbsolute),
		TipPercent:   deref(e.TipPercent),
		TipAbsolute:  deref(e.TipAbsolute),
		SplitType:    e.SplitType,
		SplitDetails: e.SplitDetails,
	}
}

// SplitInput builds the calculator input for this expense
func (e *Expense) SplitInput() split.Input {
	return split.Input{
		Amount:      e.Amount,
		Type:        e.SplitType,
		Details:     e.SplitDetails,
		TaxPercent:  deref(e.TaxPercent),
		TaxAbsolute: deref(e.TaxAbsolute),
		TipPercent:  deref(e.TipPercent),
		TipAbsolute: deref(e.TipAbsolute),
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
