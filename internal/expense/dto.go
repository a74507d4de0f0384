package expense

import (
	"github.com/tripledger/tripledger/internal/ledger/split"
)

// CreateExpenseRequest represents the request to log an expense.
// ExpenseDate is a calendar date in YYYY-MM-DD form.
type CreateExpenseRequest struct {
	TripID       string             `json:"trip_id" example:"9a7b1c2d-0e4f-4a6b-8c1d-2e3f4a5b6c7d"`
	PayerID      string             `json:"payer_id" example:"p1"`
	Amount       float64            `json:"amount" example:"1200.50"`
	Currency     string             `json:"currency" example:"INR"`
	ExpenseDate  string             `json:"expense_date" example:"2026-03-14"`
	Category     string             `json:"category" example:"food"`
	Description  string             `json:"description" example:"Dinner at the beach shack"`
	ReceiptURL   *string            `json:"receipt_url,omitempty"`
	TaxPercent   *float64           `json:"tax_percent,omitempty" example:"5"`
	TaxAbsolute  *float64           `json:"tax_absolute,omitempty"`
	TipPercent   *float64           `json:"tip_percent,omitempty" example:"10"`
	TipAbsolute  *float64           `json:"tip_absolute,omitempty"`
	SplitType    string             `json:"split_type" example:"EQUAL"`
	SplitDetails map[string]float64 `json:"split_details,omitempty"`
}

// UpdateExpenseRequest represents the request to update an expense.
// Nil fields are left unchanged; SplitDetails replaces the stored map
// wholesale when present.
type UpdateExpenseRequest struct {
	PayerID      *string            `json:"payer_id,omitempty"`
	Amount       *float64           `json:"amount,omitempty"`
	Currency     *string            `json:"currency,omitempty"`
	ExpenseDate  *string            `json:"expense_date,omitempty"`
	Category     *string            `json:"category,omitempty"`
	Description  *string            `json:"description,omitempty"`
	ReceiptURL   *string            `json:"receipt_url,omitempty"`
	TaxPercent   *float64           `json:"tax_percent,omitempty"`
	TaxAbsolute  *float64           `json:"tax_absolute,omitempty"`
	TipPercent   *float64           `json:"tip_percent,omitempty"`
	TipAbsolute  *float64           `json:"tip_absolute,omitempty"`
	SplitType    *string            `json:"split_type,omitempty"`
	SplitDetails map[string]float64 `json:"split_details,omitempty"`
}

// BreakdownResponse is the computed charge breakdown for one expense
type BreakdownResponse struct {
	TaxAmount    float64            `json:"tax_amount"`
	TipAmount    float64            `json:"tip_amount"`
	TotalExpense float64            `json:"total_expense"`
	Shares       map[string]float64 `json:"shares"`
}

// ExpenseResponse represents an expense in API responses. Breakdown is
// populated on single-expense reads and omitted from listings.
type ExpenseResponse struct {
	ID           string             `json:"id"`
	TripID       string             `json:"trip_id"`
	PayerID      string             `json:"payer_id"`
	Amount       float64            `json:"amount"`
	Currency     string             `json:"currency"`
	ExpenseDate  string             `json:"expense_date"`
	Category     string             `json:"category"`
	Description  string             `json:"description"`
	ReceiptURL   *string            `json:"receipt_url,omitempty"`
	TaxPercent   *float64           `json:"tax_percent,omitempty"`
	TaxAbsolute  *float64           `json:"tax_absolute,omitempty"`
	TipPercent   *float64           `json:"tip_percent,omitempty"`
	TipAbsolute  *float64           `json:"tip_absolute,omitempty"`
	SplitType    string             `json:"split_type"`
	SplitDetails map[string]float64 `json:"split_details,omitempty"`
	Breakdown    *BreakdownResponse `json:"breakdown,omitempty"`
	CreatedAt    string             `json:"created_at"`
}

// ToResponse converts an Expense to an ExpenseResponse
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:           e.ID,
		TripID:       e.TripID,
		PayerID:      e.PayerID,
		Amount:       e.Amount,
		Currency:     e.Currency,
		ExpenseDate:  e.ExpenseDate.Format("2006-01-02"),
		Category:     e.Category,
		Description:  e.Description,
		ReceiptURL:   e.ReceiptURL,
		TaxPercent:   e.TaxPercent,
		TaxAbsolute:  e.TaxAbsolute,
		TipPercent:   e.TipPercent,
		TipAbsolute:  e.TipAbsolute,
		SplitType:    string(e.SplitType),
		SplitDetails: e.SplitDetails,
		CreatedAt:    e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToDetailResponse converts an expense plus its computed calculation
func ToDetailResponse(e *Expense, calc *split.Calculation) *ExpenseResponse {
	resp := e.ToResponse()
	if calc != nil {
		resp.Breakdown = &BreakdownResponse{
			TaxAmount:    calc.TaxAmount,
			TipAmount:    calc.TipAmount,
			TotalExpense: calc.TotalExpense,
			Shares:       calc.Shares,
		}
	}
	return resp
}
