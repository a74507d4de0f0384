package settlement

import "github.com/tripledger/tripledger/internal/ledger"

// RecordSettlementRequest represents the request to record a payment between
// two trip participants
type RecordSettlementRequest struct {
	TripID string  `json:"trip_id" example:"9a7b1c2d-0e4f-4a6b-8c1d-2e3f4a5b6c7d"`
	FromID string  `json:"from_id" example:"p2"`
	ToID   string  `json:"to_id" example:"p1"`
	Amount float64 `json:"amount" example:"500"`
}

// SettlementResponse represents a recorded settlement in API responses
type SettlementResponse struct {
	ID        string  `json:"id"`
	TripID    string  `json:"trip_id"`
	FromID    string  `json:"from_id"`
	FromName  string  `json:"from_name,omitempty"`
	ToID      string  `json:"to_id"`
	ToName    string  `json:"to_name,omitempty"`
	Amount    float64 `json:"amount"`
	SettledAt string  `json:"settled_at"`
}

// ToResponse converts a Settlement to a SettlementResponse. Names are looked
// up by the caller because the settlement row stores only participant ids.
func (s *Settlement) ToResponse(names map[string]string) *SettlementResponse {
	return &SettlementResponse{
		ID:        s.ID,
		TripID:    s.TripID,
		FromID:    s.FromID,
		FromName:  names[s.FromID],
		ToID:      s.ToID,
		ToName:    names[s.ToID],
		Amount:    s.Amount,
		SettledAt: s.SettledAt.Format("2006-01-02T15:04:05Z"),
	}
}

// BalanceSheetResponse is the full per-person balance sheet for a trip
type BalanceSheetResponse struct {
	TripID   string         `json:"trip_id"`
	Currency string         `json:"currency"`
	Entries  []ledger.Entry `json:"entries"`
}

// PlanResponse is the minimal set of payments that settles a trip
type PlanResponse struct {
	TripID    string            `json:"trip_id"`
	Currency  string            `json:"currency"`
	Transfers []ledger.Transfer `json:"transfers"`
}
