package settlement

import (
	"time"

	"github.com/tripledger/tripledger/internal/ledger"
)

// Settlement is a recorded peer-to-peer payment on a trip. Once recorded it
// reduces both participants' balances in every subsequent sheet build.
type Settlement struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id"`
	FromID    string    `json:"from_id"`
	ToID      string    `json:"to_id"`
	Amount    float64   `json:"amount"`
	SettledAt time.Time `json:"settled_at"`
}

// ToLedger converts the stored record into the ledger input type
func (s *Settlement) ToLedger() ledger.Payment {
	return ledger.Payment{
		FromID:    s.FromID,
		ToID:      s.ToID,
		Amount:    s.Amount,
		SettledAt: s.SettledAt,
	}
}
