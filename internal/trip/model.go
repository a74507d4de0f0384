package trip

import "time"

// Trip represents a shared trip whose expenses are split among participants
type Trip struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	Currency     string        `json:"currency"`
	OwnerID      string        `json:"owner_id"`
	Participants []Participant `json:"participants"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Participant is one person on a trip. Participants are value objects owned
// by the trip, not accounts; the id is unique within the trip only.
type Participant struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}
