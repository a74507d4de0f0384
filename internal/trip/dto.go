package trip

import "time"

// ParticipantInput describes one person when creating or updating a trip
type ParticipantInput struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	Email     *string `json:"email,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// CreateTripRequest represents the request to create a trip
type CreateTripRequest struct {
	Title        string             `json:"title" validate:"required,min=1,max=255"`
	StartDate    time.Time          `json:"start_date" validate:"required"`
	EndDate      time.Time          `json:"end_date" validate:"required"`
	Currency     string             `json:"currency,omitempty"`
	Participants []ParticipantInput `json:"participants" validate:"required,min=1"`
}

// UpdateTripRequest represents the request to update a trip. Participants,
// when present, are added to the existing roster; existing participants are
// never removed because expenses may reference them.
type UpdateTripRequest struct {
	Title           *string            `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	StartDate       *time.Time         `json:"start_date,omitempty"`
	EndDate         *time.Time         `json:"end_date,omitempty"`
	Currency        *string            `json:"currency,omitempty"`
	NewParticipants []ParticipantInput `json:"new_participants,omitempty"`
}

// TripResponse represents the response for a trip
type TripResponse struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	Currency     string        `json:"currency"`
	OwnerID      string        `json:"owner_id"`
	Participants []Participant `json:"participants"`
	CreatedAt    string        `json:"created_at"`
}

// ToResponse converts a Trip model to a TripResponse DTO
func (t *Trip) ToResponse() *TripResponse {
	return &TripResponse{
		ID:           t.ID,
		Title:        t.Title,
		StartDate:    t.StartDate.Format("2006-01-02"),
		EndDate:      t.EndDate.Format("2006-01-02"),
		Currency:     t.Currency,
		OwnerID:      t.OwnerID,
		Participants: t.Participants,
		CreatedAt:    t.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
