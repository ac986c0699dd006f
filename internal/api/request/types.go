package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// FlipRequest is the request body for clicking a card
type FlipRequest struct {
	CardID string `json:"card_id"`
}
