package layout

import "github.com/mcoot/memorygame/internal/model"

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // success, error, info
	Message string
}

// PageData holds the values every page needs
type PageData struct {
	Title  string
	Player *model.Player
	Flash  *FlashMessage
}
