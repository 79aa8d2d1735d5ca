package domain

import "time"

// Product is a catalog entry. Prices are stored as decimal strings the way
// the storefront displays them (e.g. "GH₵25.00"); use ParsePrice before
// doing arithmetic. Products are immutable from the cart's point of view.
type Product struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Price     string    `json:"price"`
	ImageURL  string    `json:"imageUrl"`
	Gallery   []string  `json:"gallery,omitempty"`
	Intro     string    `json:"intro,omitempty"`
	HowToUse  string    `json:"howToUse,omitempty"`
	Shade     string    `json:"shade,omitempty"`
	Finish    string    `json:"finish,omitempty"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
