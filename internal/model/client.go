package model

import "time"

// Client is a customer record documents can reference.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientPatch holds a partial client update.
type ClientPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}
