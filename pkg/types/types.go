// Package domain defines the core business types for the CampusKart
// marketplace client.
package domain

import (
	"time"
)

// Status represents a product's availability state. The only legal
// transition is StatusAvailable -> StatusSold; sold is terminal.
type Status string

// Status constants.
const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusSold
}

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool {
	return s == StatusSold
}

// CanTransition reports whether moving from s to next is a legal
// lifecycle transition.
func (s Status) CanTransition(next Status) bool {
	return s == StatusAvailable && next == StatusSold
}

// View identifies a top-level application surface. At most one view is
// active at a time.
type View string

// View constants.
const (
	ViewProducts View = "products"
	ViewMessages View = "messages"
	ViewProfile  View = "profile"
	ViewUpload   View = "upload"
)

// Product represents a marketplace listing. Identity and descriptive
// fields are immutable once listed; only Status changes over the
// entity's lifetime.
type Product struct {
	ID          string  `json:"id"                    db:"id"`
	Title       string  `json:"title"                 db:"title"`
	Description string  `json:"description,omitempty" db:"description"`
	Price       float64 `json:"price"                 db:"price"`
	Condition   string  `json:"condition"             db:"condition"`
	ImageURL    string  `json:"image_url,omitempty"   db:"image_url"`

	// Seller identity; SellerID is the authorization anchor for
	// status mutations.
	SellerID    string `json:"seller_id"    db:"seller_id"`
	SellerName  string `json:"seller_name"  db:"seller_name"`
	SellerEmail string `json:"seller_email" db:"seller_email"`

	Status    Status    `json:"status"     db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// OwnedBy reports whether userID is the listing's seller.
func (p *Product) OwnedBy(userID string) bool {
	return userID != "" && p.SellerID == userID
}

// Available reports whether the product can still be bought or
// transitioned.
func (p *Product) Available() bool {
	return p.Status == StatusAvailable
}

// Message represents one message in a product conversation thread.
// ProductID correlates messages into a thread.
type Message struct {
	ID         string    `json:"id"          db:"id"`
	ProductID  string    `json:"product_id"  db:"product_id"`
	SenderID   string    `json:"sender_id"   db:"sender_id"`
	ReceiverID string    `json:"receiver_id" db:"receiver_id"`
	Body       string    `json:"message"     db:"body"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
}

// Session holds the authenticated identity for the process lifetime.
// It is resolved once at startup and read-only thereafter.
type Session struct {
	UserID string `json:"user_id"`
	Token  string `json:"access_token"`
}

// NewProductInput carries the caller-supplied fields for creating a
// listing. Status is never part of the input: entities are always
// created available.
type NewProductInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Condition   string  `json:"condition"`
	ImageURL    string  `json:"image_url,omitempty"`
}
