package domain

import "time"

// CartItem is an ephemeral cart row. It must carry at least one
// identity key: UserID for authenticated carts, SessionID for guests.
type CartItem struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"userId,omitempty"`
	SessionID *string   `json:"sessionId,omitempty"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Size      *string   `json:"size,omitempty"`
	Color     *string   `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartItemWithProduct is the cart read view with the referenced
// product joined in. A cart row whose product no longer exists fails
// the read; it is never silently dropped.
type CartItemWithProduct struct {
	CartItem
	Product Product `json:"product"`
}

// WishlistItem requires an authenticated identity; guests cannot
// wishlist.
type WishlistItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
}
