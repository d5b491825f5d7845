package domain

import (
	"encoding/json"
	"time"
)

// User is the identity root. Guest users carry IsGuest and typically
// no email. Preferences is an opaque blob consumed by the
// recommendation side.
type User struct {
	ID              string          `json:"id"`
	Email           *string         `json:"email,omitempty"`
	FirstName       *string         `json:"firstName,omitempty"`
	LastName        *string         `json:"lastName,omitempty"`
	Phone           *string         `json:"phone,omitempty"`
	ProfileImageURL *string         `json:"profileImageUrl,omitempty"`
	IsGuest         bool            `json:"isGuest"`
	Preferences     json.RawMessage `json:"preferences,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Address is a saved postal address. At most one address per user is
// the default.
type Address struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"addressLine1"`
	AddressLine2 *string   `json:"addressLine2,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Pincode      string    `json:"pincode"`
	Country      string    `json:"country"`
	IsDefault    bool      `json:"isDefault"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NotificationType classifies a notification for client rendering.
type NotificationType string

const (
	NotificationNewArrival  NotificationType = "new_arrival"
	NotificationDiscount    NotificationType = "discount"
	NotificationRestock     NotificationType = "restock"
	NotificationOrderUpdate NotificationType = "order_update"
)

// Notification is a user-facing message. A nil UserID means a
// broadcast.
type Notification struct {
	ID        string           `json:"id"`
	UserID    *string          `json:"userId,omitempty"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"isRead"`
	Data      json.RawMessage  `json:"data,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
