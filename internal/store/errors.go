package store

import (
	"errors"
	"fmt"
)

// The store distinguishes three error kinds so the adapter layer can
// map them to caller-facing statuses deterministically. Every specific
// sentinel wraps its kind; classify with errors.Is against the kind,
// branch on the sentinel when the distinction matters.
var (
	ErrNotFound      = errors.New("store: not found")
	ErrInvalidInput  = errors.New("store: invalid request")
	ErrDataIntegrity = errors.New("store: data integrity violation")
)

// Not-found sentinels, one per entity.
var (
	ErrUserNotFound         = fmt.Errorf("%w: user", ErrNotFound)
	ErrProductNotFound      = fmt.Errorf("%w: product", ErrNotFound)
	ErrCategoryNotFound     = fmt.Errorf("%w: category", ErrNotFound)
	ErrCartItemNotFound     = fmt.Errorf("%w: cart item", ErrNotFound)
	ErrOrderNotFound        = fmt.Errorf("%w: order", ErrNotFound)
	ErrReviewNotFound       = fmt.Errorf("%w: review", ErrNotFound)
	ErrAddressNotFound      = fmt.Errorf("%w: address", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("%w: notification", ErrNotFound)
	ErrCollectionNotFound   = fmt.Errorf("%w: collection", ErrNotFound)
)

// Invalid-request sentinels.
var (
	ErrIdentityRequired  = fmt.Errorf("%w: userId or sessionId required", ErrInvalidInput)
	ErrUserIDRequired    = fmt.Errorf("%w: userId required", ErrInvalidInput)
	ErrInvalidQuantity   = fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	ErrInvalidRating     = fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	ErrInvalidStatus     = fmt.Errorf("%w: unknown order status", ErrInvalidInput)
	ErrIllegalTransition = fmt.Errorf("%w: illegal order status transition", ErrInvalidInput)
	ErrOrderWithoutItems = fmt.Errorf("%w: order must contain at least one item", ErrInvalidInput)
	ErrTotalsMismatch    = fmt.Errorf("%w: order totals do not match item snapshots", ErrInvalidInput)
)

// Uniqueness conflicts. These wrap ErrInvalidInput for kind
// classification but are mapped to 409 by the HTTP layer.
var (
	ErrProductSlugExists    = fmt.Errorf("%w: product slug already exists", ErrInvalidInput)
	ErrCategorySlugExists   = fmt.Errorf("%w: category slug already exists", ErrInvalidInput)
	ErrCollectionSlugExists = fmt.Errorf("%w: collection slug already exists", ErrInvalidInput)
)

// Integrity sentinels: a read-time join found a dangling product
// reference. Reads fail eagerly rather than dropping the row.
var (
	ErrCartProductMissing  = fmt.Errorf("%w: cart item references a missing product", ErrDataIntegrity)
	ErrOrderProductMissing = fmt.Errorf("%w: order item references a missing product", ErrDataIntegrity)
)
