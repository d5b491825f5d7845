package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"storefront-service/internal/domain"
)

// ProductFilter narrows ListProducts. Zero values are no-ops:
// an empty CategoryID/Search skips that predicate, a false flag does
// not filter (flags narrow only when true and combine conjunctively),
// Offset 0 starts at the beginning, and a nil Limit means unbounded
// while an explicit 0 yields an empty result. Inactive products are
// excluded before any predicate is applied.
type ProductFilter struct {
	CategoryID string
	IsNew      bool
	IsTrending bool
	IsFeatured bool
	IsDeal     bool
	Search     string
	Limit      *int
	Offset     int
}

// ProductUpdate is a partial product update; nil fields are left
// unchanged. Enumerating every mutable field keeps typos from
// silently becoming no-ops, unlike an open key-value bag.
type ProductUpdate struct {
	Name             *string
	Slug             *string
	Description      *string
	Price            *decimal.Decimal
	CompareAtPrice   *decimal.Decimal
	CategoryID       *string
	Images           []string
	Sizes            []string
	Colors           []string
	IsNew            *bool
	IsTrending       *bool
	IsFeatured       *bool
	IsDeal           *bool
	Stock            *int
	Rating           *decimal.Decimal
	ReviewCount      *int
	IsActive         *bool
	Tags             []string
	MaterialInfo     *string
	CareInstructions *string
}

// UserUpdate is a partial user update; nil fields are left unchanged.
type UserUpdate struct {
	Email           *string
	FirstName       *string
	LastName        *string
	Phone           *string
	ProfileImageURL *string
	IsGuest         *bool
	Preferences     json.RawMessage
}

// AddressUpdate is a partial address update; nil fields are left
// unchanged.
type AddressUpdate struct {
	Name         *string
	Phone        *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	Pincode      *string
	Country      *string
	IsDefault    *bool
}

// UserStorer defines user persistence.
type UserStorer interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
}

// ProductStorer defines catalog product persistence.
type ProductStorer interface {
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, id string, update ProductUpdate) (*domain.Product, error)
}

// ProductDetailer composes the product detail view: product, optional
// category, reviews, recommendation buckets.
type ProductDetailer interface {
	GetProductDetail(ctx context.Context, id string) (*domain.ProductWithDetails, error)
	GetProductDetailBySlug(ctx context.Context, slug string) (*domain.ProductWithDetails, error)
}

// CategoryStorer defines catalog taxonomy persistence. Listing returns
// active categories ordered by sort order.
type CategoryStorer interface {
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CartStorer defines cart persistence. Every operation that addresses
// a whole cart takes both identity keys; empty string means absent,
// and at least one must be present.
type CartStorer interface {
	GetCartItems(ctx context.Context, userID, sessionID string) ([]domain.CartItemWithProduct, error)
	AddToCart(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)
	UpdateCartItem(ctx context.Context, id string, quantity int) (*domain.CartItem, error)
	RemoveFromCart(ctx context.Context, id string) error
	ClearCart(ctx context.Context, userID, sessionID string) error
}

// WishlistStorer defines wishlist persistence; wishlists require an
// authenticated user.
type WishlistStorer interface {
	GetWishlistItems(ctx context.Context, userID string) ([]domain.WishlistItem, error)
	AddToWishlist(ctx context.Context, item *domain.WishlistItem) (*domain.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, userID, productID string) error
}

// OrderStorer defines order persistence and the status lifecycle.
// CreateOrder assigns the order number, persists the item snapshots
// and validates the caller-supplied totals against them.
type OrderStorer interface {
	GetOrders(ctx context.Context, userID string) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.OrderWithItems, error)
	CreateOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

// ReviewStorer defines review persistence. Creating a review refreshes
// the product's aggregate rating and review count.
type ReviewStorer interface {
	GetProductReviews(ctx context.Context, productID string) ([]domain.Review, error)
	CreateReview(ctx context.Context, review *domain.Review) (*domain.Review, error)
	UpdateReviewHelpfulness(ctx context.Context, id string, helpful bool) (*domain.Review, error)
}

// AddressStorer defines saved-address persistence. Marking an address
// default clears the flag on the user's other addresses.
type AddressStorer interface {
	GetUserAddresses(ctx context.Context, userID string) ([]domain.Address, error)
	CreateAddress(ctx context.Context, address *domain.Address) (*domain.Address, error)
	UpdateAddress(ctx context.Context, id string, update AddressUpdate) (*domain.Address, error)
	DeleteAddress(ctx context.Context, id string) error
}

// BannerStorer defines promotional banner persistence. Listing returns
// active banners whose display window contains now, ordered by sort
// order.
type BannerStorer interface {
	GetBanners(ctx context.Context, now time.Time) ([]domain.Banner, error)
	CreateBanner(ctx context.Context, banner *domain.Banner) (*domain.Banner, error)
}

// NotificationStorer defines notification persistence.
type NotificationStorer interface {
	GetUserNotifications(ctx context.Context, userID string) ([]domain.Notification, error)
	CreateNotification(ctx context.Context, notification *domain.Notification) (*domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
}

// CollectionStorer defines collection persistence. A nil upcoming
// filter lists all active collections.
type CollectionStorer interface {
	GetCollections(ctx context.Context, upcoming *bool) ([]domain.Collection, error)
	GetCollection(ctx context.Context, id string) (*domain.Collection, error)
	CreateCollection(ctx context.Context, collection *domain.Collection) (*domain.Collection, error)
}
