package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category represents a flat catalog taxonomy entry. Slugs are unique
// across all categories.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Image       *string   `json:"image,omitempty"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Product is the central catalog entity. Money fields use fixed-point
// decimals; float64 would drift when order totals are validated
// against item snapshots.
type Product struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	Description      *string          `json:"description,omitempty"`
	Price            decimal.Decimal  `json:"price"`
	CompareAtPrice   *decimal.Decimal `json:"compareAtPrice,omitempty"`
	CategoryID       *string          `json:"categoryId,omitempty"`
	Images           []string         `json:"images"`
	Sizes            []string         `json:"sizes"`
	Colors           []string         `json:"colors"`
	IsNew            bool             `json:"isNew"`
	IsTrending       bool             `json:"isTrending"`
	IsFeatured       bool             `json:"isFeatured"`
	IsDeal           bool             `json:"isDeal"`
	Stock            int              `json:"stock"`
	Rating           decimal.Decimal  `json:"rating"`
	ReviewCount      int              `json:"reviewCount"`
	IsActive         bool             `json:"isActive"`
	Tags             []string         `json:"tags"`
	MaterialInfo     *string          `json:"materialInfo,omitempty"`
	CareInstructions *string          `json:"careInstructions,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// Review is a customer review of a product. OrderID links a review to
// the purchase it came from when known; IsVerified is only set
// explicitly, unauthenticated reviews are not distinguished otherwise.
type Review struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	ProductID    string    `json:"productId"`
	OrderID      *string   `json:"orderId,omitempty"`
	Rating       int       `json:"rating"`
	Title        *string   `json:"title,omitempty"`
	Comment      *string   `json:"comment,omitempty"`
	Images       []string  `json:"images,omitempty"`
	IsVerified   bool      `json:"isVerified"`
	HelpfulCount int       `json:"helpfulCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Banner is a time-bounded home page promotion.
type Banner struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Subtitle   *string    `json:"subtitle,omitempty"`
	Image      string     `json:"image"`
	ButtonText *string    `json:"buttonText,omitempty"`
	ButtonLink *string    `json:"buttonLink,omitempty"`
	IsActive   bool       `json:"isActive"`
	SortOrder  int        `json:"sortOrder"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Collection groups products for drops; upcoming collections carry a
// launch date.
type Collection struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description,omitempty"`
	Image       *string    `json:"image,omitempty"`
	IsUpcoming  bool       `json:"isUpcoming"`
	LaunchDate  *time.Time `json:"launchDate,omitempty"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// RecommendationSet is the two named buckets attached to a product
// detail view. Content generation is pluggable; see store.Recommender.
type RecommendationSet struct {
	AlsoLike []Product `json:"alsoLike"`
	PairWith []Product `json:"pairWith"`
}

// ProductWithDetails is the read-time detail view: the product joined
// with its category (omitted when the product has none), its reviews,
// and a recommendation set.
type ProductWithDetails struct {
	Product
	Category        *Category          `json:"category,omitempty"`
	Reviews         []Review           `json:"reviews"`
	Recommendations *RecommendationSet `json:"recommendations,omitempty"`
}
