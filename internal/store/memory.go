package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-service/internal/domain"
)

// MemoryStore keeps every entity collection in process memory. It
// implements all the Storer interfaces. Access is guarded by a single
// RWMutex so the HTTP layer can call it concurrently; semantics for
// racing writers stay last-write-wins with no conflict detection.
// Nothing survives a restart; a deployment that needs durability
// should wire the Postgres catalog store and grow it from there.
//
// Read-time joins (cart views, order details, product details) go
// through the catalog and taxonomy interfaces rather than the internal
// maps, so the catalog can live in Postgres while the rest stays in
// memory. Both default to the store itself.
type MemoryStore struct {
	mu sync.RWMutex

	users         map[string]domain.User
	products      map[string]domain.Product
	categories    map[string]domain.Category
	cartItems     map[string]domain.CartItem
	wishlistItems map[string]domain.WishlistItem
	orders        map[string]domain.Order
	orderItems    map[string]domain.OrderItem
	reviews       map[string]domain.Review
	addresses     map[string]domain.Address
	banners       map[string]domain.Banner
	notifications map[string]domain.Notification
	collections   map[string]domain.Collection

	orderSeq atomic.Uint64

	catalog  ProductStorer
	taxonomy CategoryStorer
	rec      Recommender
}

// MemoryOption configures a MemoryStore at construction time.
type MemoryOption func(*MemoryStore)

// WithSeedData populates the store with the fixture catalog.
func WithSeedData() MemoryOption {
	return func(s *MemoryStore) { s.seedFixtures() }
}

// WithCatalog redirects product and category joins to an external
// catalog backend.
func WithCatalog(products ProductStorer, categories CategoryStorer) MemoryOption {
	return func(s *MemoryStore) {
		s.catalog = products
		s.taxonomy = categories
	}
}

// WithRecommender overrides the recommendation source used by product
// detail views.
func WithRecommender(rec Recommender) MemoryOption {
	return func(s *MemoryStore) { s.rec = rec }
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		users:         make(map[string]domain.User),
		products:      make(map[string]domain.Product),
		categories:    make(map[string]domain.Category),
		cartItems:     make(map[string]domain.CartItem),
		wishlistItems: make(map[string]domain.WishlistItem),
		orders:        make(map[string]domain.Order),
		orderItems:    make(map[string]domain.OrderItem),
		reviews:       make(map[string]domain.Review),
		addresses:     make(map[string]domain.Address),
		banners:       make(map[string]domain.Banner),
		notifications: make(map[string]domain.Notification),
		collections:   make(map[string]domain.Collection),
	}
	s.catalog = s
	s.taxonomy = s
	for _, opt := range opts {
		opt(s)
	}
	if s.rec == nil {
		s.rec = NewCatalogRecommender(s.catalog)
	}
	return s
}

func newID() string {
	return uuid.NewString()
}

// --- UserStorer ---

func (s *MemoryStore) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	created := *user
	created.ID = newID()
	created.CreatedAt = now
	created.UpdatedAt = now

	s.mu.Lock()
	s.users[created.ID] = created
	s.mu.Unlock()
	return &created, nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *MemoryStore) UpdateUser(ctx context.Context, id string, update UserUpdate) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	if update.Email != nil {
		user.Email = update.Email
	}
	if update.FirstName != nil {
		user.FirstName = update.FirstName
	}
	if update.LastName != nil {
		user.LastName = update.LastName
	}
	if update.Phone != nil {
		user.Phone = update.Phone
	}
	if update.ProfileImageURL != nil {
		user.ProfileImageURL = update.ProfileImageURL
	}
	if update.IsGuest != nil {
		user.IsGuest = *update.IsGuest
	}
	if update.Preferences != nil {
		user.Preferences = update.Preferences
	}
	user.UpdatedAt = time.Now().UTC()
	s.users[id] = user
	return &user, nil
}

// --- ProductStorer ---

func (s *MemoryStore) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	now := time.Now().UTC()
	created := *product
	created.ID = newID()
	created.CreatedAt = now
	created.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Slug == created.Slug {
			return nil, ErrProductSlugExists
		}
	}
	s.products[created.ID] = created
	return &created, nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

func (s *MemoryStore) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Slug == slug {
			product := p
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

func (s *MemoryStore) ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	s.mu.RLock()
	matched := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if productMatches(p, filter) {
			matched = append(matched, p)
		}
	}
	s.mu.RUnlock()

	// Newest first when no explicit ordering is requested.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return paginate(matched, filter.Offset, filter.Limit), nil
}

// productMatches applies the filter predicates. Inactive products are
// excluded before anything else; flags are conjunctive.
func productMatches(p domain.Product, filter ProductFilter) bool {
	if !p.IsActive {
		return false
	}
	if filter.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != filter.CategoryID) {
		return false
	}
	if filter.IsNew && !p.IsNew {
		return false
	}
	if filter.IsTrending && !p.IsTrending {
		return false
	}
	if filter.IsFeatured && !p.IsFeatured {
		return false
	}
	if filter.IsDeal && !p.IsDeal {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		nameHit := strings.Contains(strings.ToLower(p.Name), needle)
		// A product without a description simply does not match on it.
		descHit := p.Description != nil && strings.Contains(strings.ToLower(*p.Description), needle)
		if !nameHit && !descHit {
			return false
		}
	}
	return true
}

// paginate applies offset then limit. An offset past the end yields an
// empty slice, never an error.
func paginate(products []domain.Product, offset int, limit *int) []domain.Product {
	if offset > 0 {
		if offset >= len(products) {
			return []domain.Product{}
		}
		products = products[offset:]
	}
	if limit != nil {
		if *limit <= 0 {
			return []domain.Product{}
		}
		if *limit < len(products) {
			products = products[:*limit]
		}
	}
	return products
}

func (s *MemoryStore) UpdateProduct(ctx context.Context, id string, update ProductUpdate) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	if update.Slug != nil && *update.Slug != product.Slug {
		for _, p := range s.products {
			if p.ID != id && p.Slug == *update.Slug {
				return nil, ErrProductSlugExists
			}
		}
		product.Slug = *update.Slug
	}
	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.CompareAtPrice != nil {
		product.CompareAtPrice = update.CompareAtPrice
	}
	if update.CategoryID != nil {
		product.CategoryID = update.CategoryID
	}
	if update.Images != nil {
		product.Images = update.Images
	}
	if update.Sizes != nil {
		product.Sizes = update.Sizes
	}
	if update.Colors != nil {
		product.Colors = update.Colors
	}
	if update.IsNew != nil {
		product.IsNew = *update.IsNew
	}
	if update.IsTrending != nil {
		product.IsTrending = *update.IsTrending
	}
	if update.IsFeatured != nil {
		product.IsFeatured = *update.IsFeatured
	}
	if update.IsDeal != nil {
		product.IsDeal = *update.IsDeal
	}
	if update.Stock != nil {
		product.Stock = *update.Stock
	}
	if update.Rating != nil {
		product.Rating = *update.Rating
	}
	if update.ReviewCount != nil {
		product.ReviewCount = *update.ReviewCount
	}
	if update.IsActive != nil {
		product.IsActive = *update.IsActive
	}
	if update.Tags != nil {
		product.Tags = update.Tags
	}
	if update.MaterialInfo != nil {
		product.MaterialInfo = update.MaterialInfo
	}
	if update.CareInstructions != nil {
		product.CareInstructions = update.CareInstructions
	}
	product.UpdatedAt = time.Now().UTC()
	s.products[id] = product
	return &product, nil
}

// --- ProductDetailer ---

func (s *MemoryStore) GetProductDetail(ctx context.Context, id string) (*domain.ProductWithDetails, error) {
	product, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.composeProductDetail(ctx, product)
}

func (s *MemoryStore) GetProductDetailBySlug(ctx context.Context, slug string) (*domain.ProductWithDetails, error) {
	product, err := s.catalog.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.composeProductDetail(ctx, product)
}

func (s *MemoryStore) composeProductDetail(ctx context.Context, product *domain.Product) (*domain.ProductWithDetails, error) {
	detail := &domain.ProductWithDetails{Product: *product}

	// A product without a category is legal; the view simply omits it.
	if product.CategoryID != nil {
		category, err := s.taxonomy.GetCategory(ctx, *product.CategoryID)
		switch {
		case err == nil:
			detail.Category = category
		case errorsIsNotFound(err):
			// Dangling category references degrade to an omitted
			// category rather than failing the whole view.
		default:
			return nil, err
		}
	}

	reviews, err := s.GetProductReviews(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	detail.Reviews = reviews

	alsoLike, err := s.rec.Recommend(ctx, product.ID, alsoLikeLimit)
	if err != nil {
		return nil, err
	}
	pairWith, err := s.rec.Recommend(ctx, product.ID, pairWithLimit)
	if err != nil {
		return nil, err
	}
	detail.Recommendations = &domain.RecommendationSet{AlsoLike: alsoLike, PairWith: pairWith}
	return detail, nil
}

// --- CategoryStorer ---

func (s *MemoryStore) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	created := *category
	created.ID = newID()
	created.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Slug == created.Slug {
			return nil, ErrCategorySlugExists
		}
	}
	s.categories[created.ID] = created
	return &created, nil
}

func (s *MemoryStore) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return &category, nil
}

func (s *MemoryStore) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.Slug == slug {
			category := c
			return &category, nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (s *MemoryStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	categories := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.IsActive {
			categories = append(categories, c)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].SortOrder < categories[j].SortOrder
	})
	return categories, nil
}

// --- CartStorer ---

// cartKeyMatches implements identity key resolution: a row belongs to
// the caller when either provided key matches, which lets a guest
// session keep its cart after signing in.
func cartKeyMatches(item domain.CartItem, userID, sessionID string) bool {
	if userID != "" && item.UserID != nil && *item.UserID == userID {
		return true
	}
	if sessionID != "" && item.SessionID != nil && *item.SessionID == sessionID {
		return true
	}
	return false
}

func (s *MemoryStore) GetCartItems(ctx context.Context, userID, sessionID string) ([]domain.CartItemWithProduct, error) {
	if userID == "" && sessionID == "" {
		return nil, ErrIdentityRequired
	}

	s.mu.RLock()
	items := make([]domain.CartItem, 0, 8)
	for _, item := range s.cartItems {
		if cartKeyMatches(item, userID, sessionID) {
			items = append(items, item)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	views := make([]domain.CartItemWithProduct, 0, len(items))
	for _, item := range items {
		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errorsIsNotFound(err) {
				return nil, fmt.Errorf("%w (cart item %s, product %s)", ErrCartProductMissing, item.ID, item.ProductID)
			}
			return nil, err
		}
		views = append(views, domain.CartItemWithProduct{CartItem: item, Product: *product})
	}
	return views, nil
}

func (s *MemoryStore) AddToCart(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	userID := strPtrValue(item.UserID)
	sessionID := strPtrValue(item.SessionID)
	if userID == "" && sessionID == "" {
		return nil, ErrIdentityRequired
	}
	if item.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.catalog.GetProduct(ctx, item.ProductID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *item
	created.ID = newID()
	created.CreatedAt = now
	created.UpdatedAt = now

	s.mu.Lock()
	s.cartItems[created.ID] = created
	s.mu.Unlock()
	return &created, nil
}

func (s *MemoryStore) UpdateCartItem(ctx context.Context, id string, quantity int) (*domain.CartItem, error) {
	// Removal is the caller's job; the store rejects anything below 1.
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.cartItems[id]
	if !ok {
		return nil, ErrCartItemNotFound
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now().UTC()
	s.cartItems[id] = item
	return &item, nil
}

func (s *MemoryStore) RemoveFromCart(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.cartItems, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) ClearCart(ctx context.Context, userID, sessionID string) error {
	if userID == "" && sessionID == "" {
		return ErrIdentityRequired
	}
	s.mu.Lock()
	for id, item := range s.cartItems {
		if cartKeyMatches(item, userID, sessionID) {
			delete(s.cartItems, id)
		}
	}
	s.mu.Unlock()
	return nil
}

// --- WishlistStorer ---

func (s *MemoryStore) GetWishlistItems(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	s.mu.RLock()
	items := make([]domain.WishlistItem, 0, 8)
	for _, item := range s.wishlistItems {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *MemoryStore) AddToWishlist(ctx context.Context, item *domain.WishlistItem) (*domain.WishlistItem, error) {
	if item.UserID == "" {
		return nil, ErrUserIDRequired
	}
	if _, err := s.catalog.GetProduct(ctx, item.ProductID); err != nil {
		return nil, err
	}

	created := *item
	created.ID = newID()
	created.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.wishlistItems[created.ID] = created
	s.mu.Unlock()
	return &created, nil
}

func (s *MemoryStore) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return ErrUserIDRequired
	}
	s.mu.Lock()
	for id, item := range s.wishlistItems {
		if item.UserID == userID && item.ProductID == productID {
			delete(s.wishlistItems, id)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// --- OrderStorer ---

func (s *MemoryStore) GetOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	s.mu.RLock()
	orders := make([]domain.Order, 0, 8)
	for _, order := range s.orders {
		if order.UserID != nil && *order.UserID == userID {
			orders = append(orders, order)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (s *MemoryStore) GetOrder(ctx context.Context, id string) (*domain.OrderWithItems, error) {
	s.mu.RLock()
	order, ok := s.orders[id]
	var items []domain.OrderItem
	if ok {
		for _, item := range s.orderItems {
			if item.OrderID == id {
				items = append(items, item)
			}
		}
	}
	s.mu.RUnlock()
	if !ok {
		return nil, ErrOrderNotFound
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	view := &domain.OrderWithItems{Order: order, Items: make([]domain.OrderItemWithProduct, 0, len(items))}
	for _, item := range items {
		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errorsIsNotFound(err) {
				return nil, fmt.Errorf("%w (order %s, product %s)", ErrOrderProductMissing, id, item.ProductID)
			}
			return nil, err
		}
		view.Items = append(view.Items, domain.OrderItemWithProduct{OrderItem: item, Product: *product})
	}
	return view, nil
}

func (s *MemoryStore) CreateOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, ErrOrderWithoutItems
	}
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if _, err := s.catalog.GetProduct(ctx, item.ProductID); err != nil {
			return nil, err
		}
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	// Client-sent totals are untrusted input: the subtotal must match
	// the item snapshots and the grand total must reconcile.
	if !subtotal.Equal(order.Subtotal) {
		return nil, fmt.Errorf("%w: subtotal %s, items sum to %s", ErrTotalsMismatch, order.Subtotal, subtotal)
	}
	expectedTotal := order.Subtotal.Add(order.Tax).Add(order.Shipping).Sub(order.Discount)
	if !expectedTotal.Equal(order.Total) {
		return nil, fmt.Errorf("%w: total %s, expected %s", ErrTotalsMismatch, order.Total, expectedTotal)
	}

	now := time.Now().UTC()
	created := *order
	created.ID = newID()
	created.OrderNumber = s.nextOrderNumber(now)
	if created.Status == "" {
		created.Status = domain.OrderStatusPending
	} else if !created.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if created.PaymentStatus == "" {
		created.PaymentStatus = domain.PaymentStatusPending
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	s.mu.Lock()
	s.orders[created.ID] = created
	for _, item := range items {
		stored := item
		stored.ID = newID()
		stored.OrderID = created.ID
		stored.CreatedAt = now
		s.orderItems[stored.ID] = stored
	}
	s.mu.Unlock()
	return &created, nil
}

// nextOrderNumber yields unique SNT-prefixed numbers. The counter
// suffix keeps two orders in the same millisecond from colliding.
func (s *MemoryStore) nextOrderNumber(now time.Time) string {
	return fmt.Sprintf("SNT%d%03d", now.UnixMilli(), s.orderSeq.Add(1)%1000)
}

func (s *MemoryStore) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, order.Status, status)
	}
	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	s.orders[id] = order
	return &order, nil
}

// --- ReviewStorer ---

func (s *MemoryStore) GetProductReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	s.mu.RLock()
	reviews := make([]domain.Review, 0, 8)
	for _, review := range s.reviews {
		if review.ProductID == productID {
			reviews = append(reviews, review)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (s *MemoryStore) CreateReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if review.UserID == "" {
		return nil, ErrUserIDRequired
	}
	if review.Rating < 1 || review.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, err := s.catalog.GetProduct(ctx, review.ProductID); err != nil {
		return nil, err
	}

	created := *review
	created.ID = newID()
	created.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.reviews[created.ID] = created
	count := 0
	sum := 0
	for _, r := range s.reviews {
		if r.ProductID == created.ProductID {
			count++
			sum += r.Rating
		}
	}
	s.mu.Unlock()

	// Keep the product's aggregate rating in step with its reviews.
	avg := decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(count))).Round(2)
	if _, err := s.catalog.UpdateProduct(ctx, created.ProductID, ProductUpdate{Rating: &avg, ReviewCount: &count}); err != nil {
		return nil, fmt.Errorf("store: CreateReview failed to refresh product aggregates: %w", err)
	}
	return &created, nil
}

func (s *MemoryStore) UpdateReviewHelpfulness(ctx context.Context, id string, helpful bool) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	review, ok := s.reviews[id]
	if !ok {
		return nil, ErrReviewNotFound
	}
	if helpful {
		review.HelpfulCount++
	} else if review.HelpfulCount > 0 {
		review.HelpfulCount--
	}
	s.reviews[id] = review
	return &review, nil
}

// --- AddressStorer ---

func (s *MemoryStore) GetUserAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	s.mu.RLock()
	addresses := make([]domain.Address, 0, 4)
	for _, addr := range s.addresses {
		if addr.UserID == userID {
			addresses = append(addresses, addr)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(addresses, func(i, j int) bool {
		if addresses[i].IsDefault != addresses[j].IsDefault {
			return addresses[i].IsDefault
		}
		return addresses[i].CreatedAt.Before(addresses[j].CreatedAt)
	})
	return addresses, nil
}

func (s *MemoryStore) CreateAddress(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	if address.UserID == "" {
		return nil, ErrUserIDRequired
	}
	created := *address
	created.ID = newID()
	if created.Country == "" {
		created.Country = "India"
	}
	created.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	if created.IsDefault {
		s.clearDefaultAddressLocked(created.UserID)
	}
	s.addresses[created.ID] = created
	s.mu.Unlock()
	return &created, nil
}

func (s *MemoryStore) UpdateAddress(ctx context.Context, id string, update AddressUpdate) (*domain.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	address, ok := s.addresses[id]
	if !ok {
		return nil, ErrAddressNotFound
	}
	if update.Name != nil {
		address.Name = *update.Name
	}
	if update.Phone != nil {
		address.Phone = *update.Phone
	}
	if update.AddressLine1 != nil {
		address.AddressLine1 = *update.AddressLine1
	}
	if update.AddressLine2 != nil {
		address.AddressLine2 = update.AddressLine2
	}
	if update.City != nil {
		address.City = *update.City
	}
	if update.State != nil {
		address.State = *update.State
	}
	if update.Pincode != nil {
		address.Pincode = *update.Pincode
	}
	if update.Country != nil {
		address.Country = *update.Country
	}
	if update.IsDefault != nil {
		if *update.IsDefault {
			s.clearDefaultAddressLocked(address.UserID)
		}
		address.IsDefault = *update.IsDefault
	}
	s.addresses[id] = address
	return &address, nil
}

// clearDefaultAddressLocked unsets the default flag on every address
// of the user. Callers must hold the write lock.
func (s *MemoryStore) clearDefaultAddressLocked(userID string) {
	for id, addr := range s.addresses {
		if addr.UserID == userID && addr.IsDefault {
			addr.IsDefault = false
			s.addresses[id] = addr
		}
	}
}

func (s *MemoryStore) DeleteAddress(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.addresses[id]; !ok {
		return ErrAddressNotFound
	}
	delete(s.addresses, id)
	return nil
}

// --- BannerStorer ---

func (s *MemoryStore) GetBanners(ctx context.Context, now time.Time) ([]domain.Banner, error) {
	s.mu.RLock()
	banners := make([]domain.Banner, 0, len(s.banners))
	for _, banner := range s.banners {
		if !banner.IsActive {
			continue
		}
		if banner.StartDate != nil && now.Before(*banner.StartDate) {
			continue
		}
		if banner.EndDate != nil && now.After(*banner.EndDate) {
			continue
		}
		banners = append(banners, banner)
	}
	s.mu.RUnlock()

	sort.SliceStable(banners, func(i, j int) bool {
		return banners[i].SortOrder < banners[j].SortOrder
	})
	return banners, nil
}

func (s *MemoryStore) CreateBanner(ctx context.Context, banner *domain.Banner) (*domain.Banner, error) {
	created := *banner
	created.ID = newID()
	created.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.banners[created.ID] = created
	s.mu.Unlock()
	return &created, nil
}

// --- NotificationStorer ---

func (s *MemoryStore) GetUserNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	s.mu.RLock()
	notifications := make([]domain.Notification, 0, 8)
	for _, n := range s.notifications {
		if n.UserID != nil && *n.UserID == userID {
			notifications = append(notifications, n)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (s *MemoryStore) CreateNotification(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	created := *notification
	created.ID = newID()
	created.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.notifications[created.ID] = created
	s.mu.Unlock()
	return &created, nil
}

func (s *MemoryStore) MarkNotificationRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notification, ok := s.notifications[id]
	if !ok {
		return ErrNotificationNotFound
	}
	notification.IsRead = true
	s.notifications[id] = notification
	return nil
}

// --- CollectionStorer ---

func (s *MemoryStore) GetCollections(ctx context.Context, upcoming *bool) ([]domain.Collection, error) {
	s.mu.RLock()
	collections := make([]domain.Collection, 0, len(s.collections))
	for _, c := range s.collections {
		if !c.IsActive {
			continue
		}
		if upcoming != nil && c.IsUpcoming != *upcoming {
			continue
		}
		collections = append(collections, c)
	}
	s.mu.RUnlock()

	sort.SliceStable(collections, func(i, j int) bool {
		return collections[i].CreatedAt.After(collections[j].CreatedAt)
	})
	return collections, nil
}

func (s *MemoryStore) GetCollection(ctx context.Context, id string) (*domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	collection, ok := s.collections[id]
	if !ok {
		return nil, ErrCollectionNotFound
	}
	return &collection, nil
}

func (s *MemoryStore) CreateCollection(ctx context.Context, collection *domain.Collection) (*domain.Collection, error) {
	created := *collection
	created.ID = newID()
	created.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.collections {
		if c.Slug == created.Slug {
			return nil, ErrCollectionSlugExists
		}
	}
	s.collections[created.ID] = created
	return &created, nil
}

// --- helpers ---

func strPtrValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
