package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/domain"
)

// Helper function to get a pointer (useful for optional fields in domain structs)
func PtrTo[T any](v T) *T {
	return &v
}

func newSeededStore(t *testing.T) *MemoryStore {
	t.Helper()
	return NewMemoryStore(WithSeedData())
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// --- Product listing ---

func TestMemoryStore_ListProducts_ExcludesInactive(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	_, err := s.UpdateProduct(ctx, "prod1", ProductUpdate{IsActive: PtrTo(false)})
	require.NoError(t, err)

	products, err := s.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 3)
	for _, p := range products {
		assert.NotEqual(t, "prod1", p.ID)
	}
}

func TestMemoryStore_ListProducts_DefaultOrderNewestFirst(t *testing.T) {
	s := newSeededStore(t)

	products, err := s.ListProducts(context.Background(), ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 4)

	// Seed creation times are staggered: prod4 is the newest.
	assert.Equal(t, "prod4", products[0].ID)
	assert.Equal(t, "prod3", products[1].ID)
	assert.Equal(t, "prod2", products[2].ID)
	assert.Equal(t, "prod1", products[3].ID)
}

func TestMemoryStore_ListProducts_FlagsAreConjunctive(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	// prod3 is the only seed product that is both new and trending.
	products, err := s.ListProducts(ctx, ProductFilter{IsNew: true, IsTrending: true})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "prod3", products[0].ID)

	// A false flag must not narrow: isDeal=false still returns new products.
	products, err = s.ListProducts(ctx, ProductFilter{IsNew: true})
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestMemoryStore_ListProducts_SearchMatchesNameAndDescription(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	// "shirt" hits Classic White Shirt and Graphic T-Shirt by name, and
	// nothing else by description.
	products, err := s.ListProducts(ctx, ProductFilter{Search: "shirt"})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	// Case-insensitive, and description-only matches count too.
	products, err = s.ListProducts(ctx, ProductFilter{Search: "CHRONOGRAPH"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "prod4", products[0].ID)
}

func TestMemoryStore_ListProducts_NilDescriptionDoesNotMatch(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.CreateProduct(ctx, &domain.Product{
		Name: "Bare Product", Slug: "bare-product",
		Price: mustDecimal(t, "10.00"), IsActive: true,
	})
	require.NoError(t, err)

	products, err := s.ListProducts(ctx, ProductFilter{Search: "anything"})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestMemoryStore_ListProducts_Pagination(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	products, err := s.ListProducts(ctx, ProductFilter{Offset: 1, Limit: PtrTo(2)})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "prod3", products[0].ID)
	assert.Equal(t, "prod2", products[1].ID)

	// Offset past the end is an empty result, not an error.
	products, err = s.ListProducts(ctx, ProductFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, products)

	// Explicit limit 0 is empty; nil limit is unbounded.
	products, err = s.ListProducts(ctx, ProductFilter{Limit: PtrTo(0)})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestMemoryStore_CreateProduct_DuplicateSlug(t *testing.T) {
	s := newSeededStore(t)

	_, err := s.CreateProduct(context.Background(), &domain.Product{
		Name: "Another Shirt", Slug: "classic-white-shirt",
		Price: mustDecimal(t, "999.00"), IsActive: true,
	})
	assert.ErrorIs(t, err, ErrProductSlugExists)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMemoryStore_UpdateProduct_Partial(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	updated, err := s.UpdateProduct(ctx, "prod1", ProductUpdate{
		Stock: PtrTo(7),
		Price: PtrTo(mustDecimal(t, "1999.00")),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)
	assert.True(t, updated.Price.Equal(mustDecimal(t, "1999.00")))
	// Untouched fields survive.
	assert.Equal(t, "Classic White Shirt", updated.Name)
	assert.True(t, updated.IsFeatured)

	_, err = s.UpdateProduct(ctx, "nope", ProductUpdate{Stock: PtrTo(1)})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

// --- Product detail view ---

func TestMemoryStore_GetProductDetail(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	detail, err := s.GetProductDetail(ctx, "prod1")
	require.NoError(t, err)
	require.NotNil(t, detail.Category)
	assert.Equal(t, "cat1", detail.Category.ID)
	assert.NotNil(t, detail.Reviews)
	require.NotNil(t, detail.Recommendations)

	assert.LessOrEqual(t, len(detail.Recommendations.AlsoLike), 4)
	assert.LessOrEqual(t, len(detail.Recommendations.PairWith), 3)
	for _, p := range detail.Recommendations.AlsoLike {
		assert.NotEqual(t, "prod1", p.ID, "recommendations must exclude the anchor")
	}
}

func TestMemoryStore_GetProductDetail_NoCategory(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreateProduct(ctx, &domain.Product{
		Name: "Uncategorized", Slug: "uncategorized",
		Price: mustDecimal(t, "5.00"), IsActive: true,
	})
	require.NoError(t, err)

	detail, err := s.GetProductDetail(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Category)
}

func TestMemoryStore_GetProductDetailBySlug_NotFound(t *testing.T) {
	s := newSeededStore(t)

	_, err := s.GetProductDetailBySlug(context.Background(), "no-such-slug")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

// --- Categories ---

func TestMemoryStore_Categories(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 4)
	assert.Equal(t, "Shirts", categories[0].Name) // sortOrder ascending

	bySlug, err := s.GetCategoryBySlug(ctx, "jeans")
	require.NoError(t, err)
	assert.Equal(t, "cat2", bySlug.ID)

	_, err = s.CreateCategory(ctx, &domain.Category{Name: "Other Shirts", Slug: "shirts", IsActive: true})
	assert.ErrorIs(t, err, ErrCategorySlugExists)
}

// --- Cart ---

func TestMemoryStore_Cart_IdentityRequired(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	_, err := s.GetCartItems(ctx, "", "")
	assert.ErrorIs(t, err, ErrIdentityRequired)

	_, err = s.AddToCart(ctx, &domain.CartItem{ProductID: "prod1", Quantity: 1})
	assert.ErrorIs(t, err, ErrIdentityRequired)

	err = s.ClearCart(ctx, "", "")
	assert.ErrorIs(t, err, ErrIdentityRequired)
}

func TestMemoryStore_Cart_SessionIsolation(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	_, err := s.AddToCart(ctx, &domain.CartItem{SessionID: PtrTo("sess-a"), ProductID: "prod1", Quantity: 2, Size: PtrTo("M")})
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, &domain.CartItem{SessionID: PtrTo("sess-b"), ProductID: "prod2", Quantity: 1})
	require.NoError(t, err)

	items, err := s.GetCartItems(ctx, "", "sess-a")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "prod1", items[0].ProductID)
	assert.Equal(t, "Classic White Shirt", items[0].Product.Name)

	items, err = s.GetCartItems(ctx, "", "sess-b")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "prod2", items[0].ProductID)
}

func TestMemoryStore_Cart_QuantityValidation(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	_, err := s.AddToCart(ctx, &domain.CartItem{SessionID: PtrTo("sess"), ProductID: "prod1", Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	item, err := s.AddToCart(ctx, &domain.CartItem{SessionID: PtrTo("sess"), ProductID: "prod1", Quantity: 1})
	require.NoError(t, err)

	_, err = s.UpdateCartItem(ctx, item.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	updated, err := s.UpdateCartItem(ctx, item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
}

func TestMemoryStore_Cart_UnknownProduct(t *testing.T) {
	s := newSeededStore(t)

	_, err := s.AddToCart(context.Background(), &domain.CartItem{SessionID: PtrTo("sess"), ProductID: "ghost", Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMemoryStore_Cart_DanglingProductFailsRead(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	_, err := s.AddToCart(ctx, &domain.CartItem{SessionID: PtrTo("sess"), ProductID: "prod1", Quantity: 1})
	require.NoError(t, err)

	// Simulate a dangling reference by removing the product row
	// directly; there is no delete operation in the public surface.
	s.mu.Lock()
	delete(s.products, "prod1")
	s.mu.Unlock()

	_, err = s.GetCartItems(ctx, "", "sess")
	assert.ErrorIs(t, err, ErrCartProductMissing)
	assert.ErrorIs(t, err, ErrDataIntegrity)
}

func TestMemoryStore_Cart_ClearAndRemove(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	item, err := s.AddToCart(ctx, &domain.CartItem{UserID: PtrTo("u1"), ProductID: "prod1", Quantity: 1})
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, &domain.CartItem{UserID: PtrTo("u1"), ProductID: "prod2", Quantity: 1})
	require.NoError(t, err)

	// Removal is idempotent.
	require.NoError(t, s.RemoveFromCart(ctx, item.ID))
	require.NoError(t, s.RemoveFromCart(ctx, item.ID))

	require.NoError(t, s.ClearCart(ctx, "u1", ""))
	items, err := s.GetCartItems(ctx, "u1", "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

// --- Wishlist ---

func TestMemoryStore_Wishlist(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	_, err := s.AddToWishlist(ctx, &domain.WishlistItem{ProductID: "prod1"})
	assert.ErrorIs(t, err, ErrUserIDRequired)

	_, err = s.AddToWishlist(ctx, &domain.WishlistItem{UserID: "u1", ProductID: "prod1"})
	require.NoError(t, err)
	_, err = s.AddToWishlist(ctx, &domain.WishlistItem{UserID: "u1", ProductID: "prod2"})
	require.NoError(t, err)

	items, err := s.GetWishlistItems(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	require.NoError(t, s.RemoveFromWishlist(ctx, "u1", "prod1"))
	items, err = s.GetWishlistItems(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "prod2", items[0].ProductID)

	// Unknown user simply has an empty wishlist.
	items, err = s.GetWishlistItems(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, items)
}

// --- Orders ---

func validOrderInput(t *testing.T) (*domain.Order, []domain.OrderItem) {
	t.Helper()
	items := []domain.OrderItem{
		{ProductID: "prod1", Quantity: 2, Price: mustDecimal(t, "2499.00")},
		{ProductID: "prod3", Quantity: 1, Price: mustDecimal(t, "1299.00")},
	}
	subtotal := mustDecimal(t, "6297.00")
	order := &domain.Order{
		UserID:          PtrTo("u1"),
		Subtotal:        subtotal,
		Tax:             mustDecimal(t, "629.70"),
		Shipping:        mustDecimal(t, "99.00"),
		Discount:        mustDecimal(t, "500.00"),
		Total:           mustDecimal(t, "6525.70"),
		ShippingAddress: json.RawMessage(`{"city":"Mumbai"}`),
	}
	return order, items
}

func TestMemoryStore_CreateOrder(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	order, items := validOrderInput(t)
	created, err := s.CreateOrder(ctx, order, items)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.OrderStatusPending, created.Status)
	assert.Equal(t, domain.PaymentStatusPending, created.PaymentStatus)
	assert.Regexp(t, `^SNT\d+$`, created.OrderNumber)

	view, err := s.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	for _, item := range view.Items {
		assert.Equal(t, created.ID, item.OrderID)
		assert.NotEmpty(t, item.Product.Name)
	}
}

func TestMemoryStore_CreateOrder_Validation(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	_, err := s.CreateOrder(ctx, &domain.Order{}, nil)
	assert.ErrorIs(t, err, ErrOrderWithoutItems)

	order, items := validOrderInput(t)
	items[0].Quantity = 0
	_, err = s.CreateOrder(ctx, order, items)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	order, items = validOrderInput(t)
	items[0].ProductID = "ghost"
	_, err = s.CreateOrder(ctx, order, items)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMemoryStore_CreateOrder_TotalsMismatch(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	order, items := validOrderInput(t)
	order.Subtotal = mustDecimal(t, "1.00")
	_, err := s.CreateOrder(ctx, order, items)
	assert.ErrorIs(t, err, ErrTotalsMismatch)

	order, items = validOrderInput(t)
	order.Total = order.Total.Add(mustDecimal(t, "0.01"))
	_, err = s.CreateOrder(ctx, order, items)
	assert.ErrorIs(t, err, ErrTotalsMismatch)
}

func TestMemoryStore_CreateOrder_DistinctOrderNumbers(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		order, items := validOrderInput(t)
		created, err := s.CreateOrder(ctx, order, items)
		require.NoError(t, err)
		assert.False(t, seen[created.OrderNumber], "order number %s repeated", created.OrderNumber)
		seen[created.OrderNumber] = true
	}
}

func TestMemoryStore_UpdateOrderStatus_Lifecycle(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	order, items := validOrderInput(t)
	created, err := s.CreateOrder(ctx, order, items)
	require.NoError(t, err)

	for _, next := range []domain.OrderStatus{
		domain.OrderStatusConfirmed,
		domain.OrderStatusShipped,
		domain.OrderStatusDelivered,
		domain.OrderStatusReturned,
	} {
		updated, err := s.UpdateOrderStatus(ctx, created.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	// Returned is terminal.
	_, err = s.UpdateOrderStatus(ctx, created.ID, domain.OrderStatusPending)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestMemoryStore_UpdateOrderStatus_Rejections(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	order, items := validOrderInput(t)
	created, err := s.CreateOrder(ctx, order, items)
	require.NoError(t, err)

	_, err = s.UpdateOrderStatus(ctx, created.ID, "teleported")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// Skipping confirmed+shipped straight to delivered is illegal.
	_, err = s.UpdateOrderStatus(ctx, created.ID, domain.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	_, err = s.UpdateOrderStatus(ctx, "ghost", domain.OrderStatusConfirmed)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestMemoryStore_GetOrders_FiltersByUser(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	order, items := validOrderInput(t)
	_, err := s.CreateOrder(ctx, order, items)
	require.NoError(t, err)

	orders, err := s.GetOrders(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = s.GetOrders(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

// --- Reviews ---

func TestMemoryStore_CreateReview_RefreshesAggregates(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	product, err := s.CreateProduct(ctx, &domain.Product{
		Name: "Rated", Slug: "rated", Price: mustDecimal(t, "10.00"), IsActive: true,
	})
	require.NoError(t, err)

	_, err = s.CreateReview(ctx, &domain.Review{UserID: "u1", ProductID: product.ID, Rating: 5})
	require.NoError(t, err)
	_, err = s.CreateReview(ctx, &domain.Review{UserID: "u2", ProductID: product.ID, Rating: 4})
	require.NoError(t, err)

	refreshed, err := s.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, refreshed.ReviewCount)
	assert.True(t, refreshed.Rating.Equal(mustDecimal(t, "4.5")), "got rating %s", refreshed.Rating)
}

func TestMemoryStore_CreateReview_Validation(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	_, err := s.CreateReview(ctx, &domain.Review{ProductID: "prod1", Rating: 5})
	assert.ErrorIs(t, err, ErrUserIDRequired)

	_, err = s.CreateReview(ctx, &domain.Review{UserID: "u1", ProductID: "prod1", Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = s.CreateReview(ctx, &domain.Review{UserID: "u1", ProductID: "ghost", Rating: 3})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMemoryStore_UpdateReviewHelpfulness(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	review, err := s.CreateReview(ctx, &domain.Review{UserID: "u1", ProductID: "prod1", Rating: 4})
	require.NoError(t, err)

	updated, err := s.UpdateReviewHelpfulness(ctx, review.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.HelpfulCount)

	updated, err = s.UpdateReviewHelpfulness(ctx, review.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.HelpfulCount)

	// The count never goes negative.
	updated, err = s.UpdateReviewHelpfulness(ctx, review.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.HelpfulCount)

	_, err = s.UpdateReviewHelpfulness(ctx, "ghost", true)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

// --- Addresses ---

func TestMemoryStore_Addresses_DefaultFlag(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first, err := s.CreateAddress(ctx, &domain.Address{
		UserID: "u1", Name: "Home", Phone: "123", AddressLine1: "1 Main St",
		City: "Mumbai", State: "MH", Pincode: "400001", IsDefault: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "India", first.Country) // default country

	second, err := s.CreateAddress(ctx, &domain.Address{
		UserID: "u1", Name: "Office", Phone: "123", AddressLine1: "2 Work Rd",
		City: "Mumbai", State: "MH", Pincode: "400002", Country: "India", IsDefault: true,
	})
	require.NoError(t, err)

	addresses, err := s.GetUserAddresses(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	// The default sorts first and there is exactly one of them.
	assert.Equal(t, second.ID, addresses[0].ID)
	assert.True(t, addresses[0].IsDefault)
	assert.False(t, addresses[1].IsDefault)

	// Promoting via update clears the other default too.
	_, err = s.UpdateAddress(ctx, first.ID, AddressUpdate{IsDefault: PtrTo(true)})
	require.NoError(t, err)
	addresses, err = s.GetUserAddresses(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, addresses[0].ID)
	assert.False(t, addresses[1].IsDefault)
}

func TestMemoryStore_Addresses_NotFound(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.UpdateAddress(ctx, "ghost", AddressUpdate{Name: PtrTo("x")})
	assert.ErrorIs(t, err, ErrAddressNotFound)
	assert.ErrorIs(t, s.DeleteAddress(ctx, "ghost"), ErrAddressNotFound)
}

// --- Banners ---

func TestMemoryStore_GetBanners_WindowFiltering(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := s.CreateBanner(ctx, &domain.Banner{Title: "OPEN", Image: "img", IsActive: true, SortOrder: 2})
	require.NoError(t, err)
	_, err = s.CreateBanner(ctx, &domain.Banner{
		Title: "EXPIRED", Image: "img", IsActive: true, SortOrder: 1,
		EndDate: PtrTo(now.Add(-time.Hour)),
	})
	require.NoError(t, err)
	_, err = s.CreateBanner(ctx, &domain.Banner{
		Title: "FUTURE", Image: "img", IsActive: true, SortOrder: 1,
		StartDate: PtrTo(now.Add(time.Hour)),
	})
	require.NoError(t, err)
	_, err = s.CreateBanner(ctx, &domain.Banner{Title: "OFF", Image: "img", IsActive: false, SortOrder: 0})
	require.NoError(t, err)
	_, err = s.CreateBanner(ctx, &domain.Banner{
		Title: "WINDOWED", Image: "img", IsActive: true, SortOrder: 1,
		StartDate: PtrTo(now.Add(-time.Hour)), EndDate: PtrTo(now.Add(time.Hour)),
	})
	require.NoError(t, err)

	banners, err := s.GetBanners(ctx, now)
	require.NoError(t, err)
	require.Len(t, banners, 2)
	assert.Equal(t, "WINDOWED", banners[0].Title) // sortOrder ascending
	assert.Equal(t, "OPEN", banners[1].Title)
}

// --- Notifications ---

func TestMemoryStore_Notifications(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreateNotification(ctx, &domain.Notification{
		UserID: PtrTo("u1"), Title: "Back in stock", Message: "Your size is back",
		Type: domain.NotificationRestock,
	})
	require.NoError(t, err)
	assert.False(t, created.IsRead)

	_, err = s.CreateNotification(ctx, &domain.Notification{
		UserID: PtrTo("u2"), Title: "Sale", Message: "50% off", Type: domain.NotificationDiscount,
	})
	require.NoError(t, err)

	notifications, err := s.GetUserNotifications(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, notifications, 1)

	require.NoError(t, s.MarkNotificationRead(ctx, created.ID))
	notifications, err = s.GetUserNotifications(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, notifications[0].IsRead)

	assert.ErrorIs(t, s.MarkNotificationRead(ctx, "ghost"), ErrNotificationNotFound)
}

// --- Collections ---

func TestMemoryStore_Collections(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	_, err := s.CreateCollection(ctx, &domain.Collection{
		Name: "Monsoon Edit", Slug: "monsoon-edit", IsActive: true,
	})
	require.NoError(t, err)

	all, err := s.GetCollections(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	upcoming, err := s.GetCollections(ctx, PtrTo(true))
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Worth the Wait", upcoming[0].Name)

	launched, err := s.GetCollections(ctx, PtrTo(false))
	require.NoError(t, err)
	require.Len(t, launched, 1)
	assert.Equal(t, "Monsoon Edit", launched[0].Name)

	_, err = s.CreateCollection(ctx, &domain.Collection{Name: "Dup", Slug: "worth-the-wait", IsActive: true})
	assert.ErrorIs(t, err, ErrCollectionSlugExists)

	_, err = s.GetCollection(ctx, "ghost")
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

// --- Users ---

func TestMemoryStore_Users(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, &domain.User{IsGuest: true})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	fetched, err := s.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsGuest)

	updated, err := s.UpdateUser(ctx, created.ID, UserUpdate{
		Email:   PtrTo("shopper@example.com"),
		IsGuest: PtrTo(false),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "shopper@example.com", *updated.Email)
	assert.False(t, updated.IsGuest)

	_, err = s.GetUser(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// --- Recommender ---

func TestCatalogRecommender_ExcludesAnchor(t *testing.T) {
	s := newSeededStore(t)
	rec := NewCatalogRecommender(s)

	products, err := rec.Recommend(context.Background(), "prod4", 4)
	require.NoError(t, err)
	require.Len(t, products, 3)
	for _, p := range products {
		assert.NotEqual(t, "prod4", p.ID)
	}

	empty, err := rec.Recommend(context.Background(), "prod4", 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
