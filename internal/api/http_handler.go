package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"storefront-service/internal/domain"
	"storefront-service/internal/store"
)

// StoreSet bundles the persistence interfaces the HTTP layer depends
// on. In the default deployment a single MemoryStore satisfies every
// field; the struct keeps the wiring explicit so individual backends
// can be swapped.
type StoreSet struct {
	Users         store.UserStorer
	Products      store.ProductStorer
	Details       store.ProductDetailer
	Categories    store.CategoryStorer
	Cart          store.CartStorer
	Wishlist      store.WishlistStorer
	Orders        store.OrderStorer
	Reviews       store.ReviewStorer
	Addresses     store.AddressStorer
	Banners       store.BannerStorer
	Notifications store.NotificationStorer
	Collections   store.CollectionStorer
	Recommender   store.Recommender
}

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	stores   StoreSet
	validate *validator.Validate
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(stores StoreSet) *HTTPHandler {
	return &HTTPHandler{
		stores:   stores,
		validate: validator.New(),
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil { // Avoid writing empty body for 204 No Content
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("ERROR: Failed to encode JSON response: %v", err)
			http.Error(w, `{"error": "Internal server error during JSON encoding"}`, http.StatusInternalServerError)
		}
	}
}

// respondWithStoreError maps store error kinds to HTTP statuses:
// uniqueness conflicts to 409, not-found to 404, invalid input to 400
// and everything else (including data integrity violations) to a
// logged 500.
func respondWithStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, store.ErrProductSlugExists),
		errors.Is(err, store.ErrCategorySlugExists),
		errors.Is(err, store.ErrCollectionSlugExists):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("ERROR: %s store operation failed: %v", op, err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeAndValidate(h *HTTPHandler, w http.ResponseWriter, r *http.Request, input interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return false
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}

// --- Category Handlers ---

// CategoryCreateInput defines the expected input for creating a category.
type CategoryCreateInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Slug        string  `json:"slug" validate:"required,max=255"`
	Image       *string `json:"image" validate:"omitempty,url"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"` // Pointer to distinguish between not set and false
	SortOrder   int     `json:"sortOrder" validate:"gte=0"`
}

func (h *HTTPHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input CategoryCreateInput
	if !decodeAndValidate(h, w, r, &input) {
		return
	}

	isActive := true // Default to true if not provided
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	category := &domain.Category{
		Name:        input.Name,
		Slug:        input.Slug,
		Image:       input.Image,
		Description: input.Description,
		IsActive:    isActive,
		SortOrder:   input.SortOrder,
	}

	created, err := h.stores.Categories.CreateCategory(r.Context(), category)
	if err != nil {
		respondWithStoreError(w, "CreateCategory", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.stores.Categories.ListCategories(r.Context())
	if err != nil {
		respondWithStoreError(w, "ListCategories", err)
		return
	}
	respondWithJSON(w, http.StatusOK, categories)
}

func (h *HTTPHandler) GetCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	category, err := h.stores.Categories.GetCategoryBySlug(r.Context(), slug)
	if err != nil {
		respondWithStoreError(w, "GetCategoryBySlug", err)
		return
	}
	respondWithJSON(w, http.StatusOK, category)
}

// --- Product Handlers ---

// ProductCreateInput defines the expected input for creating a product.
type ProductCreateInput struct {
	Name             string           `json:"name" validate:"required,max=255"`
	Slug             string           `json:"slug" validate:"required,max=255"`
	Description      *string          `json:"description"`
	Price            decimal.Decimal  `json:"price"`
	CompareAtPrice   *decimal.Decimal `json:"compareAtPrice"`
	CategoryID       *string          `json:"categoryId"`
	Images           []string         `json:"images"`
	Sizes            []string         `json:"sizes"`
	Colors           []string         `json:"colors"`
	IsNew            bool             `json:"isNew"`
	IsTrending       bool             `json:"isTrending"`
	IsFeatured       bool             `json:"isFeatured"`
	IsDeal           bool             `json:"isDeal"`
	Stock            int              `json:"stock" validate:"gte=0"`
	IsActive         *bool            `json:"isActive"`
	Tags             []string         `json:"tags"`
	MaterialInfo     *string          `json:"materialInfo"`
	CareInstructions *string          `json:"careInstructions"`
}

func (h *HTTPHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input ProductCreateInput
	if !decodeAndValidate(h, w, r, &input) {
		return
	}
	if input.Price.IsNegative() {
		respondWithError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	product := &domain.Product{
		Name:             input.Name,
		Slug:             input.Slug,
		Description:      input.Description,
		Price:            input.Price,
		CompareAtPrice:   input.CompareAtPrice,
		CategoryID:       input.CategoryID,
		Images:           input.Images,
		Sizes:            input.Sizes,
		Colors:           input.Colors,
		IsNew:            input.IsNew,
		IsTrending:       input.IsTrending,
		IsFeatured:       input.IsFeatured,
		IsDeal:           input.IsDeal,
		Stock:            input.Stock,
		IsActive:         isActive,
		Tags:             input.Tags,
		MaterialInfo:     input.MaterialInfo,
		CareInstructions: input.CareInstructions,
	}

	created, err := h.stores.Products.CreateProduct(r.Context(), product)
	if err != nil {
		respondWithStoreError(w, "CreateProduct", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	qParams := r.URL.Query()

	filter := store.ProductFilter{
		CategoryID: qParams.Get("category"),
		Search:     qParams.Get("search"),
	}

	var err error
	if filter.IsNew, err = parseBoolParam(qParams, "isNew"); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.IsTrending, err = parseBoolParam(qParams, "isTrending"); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.IsFeatured, err = parseBoolParam(qParams, "isFeatured"); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.IsDeal, err = parseBoolParam(qParams, "isDeal"); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if limitStr := qParams.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit value")
			return
		}
		filter.Limit = &limit
	}
	if offsetStr := qParams.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid offset value")
			return
		}
		filter.Offset = offset
	}

	products, err := h.stores.Products.ListProducts(r.Context(), filter)
	if err != nil {
		respondWithStoreError(w, "ListProducts", err)
		return
	}
	respondWithJSON(w, http.StatusOK, products)
}

func parseBoolParam(qParams url.Values, name string) (bool, error) {
	value := qParams.Get(name)
	if value == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.New("Invalid " + name + " value: must be true or false")
	}
	return parsed, nil
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")
	detail, err := h.stores.Details.GetProductDetail(r.Context(), id)
	if err != nil {
		respondWithStoreError(w, "GetProduct", err)
		return
	}
	respondWithJSON(w, http.StatusOK, detail)
}

func (h *HTTPHandler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	detail, err := h.stores.Details.GetProductDetailBySlug(r.Context(), slug)
	if err != nil {
		respondWithStoreError(w, "GetProductBySlug", err)
		return
	}
	respondWithJSON(w, http.StatusOK, detail)
}

// ProductUpdateInput defines the expected input for a partial product
// update; absent fields are left unchanged.
type ProductUpdateInput struct {
	Name             *string          `json:"name" validate:"omitempty,max=255"`
	Slug             *string          `json:"slug" validate:"omitempty,max=255"`
	Description      *string          `json:"description"`
	Price            *decimal.Decimal `json:"price"`
	CompareAtPrice   *decimal.Decimal `json:"compareAtPrice"`
	CategoryID       *string          `json:"categoryId"`
	Images           []string         `json:"images"`
	Sizes            []string         `json:"sizes"`
	Colors           []string         `json:"colors"`
	IsNew            *bool            `json:"isNew"`
	IsTrending       *bool            `json:"isTrending"`
	IsFeatured       *bool            `json:"isFeatured"`
	IsDeal           *bool            `json:"isDeal"`
	Stock            *int             `json:"stock" validate:"omitempty,gte=0"`
	IsActive         *bool            `json:"isActive"`
	Tags             []string         `json:"tags"`
	MaterialInfo     *string          `json:"materialInfo"`
	CareInstructions *string          `json:"careInstructions"`
}

func (h *HTTPHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")

	var input ProductUpdateInput
	if !decodeAndValidate(h, w, r, &input) {
		return
	}
	if input.Price != nil && input.Price.IsNegative() {
		respondWithError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	update := store.ProductUpdate{
		Name:             input.Name,
		Slug:             input.Slug,
		Description:      input.Description,
		Price:            input.Price,
		CompareAtPrice:   input.CompareAtPrice,
		CategoryID:       input.CategoryID,
		Images:           input.Images,
		Sizes:            input.Sizes,
		Colors:           input.Colors,
		IsNew:            input.IsNew,
		IsTrending:       input.IsTrending,
		IsFeatured:       input.IsFeatured,
		IsDeal:           input.IsDeal,
		Stock:            input.Stock,
		IsActive:         input.IsActive,
		Tags:             input.Tags,
		MaterialInfo:     input.MaterialInfo,
		CareInstructions: input.CareInstructions,
	}

	updated, err := h.stores.Products.UpdateProduct(r.Context(), id, update)
	if err != nil {
		respondWithStoreError(w, "UpdateProduct", err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) GetProductRecommendations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")

	// 404 for unknown anchors rather than empty buckets.
	if _, err := h.stores.Products.GetProduct(r.Context(), id); err != nil {
		respondWithStoreError(w, "GetProductRecommendations", err)
		return
	}

	alsoLike, err := h.stores.Recommender.Recommend(r.Context(), id, 4)
	if err != nil {
		respondWithStoreError(w, "GetProductRecommendations", err)
		return
	}
	pairWith, err := h.stores.Recommender.Recommend(r.Context(), id, 3)
	if err != nil {
		respondWithStoreError(w, "GetProductRecommendations", err)
		return
	}
	respondWithJSON(w, http.StatusOK, domain.RecommendationSet{AlsoLike: alsoLike, PairWith: pairWith})
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Post("/", h.CreateCategory)
		r.Get("/", h.ListCategories)
		r.Get("/{slug}", h.GetCategoryBySlug)
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Post("/", h.CreateProduct)
		r.Get("/", h.ListProducts)
		// Ensure this is before the {productId} route so slugs are not
		// treated as IDs.
		r.Get("/slug/{slug}", h.GetProductBySlug)

		r.Route("/{productId}", func(r chi.Router) {
			r.Get("/", h.GetProduct)
			r.Patch("/", h.UpdateProduct)
			r.Get("/recommendations", h.GetProductRecommendations)
		})
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Post("/", h.AddToCart)
		r.Delete("/", h.ClearCart)
		r.Patch("/{itemId}", h.UpdateCartItem)
		r.Delete("/{itemId}", h.RemoveFromCart)
	})

	r.Route("/api/v1/wishlist", func(r chi.Router) {
		r.Post("/", h.AddToWishlist)
		r.Get("/{userId}", h.GetWishlist)
		r.Delete("/{userId}/{productId}", h.RemoveFromWishlist)
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/user/{userId}", h.GetUserOrders)
		r.Get("/{orderId}", h.GetOrder)
		r.Patch("/{orderId}/status", h.UpdateOrderStatus)
	})

	r.Route("/api/v1/reviews", func(r chi.Router) {
		r.Post("/", h.CreateReview)
		r.Get("/product/{productId}", h.GetProductReviews)
		r.Patch("/{reviewId}/helpful", h.UpdateReviewHelpfulness)
	})

	r.Route("/api/v1/addresses", func(r chi.Router) {
		r.Post("/", h.CreateAddress)
		r.Get("/user/{userId}", h.GetUserAddresses)
		r.Patch("/{addressId}", h.UpdateAddress)
		r.Delete("/{addressId}", h.DeleteAddress)
	})

	r.Route("/api/v1/banners", func(r chi.Router) {
		r.Get("/", h.GetBanners)
		r.Post("/", h.CreateBanner)
	})

	r.Route("/api/v1/notifications", func(r chi.Router) {
		r.Post("/", h.CreateNotification)
		r.Get("/user/{userId}", h.GetUserNotifications)
		r.Patch("/{notificationId}/read", h.MarkNotificationRead)
	})

	r.Route("/api/v1/collections", func(r chi.Router) {
		r.Get("/", h.GetCollections)
		r.Post("/", h.CreateCollection)
		r.Get("/{collectionId}", h.GetCollection)
	})

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/", h.CreateUser)
		r.Get("/{userId}", h.GetUser)
		r.Patch("/{userId}", h.UpdateUser)
	})
}
