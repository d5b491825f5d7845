package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"storefront-service/internal/domain"
)

// --- Order Handlers ---

func (h *HTTPHandler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	orders, err := h.stores.Orders.GetOrders(r.Context(), userID)
	if err != nil {
		respondWithStoreError(w, "GetUserOrders", err)
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}

func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	order, err := h.stores.Orders.GetOrder(r.Context(), orderID)
	if err != nil {
		respondWithStoreError(w, "GetOrder", err)
		return
	}
	respondWithJSON(w, http.StatusOK, order)
}

// OrderItemInput is one order line in a checkout request. The price is
// the unit price snapshot the client checked out with.
type OrderItemInput struct {
	ProductID string          `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gte=1"`
	Price     decimal.Decimal `json:"price"`
	Size      *string         `json:"size"`
	Color     *string         `json:"color"`
}

// OrderCreateInput defines the expected input for placing an order.
// Totals are validated against the item snapshots by the store.
type OrderCreateInput struct {
	UserID            *string          `json:"userId"`
	Total             decimal.Decimal  `json:"total"`
	Subtotal          decimal.Decimal  `json:"subtotal"`
	Tax               decimal.Decimal  `json:"tax"`
	Shipping          decimal.Decimal  `json:"shipping"`
	Discount          decimal.Decimal  `json:"discount"`
	PaymentMethod     *string          `json:"paymentMethod"`
	ShippingAddress   json.RawMessage  `json:"shippingAddress" validate:"required"`
	Items             []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var input OrderCreateInput
	if !decodeAndValidate(h, w, r, &input) {
		return
	}

	order := &domain.Order{
		UserID:          input.UserID,
		Total:           input.Total,
		Subtotal:        input.Subtotal,
		Tax:             input.Tax,
		Shipping:        input.Shipping,
		Discount:        input.Discount,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: input.ShippingAddress,
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Size:      item.Size,
			Color:     item.Color,
		})
	}

	created, err := h.stores.Orders.CreateOrder(r.Context(), order, items)
	if err != nil {
		respondWithStoreError(w, "CreateOrder", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// OrderStatusInput defines the expected input for an order status
// transition.
type OrderStatusInput struct {
	Status domain.OrderStatus `json:"status" validate:"required"`
}

func (h *HTTPHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var input OrderStatusInput
	if !decodeAndValidate(h, w, r, &input) {
		return
	}

	updated, err := h.stores.Orders.UpdateOrderStatus(r.Context(), orderID, input.Status)
	if err != nil {
		respondWithStoreError(w, "UpdateOrderStatus", err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// --- Review Handlers ---

func (h *HTTPHandler) GetProductReviews(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	reviews, err := h.stores.Reviews.GetProductReviews(r.Context(), productID)
	if err != nil {
		respondWithStoreError(w, "GetProductReviews", err)
		return
	}
	respondWithJSON(w, http.StatusOK, reviews)
}

// ReviewCreateInput defines the expected input for creating a review.
type ReviewCreateInput struct {
	UserID     string   `json:"userId" validate:"required"`
	ProductID  string   `json:"productId" validate:"required"`
	OrderID    *string  `json:"orderId"`
	Rating     int      `json:"rating" validate:"required,gte=1,lte=5"`
	Title      *string  `json:"title"`
	Comment    *string  `json:"comment"`
	Images     []string `json:"images"`
	IsVerified bool     `json:"isVerified"`
}

func (h *HTTPHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var input ReviewCreateInput
	if !decodeAndValidate(h, w, r, &input) {
		return
	}

	review := &domain.Review{
		UserID:     input.UserID,
		ProductID:  input.ProductID,
		OrderID:    input.OrderID,
		Rating:     input.Rating,
		Title:      input.Title,
		Comment:    input.Comment,
		Images:     input.Images,
		IsVerified: input.IsVerified,
	}

	created, err := h.stores.Reviews.CreateReview(r.Context(), review)
	if err != nil {
		respondWithStoreError(w, "CreateReview", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// ReviewHelpfulInput marks a review as helpful or retracts the mark.
type ReviewHelpfulInput struct {
	Helpful *bool `json:"helpful" validate:"required"`
}

func (h *HTTPHandler) UpdateReviewHelpfulness(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewId")

	var input ReviewHelpfulInput
	if !decodeAndValidate(h, w, r, &input) {
		return
	}

	updated, err := h.stores.Reviews.UpdateReviewHelpfulness(r.Context(), reviewID, *input.Helpful)
	if err != nil {
		respondWithStoreError(w, "UpdateReviewHelpfulness", err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}
