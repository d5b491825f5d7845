package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront-service/internal/domain"
)

// Cart endpoints identify the caller by userId, sessionId or both.
// Reads take them as query parameters, writes carry them in the body;
// the store enforces that at least one is present.

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	sessionID := r.URL.Query().Get("sessionId")

	items, err := h.stores.Cart.GetCartItems(r.Context(), userID, sessionID)
	if err != nil {
		respondWithStoreError(w, "GetCart", err)
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}

// CartAddInput defines the expected input for adding a cart item.
type CartAddInput struct {
	UserID    *string `json:"userId"`
	SessionID *string `json:"sessionId"`
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
	Size      *string `json:"size"`
	Color     *string `json:"color"`
}

func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var input CartAddInput
	if !decodeAndValidate(h, w, r, &input) {
		return
	}

	item := &domain.CartItem{
		UserID:    input.UserID,
		SessionID: input.SessionID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Size:      input.Size,
		Color:     input.Color,
	}

	created, err := h.stores.Cart.AddToCart(r.Context(), item)
	if err != nil {
		respondWithStoreError(w, "AddToCart", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// CartUpdateInput defines the expected input for updating a cart item.
type CartUpdateInput struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

func (h *HTTPHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	var input CartUpdateInput
	if !decodeAndValidate(h, w, r, &input) {
		return
	}

	updated, err := h.stores.Cart.UpdateCartItem(r.Context(), itemID, input.Quantity)
	if err != nil {
		respondWithStoreError(w, "UpdateCartItem", err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	if err := h.stores.Cart.RemoveFromCart(r.Context(), itemID); err != nil {
		respondWithStoreError(w, "RemoveFromCart", err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	sessionID := r.URL.Query().Get("sessionId")

	if err := h.stores.Cart.ClearCart(r.Context(), userID, sessionID); err != nil {
		respondWithStoreError(w, "ClearCart", err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

// --- Wishlist Handlers ---

func (h *HTTPHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	items, err := h.stores.Wishlist.GetWishlistItems(r.Context(), userID)
	if err != nil {
		respondWithStoreError(w, "GetWishlist", err)
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}

// WishlistAddInput defines the expected input for adding a wishlist
// item.
type WishlistAddInput struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
}

func (h *HTTPHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	var input WishlistAddInput
	if !decodeAndValidate(h, w, r, &input) {
		return
	}

	item := &domain.WishlistItem{
		UserID:    input.UserID,
		ProductID: input.ProductID,
	}

	created, err := h.stores.Wishlist.AddToWishlist(r.Context(), item)
	if err != nil {
		respondWithStoreError(w, "AddToWishlist", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	productID := chi.URLParam(r, "productId")

	if err := h.stores.Wishlist.RemoveFromWishlist(r.Context(), userID, productID); err != nil {
		respondWithStoreError(w, "RemoveFromWishlist", err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}
