package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"storefront-service/internal/domain"
	"storefront-service/internal/store"
)

// --- User Handlers ---

// UserCreateInput defines the expected input for creating a user.
// Guest users carry isGuest and may omit everything else.
type UserCreateInput struct {
	Email           *string         `json:"email" validate:"omitempty,email"`
	FirstName       *string         `json:"firstName" validate:"omitempty,max=255"`
	LastName        *string         `json:"lastName" validate:"omitempty,max=255"`
	Phone           *string         `json:"phone" validate:"omitempty,max=32"`
	ProfileImageURL *string         `json:"profileImageUrl" validate:"omitempty,url"`
	IsGuest         bool            `json:"isGuest"`
	Preferences     json.RawMessage `json:"preferences"`
}

func (h *HTTPHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input UserCreateInput
	if !decodeAndValidate(h, w, r, &input) {
		return
	}

	user := &domain.User{
		Email:           input.Email,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Phone:           input.Phone,
		ProfileImageURL: input.ProfileImageURL,
		IsGuest:         input.IsGuest,
		Preferences:     input.Preferences,
	}

	created, err := h.stores.Users.CreateUser(r.Context(), user)
	if err != nil {
		respondWithStoreError(w, "CreateUser", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	user, err := h.stores.Users.GetUser(r.Context(), userID)
	if err != nil {
		respondWithStoreError(w, "GetUser", err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// UserUpdateInput defines the expected input for a partial user
// update; absent fields are left unchanged.
type UserUpdateInput struct {
	Email           *string         `json:"email" validate:"omitempty,email"`
	FirstName       *string         `json:"firstName" validate:"omitempty,max=255"`
	LastName        *string         `json:"lastName" validate:"omitempty,max=255"`
	Phone           *string         `json:"phone" validate:"omitempty,max=32"`
	ProfileImageURL *string         `json:"profileImageUrl" validate:"omitempty,url"`
	IsGuest         *bool           `json:"isGuest"`
	Preferences     json.RawMessage `json:"preferences"`
}

func (h *HTTPHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var input UserUpdateInput
	if !decodeAndValidate(h, w, r, &input) {
		return
	}

	update := store.UserUpdate{
		Email:           input.Email,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Phone:           input.Phone,
		ProfileImageURL: input.ProfileImageURL,
		IsGuest:         input.IsGuest,
		Preferences:     input.Preferences,
	}

	updated, err := h.stores.Users.UpdateUser(r.Context(), userID, update)
	if err != nil {
		respondWithStoreError(w, "UpdateUser", err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// --- Address Handlers ---

func (h *HTTPHandler) GetUserAddresses(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	addresses, err := h.stores.Addresses.GetUserAddresses(r.Context(), userID)
	if err != nil {
		respondWithStoreError(w, "GetUserAddresses", err)
		return
	}
	respondWithJSON(w, http.StatusOK, addresses)
}

// AddressCreateInput defines the expected input for saving an address.
type AddressCreateInput struct {
	UserID       string  `json:"userId" validate:"required"`
	Name         string  `json:"name" validate:"required,max=255"`
	Phone        string  `json:"phone" validate:"required,max=32"`
	AddressLine1 string  `json:"addressLine1" validate:"required,max=255"`
	AddressLine2 *string `json:"addressLine2" validate:"omitempty,max=255"`
	City         string  `json:"city" validate:"required,max=255"`
	State        string  `json:"state" validate:"required,max=255"`
	Pincode      string  `json:"pincode" validate:"required,max=16"`
	Country      string  `json:"country" validate:"omitempty,max=255"`
	IsDefault    bool    `json:"isDefault"`
}

func (h *HTTPHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var input AddressCreateInput
	if !decodeAndValidate(h, w, r, &input) {
		return
	}

	address := &domain.Address{
		UserID:       input.UserID,
		Name:         input.Name,
		Phone:        input.Phone,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		State:        input.State,
		Pincode:      input.Pincode,
		Country:      input.Country,
		IsDefault:    input.IsDefault,
	}

	created, err := h.stores.Addresses.CreateAddress(r.Context(), address)
	if err != nil {
		respondWithStoreError(w, "CreateAddress", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// AddressUpdateInput defines the expected input for a partial address
// update; absent fields are left unchanged.
type AddressUpdateInput struct {
	Name         *string `json:"name" validate:"omitempty,max=255"`
	Phone        *string `json:"phone" validate:"omitempty,max=32"`
	AddressLine1 *string `json:"addressLine1" validate:"omitempty,max=255"`
	AddressLine2 *string `json:"addressLine2" validate:"omitempty,max=255"`
	City         *string `json:"city" validate:"omitempty,max=255"`
	State        *string `json:"state" validate:"omitempty,max=255"`
	Pincode      *string `json:"pincode" validate:"omitempty,max=16"`
	Country      *string `json:"country" validate:"omitempty,max=255"`
	IsDefault    *bool   `json:"isDefault"`
}

func (h *HTTPHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	addressID := chi.URLParam(r, "addressId")

	var input AddressUpdateInput
	if !decodeAndValidate(h, w, r, &input) {
		return
	}

	update := store.AddressUpdate{
		Name:         input.Name,
		Phone:        input.Phone,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		State:        input.State,
		Pincode:      input.Pincode,
		Country:      input.Country,
		IsDefault:    input.IsDefault,
	}

	updated, err := h.stores.Addresses.UpdateAddress(r.Context(), addressID, update)
	if err != nil {
		respondWithStoreError(w, "UpdateAddress", err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	addressID := chi.URLParam(r, "addressId")

	if err := h.stores.Addresses.DeleteAddress(r.Context(), addressID); err != nil {
		respondWithStoreError(w, "DeleteAddress", err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

// --- Banner Handlers ---

func (h *HTTPHandler) GetBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.stores.Banners.GetBanners(r.Context(), time.Now().UTC())
	if err != nil {
		respondWithStoreError(w, "GetBanners", err)
		return
	}
	respondWithJSON(w, http.StatusOK, banners)
}

// BannerCreateInput defines the expected input for creating a banner.
type BannerCreateInput struct {
	Title      string     `json:"title" validate:"required,max=255"`
	Subtitle   *string    `json:"subtitle" validate:"omitempty,max=255"`
	Image      string     `json:"image" validate:"required,url"`
	ButtonText *string    `json:"buttonText" validate:"omitempty,max=64"`
	ButtonLink *string    `json:"buttonLink" validate:"omitempty,max=2048"`
	IsActive   *bool      `json:"isActive"`
	SortOrder  int        `json:"sortOrder" validate:"gte=0"`
	StartDate  *time.Time `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
}

func (h *HTTPHandler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	var input BannerCreateInput
	if !decodeAndValidate(h, w, r, &input) {
		return
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		respondWithError(w, http.StatusBadRequest, "endDate must not precede startDate")
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	banner := &domain.Banner{
		Title:      input.Title,
		Subtitle:   input.Subtitle,
		Image:      input.Image,
		ButtonText: input.ButtonText,
		ButtonLink: input.ButtonLink,
		IsActive:   isActive,
		SortOrder:  input.SortOrder,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}

	created, err := h.stores.Banners.CreateBanner(r.Context(), banner)
	if err != nil {
		respondWithStoreError(w, "CreateBanner", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// --- Notification Handlers ---

func (h *HTTPHandler) GetUserNotifications(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	notifications, err := h.stores.Notifications.GetUserNotifications(r.Context(), userID)
	if err != nil {
		respondWithStoreError(w, "GetUserNotifications", err)
		return
	}
	respondWithJSON(w, http.StatusOK, notifications)
}

// NotificationCreateInput defines the expected input for creating a
// notification.
type NotificationCreateInput struct {
	UserID  *string                 `json:"userId"`
	Title   string                  `json:"title" validate:"required,max=255"`
	Message string                  `json:"message" validate:"required"`
	Type    domain.NotificationType `json:"type" validate:"required,oneof=new_arrival discount restock order_update"`
	Data    json.RawMessage         `json:"data"`
}

func (h *HTTPHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var input NotificationCreateInput
	if !decodeAndValidate(h, w, r, &input) {
		return
	}

	notification := &domain.Notification{
		UserID:  input.UserID,
		Title:   input.Title,
		Message: input.Message,
		Type:    input.Type,
		Data:    input.Data,
	}

	created, err := h.stores.Notifications.CreateNotification(r.Context(), notification)
	if err != nil {
		respondWithStoreError(w, "CreateNotification", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "notificationId")

	if err := h.stores.Notifications.MarkNotificationRead(r.Context(), notificationID); err != nil {
		respondWithStoreError(w, "MarkNotificationRead", err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

// --- Collection Handlers ---

func (h *HTTPHandler) GetCollections(w http.ResponseWriter, r *http.Request) {
	var upcoming *bool
	if upcomingStr := r.URL.Query().Get("upcoming"); upcomingStr != "" {
		parsed, err := strconv.ParseBool(upcomingStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid upcoming value: must be true or false")
			return
		}
		upcoming = &parsed
	}

	collections, err := h.stores.Collections.GetCollections(r.Context(), upcoming)
	if err != nil {
		respondWithStoreError(w, "GetCollections", err)
		return
	}
	respondWithJSON(w, http.StatusOK, collections)
}

func (h *HTTPHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	collectionID := chi.URLParam(r, "collectionId")

	collection, err := h.stores.Collections.GetCollection(r.Context(), collectionID)
	if err != nil {
		respondWithStoreError(w, "GetCollection", err)
		return
	}
	respondWithJSON(w, http.StatusOK, collection)
}

// CollectionCreateInput defines the expected input for creating a
// collection.
type CollectionCreateInput struct {
	Name        string     `json:"name" validate:"required,max=255"`
	Slug        string     `json:"slug" validate:"required,max=255"`
	Description *string    `json:"description"`
	Image       *string    `json:"image" validate:"omitempty,url"`
	IsUpcoming  bool       `json:"isUpcoming"`
	LaunchDate  *time.Time `json:"launchDate"`
	IsActive    *bool      `json:"isActive"`
}

func (h *HTTPHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var input CollectionCreateInput
	if !decodeAndValidate(h, w, r, &input) {
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	collection := &domain.Collection{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Image:       input.Image,
		IsUpcoming:  input.IsUpcoming,
		LaunchDate:  input.LaunchDate,
		IsActive:    isActive,
	}

	created, err := h.stores.Collections.CreateCollection(r.Context(), collection)
	if err != nil {
		respondWithStoreError(w, "CreateCollection", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}
