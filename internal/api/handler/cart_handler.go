package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/anayaorganic/shop-backend/pkg/api"
	"github.com/anayaorganic/shop-backend/internal/api/dto"
	"github.com/anayaorganic/shop-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{cartService: cartService}
}

// GET /api/cart/{userId}
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid user id")
		return
	}

	cart, err := h.cartService.GetCart(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, cart)
}

// POST /api/cart/add
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var addDTO dto.AddToCartDTO
	if err := json.NewDecoder(r.Body).Decode(&addDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if addDTO.UserID == 0 {
		api.ErrorJSON(w, http.StatusBadRequest, "User ID is required")
		return
	}

	cart, err := h.cartService.AddToCart(r.Context(), addDTO.UserID, addDTO.ProductID, addDTO.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, cart)
}

// PUT /api/cart/update
func (h *CartHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var updateDTO dto.UpdateCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&updateDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.cartService.UpdateCartItem(r.Context(), updateDTO.UserID, updateDTO.ProductID, updateDTO.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, cart)
}

// DELETE /api/cart/remove
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var removeDTO dto.RemoveFromCartDTO
	if err := json.NewDecoder(r.Body).Decode(&removeDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.cartService.RemoveFromCart(r.Context(), removeDTO.UserID, removeDTO.ProductID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, cart)
}
