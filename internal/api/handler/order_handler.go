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

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{orderService: orderService}
}

// POST /api/orders/create
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var createDTO dto.CreateOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), service.PlaceOrderParams{
		UserID:          createDTO.UserID,
		ShippingAddress: createDTO.ShippingAddress,
		PaymentMethod:   createDTO.PaymentMethod,
		TotalAmount:     createDTO.TotalAmount,
		BuyNowProductID: createDTO.BuyNowProductID,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, order)
}

// GET /api/orders
func (h *OrderHandler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.GetAllOrders(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, orders)
}

// GET /api/orders/user/{userId}
func (h *OrderHandler) GetOrdersByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid user id")
		return
	}

	orders, err := h.orderService.GetOrdersByUserID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, orders)
}

// GET /api/orders/order/{id}
func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, order)
}

// PUT /api/orders/{id}/status
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var statusDTO dto.UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&statusDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), statusDTO.Status)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, order)
}

// PUT /api/orders/{id}
func (h *OrderHandler) UpdateOrderDetails(w http.ResponseWriter, r *http.Request) {
	var detailsDTO dto.UpdateOrderDetailsDTO
	if err := json.NewDecoder(r.Body).Decode(&detailsDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.UpdateOrderDetails(r.Context(), chi.URLParam(r, "id"), detailsDTO.Status, detailsDTO.ShippingAddress)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, order)
}

// DELETE /api/orders/order/{id}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orderService.HardDeleteOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}
