package handler

import (
	"errors"
	"net/http"

	"github.com/anayaorganic/shop-backend/pkg/api"
	"github.com/anayaorganic/shop-backend/internal/service"
)

// handleServiceError 把service層的sentinel error對應到http狀態碼
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrProductNotInCart),
		errors.Is(err, service.ErrOrderNotExist),
		errors.Is(err, service.ErrUserNotExist):
		api.ErrorJSON(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrCartEmpty),
		errors.Is(err, service.ErrStockNotEnough),
		errors.Is(err, service.ErrAddressIncomplete),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrInvalidCredentials):
		api.ErrorJSON(w, http.StatusBadRequest, err.Error())
	default:
		api.ErrorJSON(w, http.StatusInternalServerError, err.Error())
	}
}
