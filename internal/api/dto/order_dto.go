package dto

import (
	"github.com/anayaorganic/shop-backend/internal/model"
	"github.com/shopspring/decimal"
)

type CreateOrderDTO struct {
	UserID          int                   `json:"userId"`
	ShippingAddress model.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	BuyNowProductID string                `json:"buyNowProductId"`
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status"`
}

type UpdateOrderDetailsDTO struct {
	Status          *string                     `json:"status"`
	ShippingAddress *model.ShippingAddressPatch `json:"shippingAddress"`
}
