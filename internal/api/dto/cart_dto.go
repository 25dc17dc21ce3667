package dto

type AddToCartDTO struct {
	UserID    int    `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemDTO struct {
	UserID    int    `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type RemoveFromCartDTO struct {
	UserID    int    `json:"userId"`
	ProductID string `json:"productId"`
}
