package model

// 購物車只存在redis, 不落db，所有購物車資料都要去redis取
type Cart struct {
	UserID int        `json:"userId"`
	Items  []CartItem `json:"items"`
}

type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
