package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 訂單狀態
// status 欄位是自由字串，後台可以寫入任意狀態，這兩個只是系統建立訂單時使用的預設值
const (
	OrderStatusPending = "Pending" // 貨到付款，尚未付款
	OrderStatusPaid    = "Paid"    // 已付款
)

// 貨到付款的付款方式代號
const PaymentMethodCOD = "COD"

type Order struct {
	OrderID         string          `gorm:"primaryKey;type:varchar(36)" json:"orderId"`
	UserID          int             `gorm:"not null;index" json:"userId"`                                  // 外鍵，關聯到 User
	OrderItems      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`   // 一對多，級聯刪除
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	PaymentMethod   string          `gorm:"not null;type:varchar(50)" json:"paymentMethod"`
	TotalAmount     decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"totalAmount"`
	Status          string          `gorm:"not null;type:varchar(50);default:Pending" json:"status"`
	ProofOfPayment  string          `gorm:"type:varchar(255)" json:"proofOfPayment,omitempty"`
	OrderDate       time.Time       `gorm:"not null" json:"orderDate"`
	BaseModel
}

// OrderItem 建單時快照商品單價，商品後續改價不影響歷史訂單
type OrderItem struct {
	OrderID     string          `gorm:"primaryKey;type:varchar(36)" json:"orderId"`
	ProductID   string          `gorm:"primaryKey;type:varchar(36)" json:"productId"`
	ProductName string          `gorm:"not null;type:varchar(100)" json:"productName"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	BaseModel
}

type ShippingAddress struct {
	FirstName  string `gorm:"type:varchar(50)" json:"firstName"`
	LastName   string `gorm:"type:varchar(50)" json:"lastName"`
	Email      string `gorm:"type:varchar(100)" json:"email"`
	Phone      string `gorm:"type:varchar(30)" json:"phone"`
	Address    string `gorm:"type:varchar(255)" json:"address"`
	City       string `gorm:"type:varchar(50)" json:"city"`
	PostalCode string `gorm:"type:varchar(20)" json:"postalCode"`
}

// IsComplete 出貨地址七個欄位皆為必填
func (s ShippingAddress) IsComplete() bool {
	return s.FirstName != "" && s.LastName != "" && s.Email != "" &&
		s.Phone != "" && s.Address != "" && s.City != "" && s.PostalCode != ""
}

// Merge 部分更新，有給的欄位覆蓋，沒給的保留原值
func (s ShippingAddress) Merge(patch ShippingAddressPatch) ShippingAddress {
	if patch.FirstName != nil {
		s.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		s.LastName = *patch.LastName
	}
	if patch.Email != nil {
		s.Email = *patch.Email
	}
	if patch.Phone != nil {
		s.Phone = *patch.Phone
	}
	if patch.Address != nil {
		s.Address = *patch.Address
	}
	if patch.City != nil {
		s.City = *patch.City
	}
	if patch.PostalCode != nil {
		s.PostalCode = *patch.PostalCode
	}
	return s
}

type ShippingAddressPatch struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postalCode"`
}
