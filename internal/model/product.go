package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID   string          `gorm:"primaryKey;type:varchar(36)" json:"productId"`
	Name        string          `gorm:"not null;type:varchar(100)" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Image       string          `gorm:"not null;type:varchar(255)" json:"image"`
	Stock       uint            `gorm:"not null;type:int" json:"stock"`
	Category    string          `gorm:"not null;type:varchar(50)" json:"category"`
	BaseModel                   // CreatedAt, UpdatedAt, DeletedAt
}
