package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 用戶活動類型
const (
	ActivityLogin    = "login"
	ActivityRegister = "register"
)

// Revenue 每日營收，由projector根據訂單事件累加維護
type Revenue struct {
	Date         time.Time       `gorm:"primaryKey;type:date" json:"date"`
	TotalRevenue decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"totalRevenue"`
}

// UserActivity 用戶活動紀錄，由projector根據活動事件寫入
type UserActivity struct {
	ActivityID string    `gorm:"primaryKey;type:varchar(36)" json:"activityId"`
	UserID     int       `gorm:"not null;index" json:"userId"`
	Type       string    `gorm:"not null;type:varchar(20)" json:"type"`
	Date       time.Time `gorm:"not null;index" json:"date"`
}
