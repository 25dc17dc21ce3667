package db

import (
	"context"
	"errors"

	"github.com/anayaorganic/shop-backend/internal/model"
	"gorm.io/gorm"
)

type IOrderRepository interface {
	CreateOrderWithStockDeduction(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, id string) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID int) ([]model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	GetRecentOrders(ctx context.Context, limit int) ([]model.Order, error)
	CountOrders(ctx context.Context) (int64, error)
	SumOrderAmount(ctx context.Context) (float64, error)
	GetDailySales(ctx context.Context) ([]DailySales, error)
	UpdateOrder(ctx context.Context, order *model.Order) error
	UpdateOrderStatus(ctx context.Context, id string, status string) error
	HardDeleteOrder(ctx context.Context, id string) error
}

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create - 創建訂單並扣庫存
// 訂單寫入與逐項條件式扣庫存在同一個事務內，任何一項庫存不足整筆rollback，
// 不會留下部分扣減的狀態
func (s *OrderRepo) CreateOrderWithStockDeduction(ctx context.Context, order *model.Order) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Create(order).Error; err != nil {
			return err
		}

		for _, item := range order.OrderItems {
			if _, err := deductStockTx(ctx, tx, item.ProductID, uint(item.Quantity)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Read - 根據ID查詢訂單
func (s *OrderRepo) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").First(&order, "order_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Read - 根據用戶ID查詢訂單
func (s *OrderRepo) GetOrdersByUserID(ctx context.Context, userID int) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").Where("user_id = ?", userID).Find(&orders).Error
	return orders, err
}

// Read - 查詢所有訂單
func (s *OrderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").Find(&orders).Error
	return orders, err
}

// Read - 最近訂單，後台儀表板用
func (s *OrderRepo) GetRecentOrders(ctx context.Context, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (s *OrderRepo) CountOrders(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Order{}).Count(&total).Error
	return total, err
}

// Read - 訂單總金額加總
func (s *OrderRepo) SumOrderAmount(ctx context.Context) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).Model(&model.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().
		Scan(&total)
	return total, err
}

// DailySales 單日銷售統計
type DailySales struct {
	Date        string  `json:"date"`
	TotalOrders int     `json:"totalOrders"`
	TotalSales  float64 `json:"totalSales"`
}

// Read - 按日期分組的銷售報表
func (s *OrderRepo) GetDailySales(ctx context.Context) ([]DailySales, error) {
	var sales []DailySales
	err := s.db.WithContext(ctx).Model(&model.Order{}).
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') as date, COUNT(*) as total_orders, COALESCE(SUM(total_amount), 0) as total_sales").
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Order("date").
		Scan(&sales).Error
	return sales, err
}

// Update - 更新訂單
func (s *OrderRepo) UpdateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Save(order).Error
}

// Update - 更新訂單狀態
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, id string, status string) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", id).
		Update("status", status).Error
}

// Delete - 硬刪除訂單
func (s *OrderRepo) HardDeleteOrder(ctx context.Context, id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Unscoped().
			Where("order_id = ?", id).
			Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.WithContext(ctx).Unscoped().
			Where("order_id = ?", id).
			Delete(&model.Order{}).Error
	})
}

var _ IOrderRepository = (*OrderRepo)(nil)
