package service

import (
	"context"
	"time"

	"github.com/anayaorganic/shop-backend/internal/infra/repository/db"
	"github.com/anayaorganic/shop-backend/internal/model"
	"golang.org/x/sync/errgroup"
)

// AdminStats 後台儀表板統計
type AdminStats struct {
	TotalOrders   int64         `json:"totalOrders"`
	TotalUsers    int64         `json:"totalUsers"`
	TotalProducts int64         `json:"totalProducts"`
	TotalRevenue  float64       `json:"totalRevenue"`
	RecentOrders  []model.Order `json:"recentOrders"`
}

// StockReportItem 庫存報表單列
type StockReportItem struct {
	ProductName   string `json:"productName"`
	Category      string `json:"category"`
	StockQuantity uint   `json:"stockQuantity"`
}

type IReportService interface {
	GetAdminStats(ctx context.Context) (*AdminStats, error)
	GetSalesReport(ctx context.Context) ([]db.DailySales, error)
	GetStockReport(ctx context.Context, category, productName string) ([]StockReportItem, error)
	GetCategories(ctx context.Context) ([]string, error)
	GetRevenueReport(ctx context.Context, start, end *time.Time) ([]model.Revenue, error)
	GetUserActivityReport(ctx context.Context, start, end *time.Time) ([]model.UserActivity, error)
}

type ReportService struct {
	orderRepo   db.IOrderRepository
	userRepo    db.IUserRepository
	productRepo db.IProductRepository
	reportRepo  db.IReportRepository
}

func NewReportService(orderRepo db.IOrderRepository, userRepo db.IUserRepository, productRepo db.IProductRepository, reportRepo db.IReportRepository) *ReportService {
	return &ReportService{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		reportRepo:  reportRepo,
	}
}

// GetAdminStats 五個統計各自獨立查詢，併發執行
func (r *ReportService) GetAdminStats(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := r.orderRepo.CountOrders(gctx)
		stats.TotalOrders = total
		return err
	})
	g.Go(func() error {
		total, err := r.userRepo.CountUsers(gctx)
		stats.TotalUsers = total
		return err
	})
	g.Go(func() error {
		total, err := r.productRepo.CountProducts(gctx)
		stats.TotalProducts = total
		return err
	})
	g.Go(func() error {
		total, err := r.orderRepo.SumOrderAmount(gctx)
		stats.TotalRevenue = total
		return err
	})
	g.Go(func() error {
		orders, err := r.orderRepo.GetRecentOrders(gctx, 5)
		stats.RecentOrders = orders
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *ReportService) GetSalesReport(ctx context.Context) ([]db.DailySales, error) {
	return r.orderRepo.GetDailySales(ctx)
}

func (r *ReportService) GetStockReport(ctx context.Context, category, productName string) ([]StockReportItem, error) {
	products, err := r.productRepo.GetProductsFiltered(ctx, category, productName)
	if err != nil {
		return nil, err
	}

	items := make([]StockReportItem, 0, len(products))
	for _, product := range products {
		items = append(items, StockReportItem{
			ProductName:   product.Name,
			Category:      product.Category,
			StockQuantity: product.Stock,
		})
	}
	return items, nil
}

func (r *ReportService) GetCategories(ctx context.Context) ([]string, error) {
	return r.productRepo.GetCategories(ctx)
}

func (r *ReportService) GetRevenueReport(ctx context.Context, start, end *time.Time) ([]model.Revenue, error) {
	return r.reportRepo.GetRevenues(ctx, start, end)
}

func (r *ReportService) GetUserActivityReport(ctx context.Context, start, end *time.Time) ([]model.UserActivity, error) {
	return r.reportRepo.GetUserActivities(ctx, start, end)
}

var _ IReportService = (*ReportService)(nil)
