package db

import (
	"context"
	"errors"

	"github.com/anayaorganic/shop-backend/internal/model"
	"gorm.io/gorm"
)

var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrProductStockNotEnough 商品庫存不足
	ErrProductStockNotEnough = errors.New("product stock not enough")
)

type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID string) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetProductStock(ctx context.Context, productID string) (int, error)
	GetProductsFiltered(ctx context.Context, category, name string) ([]model.Product, error)
	GetCategories(ctx context.Context) ([]string, error)
	CountProducts(ctx context.Context) (int64, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	AddProductStock(ctx context.Context, productID string, quantity uint) (int, error)
	DeductProductStock(ctx context.Context, productID string, quantity uint) (int, error)
	HardDeleteProduct(ctx context.Context, productID string) error
}

type ProductRepo struct {
	dbDao *DbDao
}

func NewProductRepo(dbDao *DbDao) *ProductRepo {
	return &ProductRepo{dbDao: dbDao}
}

func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.dbDao.WithContext(ctx).Create(product).Error
}

func (s *ProductRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := s.dbDao.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.dbDao.WithContext(ctx).Find(&products).Error
	return products, err
}

func (s *ProductRepo) GetProductStock(ctx context.Context, productID string) (int, error) {
	product, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, ErrProductNotFound
	}
	return int(product.Stock), nil
}

// Read - 庫存報表查詢，category精準比對，name大小寫不敏感模糊比對
func (s *ProductRepo) GetProductsFiltered(ctx context.Context, category, name string) ([]model.Product, error) {
	query := s.dbDao.WithContext(ctx).Model(&model.Product{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if name != "" {
		query = query.Where("name ILIKE ?", "%"+name+"%")
	}

	var products []model.Product
	err := query.Find(&products).Error
	return products, err
}

// Read - 所有商品分類(去重)
func (s *ProductRepo) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.dbDao.WithContext(ctx).Model(&model.Product{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

func (s *ProductRepo) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	err := s.dbDao.WithContext(ctx).Model(&model.Product{}).Count(&total).Error
	return total, err
}

// Update - 更新商品
func (s *ProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.dbDao.WithContext(ctx).Save(product).Error
}

// Update - 增加庫存
func (s *ProductRepo) AddProductStock(ctx context.Context, productID string, quantity uint) (int, error) {
	var currentStock int
	err := s.dbDao.Transaction(func(tx *gorm.DB) error {
		result := tx.WithContext(ctx).Model(&model.Product{}).
			Where("product_id = ?", productID).
			Update("stock", gorm.Expr("stock + ?", quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}

		// 回傳值要讀更新後的庫存，並發加庫存時才不會回報舊值
		var product model.Product
		if err := tx.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error; err != nil {
			return err
		}
		currentStock = int(product.Stock)
		return nil
	})

	if err != nil {
		return 0, err
	}
	return currentStock, nil
}

// Update - 扣減庫存
// 條件式更新，stock >= quantity 才會扣，不會出現負庫存
func (s *ProductRepo) DeductProductStock(ctx context.Context, productID string, quantity uint) (int, error) {
	var currentStock int
	err := s.dbDao.Transaction(func(tx *gorm.DB) error {
		deducted, err := deductStockTx(ctx, tx, productID, quantity)
		if err != nil {
			return err
		}
		currentStock = deducted
		return nil
	})

	if err != nil {
		return 0, err
	}
	return currentStock, nil
}

// deductStockTx 在既有事務內執行條件式扣庫存
// 檢查與扣減是同一條UPDATE，並發下不會超賣
func deductStockTx(ctx context.Context, tx *gorm.DB, productID string, quantity uint) (int, error) {
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		// 區分商品不存在與庫存不足
		var product model.Product
		err := tx.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrProductNotFound
		}
		if err != nil {
			return 0, err
		}
		return 0, ErrProductStockNotEnough
	}

	var product model.Product
	if err := tx.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error; err != nil {
		return 0, err
	}
	return int(product.Stock), nil
}

// Delete - 硬刪除商品
func (s *ProductRepo) HardDeleteProduct(ctx context.Context, productID string) error {
	return s.dbDao.WithContext(ctx).Unscoped().
		Where("product_id = ?", productID).
		Delete(&model.Product{}).Error
}

var _ IProductRepository = (*ProductRepo)(nil)
