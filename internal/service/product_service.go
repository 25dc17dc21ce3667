package service

import (
	"context"

	"github.com/anayaorganic/shop-backend/internal/infra/repository/db"
	"github.com/anayaorganic/shop-backend/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductParams 新增商品的輸入，Image為上傳後的檔案路徑
type CreateProductParams struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Stock       uint
	Category    string
}

// UpdateProductParams 部分更新，nil欄位保留原值
type UpdateProductParams struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Image       *string
	Stock       *uint
	Category    *string
}

type IProductService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (*model.Product, error)
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, productID string, params UpdateProductParams) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type ProductService struct {
	productRepo db.IProductRepository
}

func NewProductService(productRepo db.IProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

func (p *ProductService) CreateProduct(ctx context.Context, params CreateProductParams) (*model.Product, error) {
	product := &model.Product{
		ProductID:   uuid.New().String(),
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		Image:       params.Image,
		Stock:       params.Stock,
		Category:    params.Category,
	}
	if err := p.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (p *ProductService) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := p.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (p *ProductService) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	return p.productRepo.GetAllProducts(ctx)
}

func (p *ProductService) UpdateProduct(ctx context.Context, productID string, params UpdateProductParams) (*model.Product, error) {
	product, err := p.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		product.Name = *params.Name
	}
	if params.Description != nil {
		product.Description = *params.Description
	}
	if params.Price != nil {
		product.Price = *params.Price
	}
	if params.Image != nil {
		product.Image = *params.Image
	}
	if params.Stock != nil {
		product.Stock = *params.Stock
	}
	if params.Category != nil {
		product.Category = *params.Category
	}

	if err := p.productRepo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (p *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	if _, err := p.GetProduct(ctx, productID); err != nil {
		return err
	}
	return p.productRepo.HardDeleteProduct(ctx, productID)
}

var _ IProductService = (*ProductService)(nil)
