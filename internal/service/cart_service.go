package service

import (
	"context"
	"errors"

	"github.com/anayaorganic/shop-backend/internal/infra/repository/db"
	"github.com/anayaorganic/shop-backend/internal/infra/repository/redisrepo"
	"github.com/anayaorganic/shop-backend/internal/model"
)

type ICartService interface {
	GetCart(ctx context.Context, userID int) (*model.Cart, error)
	AddToCart(ctx context.Context, userID int, productID string, quantity int) (*model.Cart, error)
	UpdateCartItem(ctx context.Context, userID int, productID string, quantity int) (*model.Cart, error)
	RemoveFromCart(ctx context.Context, userID int, productID string) (*model.Cart, error)
}

type CartService struct {
	cartRepo    redisrepo.ICartRepository
	productRepo db.IProductRepository
}

func NewCartService(cartRepo redisrepo.ICartRepository, productRepo db.IProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// GetCart 購物車不存在會延遲建立空購物車
func (c *CartService) GetCart(ctx context.Context, userID int) (*model.Cart, error) {
	return c.cartRepo.Get(ctx, userID)
}

// AddToCart 加入購物車，商品已在購物車內則累加數量
func (c *CartService) AddToCart(ctx context.Context, userID int, productID string, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	// 商品必須存在才能加入
	product, err := c.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if err := c.cartRepo.Add(ctx, userID, productID, quantity); err != nil {
		// redis層的sentinel不外漏，轉成service層error
		if errors.Is(err, redisrepo.ErrInsufficientQuantity) {
			return nil, ErrInvalidQuantity
		}
		return nil, err
	}
	return c.cartRepo.Get(ctx, userID)
}

// UpdateCartItem 直接設定數量，商品必須已在購物車內
func (c *CartService) UpdateCartItem(ctx context.Context, userID int, productID string, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	if err := c.cartRepo.SetQuantity(ctx, userID, productID, quantity); err != nil {
		if errors.Is(err, redisrepo.ErrCartItemNotFound) {
			return nil, ErrProductNotInCart
		}
		return nil, err
	}
	return c.cartRepo.Get(ctx, userID)
}

func (c *CartService) RemoveFromCart(ctx context.Context, userID int, productID string) (*model.Cart, error) {
	if err := c.cartRepo.Delete(ctx, userID, productID); err != nil {
		return nil, err
	}
	return c.cartRepo.Get(ctx, userID)
}

var _ ICartService = (*CartService)(nil)
