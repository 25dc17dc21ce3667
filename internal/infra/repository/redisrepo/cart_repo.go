package redisrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/anayaorganic/shop-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

type CartRepoError error

var (
	ErrCartItemNotFound     CartRepoError = errors.New("cart item not found")
	ErrInsufficientQuantity CartRepoError = errors.New("insufficient quantity")
)

type ICartRepository interface {
	Get(ctx context.Context, userID int) (*model.Cart, error)
	Add(ctx context.Context, userID int, productID string, deltaQuantity int) error
	SetQuantity(ctx context.Context, userID int, productID string, quantity int) error
	Delete(ctx context.Context, userID int, productID string) error
	Clear(ctx context.Context, userID int) error
}

/*
購物車只存在redis
結構:

	cart:<userID>:meta  -> hash {user_id}
	cart:<userID>:items -> hash {productID: quantity}
*/
type CartRepo struct {
	cartCache *redis.Client
}

func NewCartRepo(cartCache *redis.Client) *CartRepo {
	return &CartRepo{cartCache: cartCache}
}

func generateCartItemKey(userID int) string {
	return fmt.Sprintf("cart:%d:items", userID)
}

func generateCartMetaKey(userID int) string {
	return fmt.Sprintf("cart:%d:meta", userID)
}

// Get 取購物車，不存在會延遲建立一個空購物車
func (r *CartRepo) Get(ctx context.Context, userID int) (*model.Cart, error) {
	metaKey := generateCartMetaKey(userID)
	itemsKey := generateCartItemKey(userID)

	// 延遲建立: 第一次存取時寫入meta
	if err := r.cartCache.HSetNX(ctx, metaKey, "user_id", userID).Err(); err != nil {
		return nil, fmt.Errorf("failed to init cart meta: %w", err)
	}

	items, err := r.cartCache.HGetAll(ctx, itemsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	cart := &model.Cart{
		UserID: userID,
		Items:  []model.CartItem{},
	}
	for productID, quantityStr := range items {
		quantity, err := strconv.Atoi(quantityStr)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity for product %s: %w", productID, err)
		}
		if quantity > 0 {
			cart.Items = append(cart.Items, model.CartItem{
				ProductID: productID,
				Quantity:  quantity,
			})
		}
	}

	return cart, nil
}

// Add 購物車數量增減（delta），減到0直接刪除該商品
// 使用 Lua 腳本執行原子增減
func (r *CartRepo) Add(ctx context.Context, userID int, productID string, deltaQuantity int) error {
	itemsKey := generateCartItemKey(userID)

	luaScript := `
		local key = KEYS[1]
		local product_id = ARGV[1]
		local delta = tonumber(ARGV[2])

		-- 如果是扣減操作，先檢查數量是否足夠
		if delta < 0 then
			local current = tonumber(redis.call('HGET', key, product_id) or "0")
			if current + delta < 0 then
				return -2  -- 商品數量不足
			end
			-- 如果扣減後剛好為 0，直接刪除
			if current == -delta then
				redis.call('HDEL', key, product_id)
				return 0
			end
		end

		-- 使用 HINCRBY 進行原子增減
		return redis.call('HINCRBY', key, product_id, delta)
	`

	result, err := r.cartCache.Eval(ctx, luaScript, []string{itemsKey}, productID, deltaQuantity).Result()
	if err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}

	switch v := result.(type) {
	case int64:
		if v == -2 {
			return fmt.Errorf("%w product %s", ErrInsufficientQuantity, productID)
		}
		return nil
	default:
		return fmt.Errorf("unexpected result type: %T", result)
	}
}

// SetQuantity 直接設定某商品數量，商品必須已在購物車內
func (r *CartRepo) SetQuantity(ctx context.Context, userID int, productID string, quantity int) error {
	itemsKey := generateCartItemKey(userID)

	luaScript := `
		local key = KEYS[1]
		local product_id = ARGV[1]
		if redis.call('HEXISTS', key, product_id) == 0 then
			return -1  -- 商品不在購物車內
		end
		redis.call('HSET', key, product_id, ARGV[2])
		return 1
	`

	result, err := r.cartCache.Eval(ctx, luaScript, []string{itemsKey}, productID, quantity).Result()
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	switch v := result.(type) {
	case int64:
		if v == -1 {
			return fmt.Errorf("%w: product %s", ErrCartItemNotFound, productID)
		}
		return nil
	default:
		return fmt.Errorf("unexpected result type: %T", result)
	}
}

// Delete 從購物車中刪除指定商品
func (r *CartRepo) Delete(ctx context.Context, userID int, productID string) error {
	itemsKey := generateCartItemKey(userID)

	err := r.cartCache.HDel(ctx, itemsKey, productID).Err()
	if err != nil {
		return fmt.Errorf("failed to delete item from cart: %w", err)
	}
	return nil
}

// Clear 清空購物車
// 只刪items，meta保留，購物車實體不會消失
func (r *CartRepo) Clear(ctx context.Context, userID int) error {
	itemsKey := generateCartItemKey(userID)

	err := r.cartCache.Del(ctx, itemsKey).Err()
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

var _ ICartRepository = (*CartRepo)(nil)
