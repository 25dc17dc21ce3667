package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anayaorganic/shop-backend/internal/infra/event"
	"github.com/anayaorganic/shop-backend/internal/infra/repository/db"
	"github.com/anayaorganic/shop-backend/internal/infra/repository/redisrepo"
	"github.com/anayaorganic/shop-backend/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PlaceOrderParams 建立訂單的輸入
// TotalAmount 由前端結帳頁計算後帶入，系統不重算
type PlaceOrderParams struct {
	UserID          int
	ShippingAddress model.ShippingAddress
	PaymentMethod   string
	TotalAmount     decimal.Decimal
	BuyNowProductID string // 有值代表直接購買，不走購物車
}

type IOrderService interface {
	PlaceOrder(ctx context.Context, params PlaceOrderParams) (*model.Order, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID int) ([]model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status string) (*model.Order, error)
	UpdateOrderDetails(ctx context.Context, orderID string, status *string, addressPatch *model.ShippingAddressPatch) (*model.Order, error)
	HardDeleteOrder(ctx context.Context, orderID string) error
}

type OrderService struct {
	orderRepo   db.IOrderRepository
	productRepo db.IProductRepository
	userRepo    db.IUserRepository
	cartRepo    redisrepo.ICartRepository
	producer    event.Producer
	mail        IMailService
	logger      *zerolog.Logger
}

func NewOrderService(
	orderRepo db.IOrderRepository,
	productRepo db.IProductRepository,
	userRepo db.IUserRepository,
	cartRepo redisrepo.ICartRepository,
	producer event.Producer,
	mail IMailService,
	logger *zerolog.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		cartRepo:    cartRepo,
		producer:    producer,
		mail:        mail,
		logger:      logger,
	}
}

/*
PlaceOrder 購物車(或直接購買)轉訂單

 1. 決定商品來源: buy now取單一商品數量1，否則取redis購物車
 2. 逐項預檢庫存，快照當下單價組出order items
 3. 訂單寫入與逐項條件式扣庫存在同一個db事務，並發下不會超賣，
    也不會留下部分扣減
 4. 購物車來源才清空購物車，buy now不動購物車
 5. 事件發布與通知信都是best-effort，失敗只記log不影響訂單結果
*/
func (o *OrderService) PlaceOrder(ctx context.Context, params PlaceOrderParams) (*model.Order, error) {
	if !params.ShippingAddress.IsComplete() {
		return nil, ErrAddressIncomplete
	}

	user, err := o.userRepo.GetUserByID(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotExist
	}

	fromCart := params.BuyNowProductID == ""

	var orderItems []model.OrderItem
	if fromCart {
		orderItems, err = o.collectCartItems(ctx, params.UserID)
	} else {
		orderItems, err = o.collectBuyNowItem(ctx, params.BuyNowProductID)
	}
	if err != nil {
		return nil, err
	}

	status := model.OrderStatusPaid
	if params.PaymentMethod == model.PaymentMethodCOD {
		status = model.OrderStatusPending
	}

	order := &model.Order{
		OrderID:         uuid.New().String(),
		UserID:          params.UserID,
		OrderItems:      orderItems,
		ShippingAddress: params.ShippingAddress,
		PaymentMethod:   params.PaymentMethod,
		TotalAmount:     params.TotalAmount,
		Status:          status,
		OrderDate:       time.Now().UTC(),
	}

	// 訂單與庫存扣減同一個事務，任何一項庫存不足整筆rollback
	if err := o.orderRepo.CreateOrderWithStockDeduction(ctx, order); err != nil {
		if errors.Is(err, db.ErrProductStockNotEnough) {
			return nil, ErrStockNotEnough
		}
		if errors.Is(err, db.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if fromCart {
		// 訂單已落地，清購物車失敗只記log
		if err := o.cartRepo.Clear(ctx, params.UserID); err != nil {
			o.logger.Error().Err(err).Int("user_id", params.UserID).Msg("failed to clear cart after order")
		}
	}

	// 次要事件發布，有錯誤會記錄，交由後續程序處理
	go o.publishOrderCreated(order)
	go o.sendConfirmationMail(user.Email, order)

	return order, nil
}

// collectCartItems 從購物車組出訂單項目
// 商品已被下架的購物車殘留項目直接略過，全部被略過視為空購物車
// 每一項預檢庫存，任何一項不足整筆失敗，不做部分成立
func (o *OrderService) collectCartItems(ctx context.Context, userID int) ([]model.OrderItem, error) {
	cart, err := o.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var orderItems []model.OrderItem
	for _, item := range cart.Items {
		product, err := o.productRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}

		if int(product.Stock) < item.Quantity {
			return nil, fmt.Errorf("%w: %s", ErrStockNotEnough, product.Name)
		}

		orderItems = append(orderItems, model.OrderItem{
			ProductID:   product.ProductID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       product.Price,
		})
	}

	if len(orderItems) == 0 {
		return nil, ErrCartEmpty
	}
	return orderItems, nil
}

// collectBuyNowItem 直接購買固定一項數量1，快照當下單價
func (o *OrderService) collectBuyNowItem(ctx context.Context, productID string) ([]model.OrderItem, error) {
	product, err := o.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.Stock == 0 {
		return nil, fmt.Errorf("%w: %s", ErrStockNotEnough, product.Name)
	}

	return []model.OrderItem{{
		ProductID:   product.ProductID,
		ProductName: product.Name,
		Quantity:    1,
		Price:       product.Price,
	}}, nil
}

// 事件發布
// TODO :若是有任何失敗，需要紀錄並後續處理
func (o *OrderService) publishOrderCreated(order *model.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := o.producer.ProduceOrderCreated(ctx, order.OrderID, order.UserID, order.TotalAmount, order.OrderDate)
	if err != nil {
		o.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to publish order created event")
	}
}

// 通知信 best-effort
func (o *OrderService) sendConfirmationMail(email string, order *model.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := o.mail.SendOrderConfirmation(ctx, email, order); err != nil {
		o.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to send order confirmation email")
	}
}

func (o *OrderService) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotExist
	}
	return order, nil
}

func (o *OrderService) GetOrdersByUserID(ctx context.Context, userID int) ([]model.Order, error) {
	return o.orderRepo.GetOrdersByUserID(ctx, userID)
}

func (o *OrderService) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return o.orderRepo.GetAllOrders(ctx)
}

// UpdateOrderStatus 狀態是自由字串，後台給什麼存什麼，不檢查轉移規則
func (o *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status string) (*model.Order, error) {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotExist
	}

	if err := o.orderRepo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	return o.GetOrder(ctx, orderID)
}

// UpdateOrderDetails 只開放status與出貨地址修改
// 地址是部分更新，有給的欄位覆蓋，沒給的保留
// 訂單項目與總金額建單後不再改動
func (o *OrderService) UpdateOrderDetails(ctx context.Context, orderID string, status *string, addressPatch *model.ShippingAddressPatch) (*model.Order, error) {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotExist
	}

	if status != nil {
		order.Status = *status
	}
	if addressPatch != nil {
		order.ShippingAddress = order.ShippingAddress.Merge(*addressPatch)
	}

	if err := o.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}
	return o.GetOrder(ctx, orderID)
}

func (o *OrderService) HardDeleteOrder(ctx context.Context, orderID string) error {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotExist
	}
	return o.orderRepo.HardDeleteOrder(ctx, orderID)
}

var _ IOrderService = (*OrderService)(nil)
