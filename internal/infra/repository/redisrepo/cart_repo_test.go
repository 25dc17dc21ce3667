package redisrepo

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	testRedisAddr     = "localhost:6379"
	testRedisPassword = "password"
)

type CartRepoTestSuite struct {
	suite.Suite
	rdb      *redis.Client
	cartRepo *CartRepo
}

func setupTestRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     testRedisAddr,
		Password: testRedisPassword,
		DB:       1, // 用測試DB
	})
}

func (suite *CartRepoTestSuite) SetupTest() {
	suite.rdb = setupTestRedis()
	suite.rdb.FlushDB(context.Background())
	suite.cartRepo = NewCartRepo(suite.rdb)
}

func TestCartRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CartRepoTestSuite))
}

func (suite *CartRepoTestSuite) TestGet_CreatesEmptyCart() {
	ctx := context.Background()

	cart, err := suite.cartRepo.Get(ctx, 1)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 1, cart.UserID)
	require.Empty(suite.T(), cart.Items)

	// meta已建立
	exists, err := suite.rdb.Exists(ctx, "cart:1:meta").Result()
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), int64(1), exists)
}

func (suite *CartRepoTestSuite) TestAdd() {
	ctx := context.Background()

	require.NoError(suite.T(), suite.cartRepo.Add(ctx, 1, "p1", 2))
	require.NoError(suite.T(), suite.cartRepo.Add(ctx, 1, "p2", 3))

	cart, err := suite.cartRepo.Get(ctx, 1)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 2)

	quantities := map[string]int{}
	for _, item := range cart.Items {
		quantities[item.ProductID] = item.Quantity
	}
	require.Equal(suite.T(), 2, quantities["p1"])
	require.Equal(suite.T(), 3, quantities["p2"])
}

func (suite *CartRepoTestSuite) TestAdd_AccumulatesQuantity() {
	ctx := context.Background()

	require.NoError(suite.T(), suite.cartRepo.Add(ctx, 1, "p1", 2))
	require.NoError(suite.T(), suite.cartRepo.Add(ctx, 1, "p1", 3))

	cart, err := suite.cartRepo.Get(ctx, 1)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 1)
	require.Equal(suite.T(), 5, cart.Items[0].Quantity)
}

func (suite *CartRepoTestSuite) TestAdd_NegativeDeltaRemovesItem() {
	ctx := context.Background()

	require.NoError(suite.T(), suite.cartRepo.Add(ctx, 1, "p1", 2))
	require.NoError(suite.T(), suite.cartRepo.Add(ctx, 1, "p1", -2))

	cart, err := suite.cartRepo.Get(ctx, 1)
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), cart.Items)
}

func (suite *CartRepoTestSuite) TestAdd_InsufficientQuantity() {
	ctx := context.Background()

	require.NoError(suite.T(), suite.cartRepo.Add(ctx, 1, "p1", 2))

	err := suite.cartRepo.Add(ctx, 1, "p1", -5)
	require.ErrorIs(suite.T(), err, ErrInsufficientQuantity)

	// 原數量不變
	cart, err := suite.cartRepo.Get(ctx, 1)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 2, cart.Items[0].Quantity)
}

func (suite *CartRepoTestSuite) TestSetQuantity() {
	ctx := context.Background()

	require.NoError(suite.T(), suite.cartRepo.Add(ctx, 1, "p1", 2))
	require.NoError(suite.T(), suite.cartRepo.SetQuantity(ctx, 1, "p1", 7))

	cart, err := suite.cartRepo.Get(ctx, 1)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 7, cart.Items[0].Quantity)
}

func (suite *CartRepoTestSuite) TestSetQuantity_ItemNotFound() {
	ctx := context.Background()

	err := suite.cartRepo.SetQuantity(ctx, 1, "missing", 5)
	require.ErrorIs(suite.T(), err, ErrCartItemNotFound)
}

func (suite *CartRepoTestSuite) TestDelete() {
	ctx := context.Background()

	require.NoError(suite.T(), suite.cartRepo.Add(ctx, 1, "p1", 2))
	require.NoError(suite.T(), suite.cartRepo.Add(ctx, 1, "p2", 1))
	require.NoError(suite.T(), suite.cartRepo.Delete(ctx, 1, "p1"))

	cart, err := suite.cartRepo.Get(ctx, 1)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 1)
	require.Equal(suite.T(), "p2", cart.Items[0].ProductID)
}

func (suite *CartRepoTestSuite) TestClear_KeepsCartEntity() {
	ctx := context.Background()

	require.NoError(suite.T(), suite.cartRepo.Add(ctx, 1, "p1", 2))
	require.NoError(suite.T(), suite.cartRepo.Clear(ctx, 1))

	// 清空後購物車本體還在，只是沒有項目
	cart, err := suite.cartRepo.Get(ctx, 1)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 1, cart.UserID)
	require.Empty(suite.T(), cart.Items)

	exists, err := suite.rdb.Exists(ctx, "cart:1:meta").Result()
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), int64(1), exists)
}

// 不同用戶的購物車互不影響
func (suite *CartRepoTestSuite) TestCartsAreIsolatedPerUser() {
	ctx := context.Background()

	require.NoError(suite.T(), suite.cartRepo.Add(ctx, 1, "p1", 2))
	require.NoError(suite.T(), suite.cartRepo.Add(ctx, 2, "p2", 3))

	cartA, err := suite.cartRepo.Get(ctx, 1)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cartA.Items, 1)
	require.Equal(suite.T(), "p1", cartA.Items[0].ProductID)

	cartB, err := suite.cartRepo.Get(ctx, 2)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cartB.Items, 1)
	require.Equal(suite.T(), "p2", cartB.Items[0].ProductID)
}
