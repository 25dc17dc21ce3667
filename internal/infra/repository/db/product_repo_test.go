package db

import (
	"context"
	"sync"
	"testing"

	"github.com/anayaorganic/shop-backend/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type ProductRepoTestSuite struct {
	suite.Suite
	db          *gorm.DB
	productRepo *ProductRepo
}

// SetupSuite 在測試套件開始前執行
func (suite *ProductRepoTestSuite) SetupSuite() {
	db, err := GetDbConn("shop_backend_test", "localhost", "5432", "royce", "password")
	require.NoError(suite.T(), err)
	dbDao := NewDbDao(db)
	require.NoError(suite.T(), dbDao.InitMigrate())

	suite.db = db
	suite.productRepo = NewProductRepo(dbDao)
}

// SetupTest 在每個測試前執行
func (suite *ProductRepoTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM products")
}

// TearDownSuite 在測試套件結束後執行
func (suite *ProductRepoTestSuite) TearDownSuite() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

func (suite *ProductRepoTestSuite) createTestProduct(name, category string, stock uint) *model.Product {
	product := &model.Product{
		ProductID: uuid.New().String(),
		Name:      name,
		Price:     decimal.NewFromInt(100),
		Image:     "/uploads/test.png",
		Stock:     stock,
		Category:  category,
	}
	require.NoError(suite.T(), suite.productRepo.CreateProduct(context.Background(), product))
	return product
}

func (suite *ProductRepoTestSuite) TestCreateAndGetProduct() {
	product := suite.createTestProduct("Organic Honey", "food", 10)

	found, err := suite.productRepo.GetProductByID(context.Background(), product.ProductID)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), found)
	require.Equal(suite.T(), "Organic Honey", found.Name)
	require.True(suite.T(), decimal.NewFromInt(100).Equal(found.Price))
}

func (suite *ProductRepoTestSuite) TestGetProductByID_NotFound() {
	found, err := suite.productRepo.GetProductByID(context.Background(), uuid.New().String())
	require.NoError(suite.T(), err)
	require.Nil(suite.T(), found)
}

func (suite *ProductRepoTestSuite) TestGetProductsFiltered() {
	suite.createTestProduct("Organic Honey", "food", 10)
	suite.createTestProduct("Organic Soap", "care", 5)
	suite.createTestProduct("Shampoo", "care", 5)

	// 類別過濾
	products, err := suite.productRepo.GetProductsFiltered(context.Background(), "care", "")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), products, 2)

	// 名稱模糊搜尋，不分大小寫
	products, err = suite.productRepo.GetProductsFiltered(context.Background(), "", "organic")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), products, 2)

	// 兩者同時
	products, err = suite.productRepo.GetProductsFiltered(context.Background(), "care", "organic")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), products, 1)
	require.Equal(suite.T(), "Organic Soap", products[0].Name)
}

func (suite *ProductRepoTestSuite) TestGetCategories() {
	suite.createTestProduct("A", "food", 1)
	suite.createTestProduct("B", "food", 1)
	suite.createTestProduct("C", "care", 1)

	categories, err := suite.productRepo.GetCategories(context.Background())
	require.NoError(suite.T(), err)
	require.Len(suite.T(), categories, 2)
	require.ElementsMatch(suite.T(), []string{"food", "care"}, categories)
}

func (suite *ProductRepoTestSuite) TestDeductProductStock() {
	product := suite.createTestProduct("A", "food", 10)

	stock, err := suite.productRepo.DeductProductStock(context.Background(), product.ProductID, 4)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 6, stock)
}

func (suite *ProductRepoTestSuite) TestDeductProductStock_NotEnough() {
	product := suite.createTestProduct("A", "food", 3)

	_, err := suite.productRepo.DeductProductStock(context.Background(), product.ProductID, 4)
	require.ErrorIs(suite.T(), err, ErrProductStockNotEnough)

	// 庫存不變
	stock, err := suite.productRepo.GetProductStock(context.Background(), product.ProductID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 3, stock)
}

func (suite *ProductRepoTestSuite) TestDeductProductStock_NotFound() {
	_, err := suite.productRepo.DeductProductStock(context.Background(), uuid.New().String(), 1)
	require.ErrorIs(suite.T(), err, ErrProductNotFound)
}

// 並發扣減不會超賣
func (suite *ProductRepoTestSuite) TestDeductProductStock_Concurrent() {
	product := suite.createTestProduct("A", "food", 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = suite.productRepo.DeductProductStock(context.Background(), product.ProductID, 1)
		}(i)
	}
	wg.Wait()

	// 恰好一個成功
	successCount := 0
	for _, err := range errs {
		if err == nil {
			successCount++
		} else {
			require.ErrorIs(suite.T(), err, ErrProductStockNotEnough)
		}
	}
	require.Equal(suite.T(), 1, successCount)

	stock, err := suite.productRepo.GetProductStock(context.Background(), product.ProductID)
	require.NoError(suite.T(), err)
	require.Zero(suite.T(), stock)
}

func (suite *ProductRepoTestSuite) TestAddProductStock() {
	product := suite.createTestProduct("A", "food", 5)

	stock, err := suite.productRepo.AddProductStock(context.Background(), product.ProductID, 3)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 8, stock)
}

func (suite *ProductRepoTestSuite) TestAddProductStock_NotFound() {
	_, err := suite.productRepo.AddProductStock(context.Background(), uuid.New().String(), 3)
	require.ErrorIs(suite.T(), err, ErrProductNotFound)
}

func (suite *ProductRepoTestSuite) TestAddProductStock_Concurrent() {
	product := suite.createTestProduct("A", "food", 0)

	// 回傳的庫存要反映更新後的值，兩個並發各加5，回傳值必為5與10
	results := make([]int, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			stock, err := suite.productRepo.AddProductStock(context.Background(), product.ProductID, 5)
			require.NoError(suite.T(), err)
			results[idx] = stock
		}(i)
	}
	wg.Wait()

	require.ElementsMatch(suite.T(), []int{5, 10}, results)

	stock, err := suite.productRepo.GetProductStock(context.Background(), product.ProductID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 10, stock)
}

func (suite *ProductRepoTestSuite) TestHardDeleteProduct() {
	product := suite.createTestProduct("A", "food", 5)

	err := suite.productRepo.HardDeleteProduct(context.Background(), product.ProductID)
	require.NoError(suite.T(), err)

	found, err := suite.productRepo.GetProductByID(context.Background(), product.ProductID)
	require.NoError(suite.T(), err)
	require.Nil(suite.T(), found)
}

func TestProductRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepoTestSuite))
}
