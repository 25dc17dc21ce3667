package service

import (
	"context"
	"testing"

	"github.com/anayaorganic/shop-backend/internal/infra/repository/db"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db             *gorm.DB
	productService *ProductService
}

func (suite *ProductServiceTestSuite) SetupSuite() {
	conn, err := db.GetDbConn("shop_backend_test", "localhost", "5432", "royce", "password")
	require.NoError(suite.T(), err)
	dbDao := db.NewDbDao(conn)
	require.NoError(suite.T(), dbDao.InitMigrate())

	suite.db = conn
	suite.productService = NewProductService(db.NewProductRepo(dbDao))
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM products")
}

func (suite *ProductServiceTestSuite) TearDownSuite() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

func (suite *ProductServiceTestSuite) createProductParams() CreateProductParams {
	return CreateProductParams{
		Name:        "Organic Honey",
		Description: "Raw honey",
		Price:       decimal.NewFromInt(500),
		Image:       "/uploads/honey.png",
		Stock:       20,
		Category:    "food",
	}
}

func (suite *ProductServiceTestSuite) TestCreateProduct() {
	product, err := suite.productService.CreateProduct(context.Background(), suite.createProductParams())
	require.NoError(suite.T(), err)
	require.NotEmpty(suite.T(), product.ProductID)

	found, err := suite.productService.GetProduct(context.Background(), product.ProductID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "Organic Honey", found.Name)
	require.Equal(suite.T(), uint(20), found.Stock)
}

func (suite *ProductServiceTestSuite) TestGetProduct_NotFound() {
	_, err := suite.productService.GetProduct(context.Background(), uuid.New().String())
	require.ErrorIs(suite.T(), err, ErrProductNotFound)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_PartialFields() {
	product, err := suite.productService.CreateProduct(context.Background(), suite.createProductParams())
	require.NoError(suite.T(), err)

	newPrice := decimal.NewFromInt(600)
	newStock := uint(15)
	updated, err := suite.productService.UpdateProduct(context.Background(), product.ProductID, UpdateProductParams{
		Price: &newPrice,
		Stock: &newStock,
	})
	require.NoError(suite.T(), err)
	require.True(suite.T(), newPrice.Equal(updated.Price))
	require.Equal(suite.T(), uint(15), updated.Stock)
	// 沒給的欄位保留
	require.Equal(suite.T(), "Organic Honey", updated.Name)
	require.Equal(suite.T(), "/uploads/honey.png", updated.Image)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_NotFound() {
	newPrice := decimal.NewFromInt(600)
	_, err := suite.productService.UpdateProduct(context.Background(), uuid.New().String(), UpdateProductParams{Price: &newPrice})
	require.ErrorIs(suite.T(), err, ErrProductNotFound)
}

func (suite *ProductServiceTestSuite) TestDeleteProduct() {
	product, err := suite.productService.CreateProduct(context.Background(), suite.createProductParams())
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.productService.DeleteProduct(context.Background(), product.ProductID))

	_, err = suite.productService.GetProduct(context.Background(), product.ProductID)
	require.ErrorIs(suite.T(), err, ErrProductNotFound)
}

func (suite *ProductServiceTestSuite) TestDeleteProduct_NotFound() {
	err := suite.productService.DeleteProduct(context.Background(), uuid.New().String())
	require.ErrorIs(suite.T(), err, ErrProductNotFound)
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
