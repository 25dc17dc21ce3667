package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anayaorganic/shop-backend/internal/api"
	"github.com/anayaorganic/shop-backend/internal/api/handler"
	"github.com/anayaorganic/shop-backend/internal/constants"
	"github.com/anayaorganic/shop-backend/internal/model"
	"github.com/anayaorganic/shop-backend/internal/service"
	"github.com/anayaorganic/shop-backend/internal/token"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// deadlineCaptureRepo 記錄repo被呼叫時的context deadline
type deadlineCaptureRepo struct {
	deadline    time.Time
	hasDeadline bool
}

func (r *deadlineCaptureRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	r.deadline, r.hasDeadline = ctx.Deadline()
	return []model.Product{}, nil
}

func (r *deadlineCaptureRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return nil
}

func (r *deadlineCaptureRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	return nil, nil
}

func (r *deadlineCaptureRepo) GetProductStock(ctx context.Context, productID string) (int, error) {
	return 0, nil
}

func (r *deadlineCaptureRepo) GetProductsFiltered(ctx context.Context, category, name string) ([]model.Product, error) {
	return nil, nil
}

func (r *deadlineCaptureRepo) GetCategories(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (r *deadlineCaptureRepo) CountProducts(ctx context.Context) (int64, error) {
	return 0, nil
}

func (r *deadlineCaptureRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return nil
}

func (r *deadlineCaptureRepo) AddProductStock(ctx context.Context, productID string, quantity uint) (int, error) {
	return 0, nil
}

func (r *deadlineCaptureRepo) DeductProductStock(ctx context.Context, productID string, quantity uint) (int, error) {
	return 0, nil
}

func (r *deadlineCaptureRepo) HardDeleteProduct(ctx context.Context, productID string) error {
	return nil
}

func setupTestRouter(t *testing.T, repo *deadlineCaptureRepo) *chi.Mux {
	tokenMaker, err := token.NewJWTMaker("12345678901234567890123456789012")
	require.NoError(t, err)

	productHandler := handler.NewProductHandler(service.NewProductService(repo), t.TempDir())
	server := api.NewServer(nil, productHandler, nil, nil, nil)

	logger := zerolog.Nop()
	return SetupRouter(server, tokenMaker, t.TempDir(), &logger)
}

// 每個請求的context都要帶deadline，store round trip才不會無限等
func TestRequestContextCarriesStoreDeadline(t *testing.T) {
	repo := &deadlineCaptureRepo{}
	r := setupTestRouter(t, repo)

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, repo.hasDeadline)
	require.LessOrEqual(t, time.Until(repo.deadline), constants.StoreTimeout)
}

// 管理後台掛在 /admin，不在 /api 底下
func TestAdminRoutesMountedAtRoot(t *testing.T) {
	r := setupTestRouter(t, &deadlineCaptureRepo{})

	require.True(t, r.Match(chi.NewRouteContext(), http.MethodPost, "/admin/login"))
	require.True(t, r.Match(chi.NewRouteContext(), http.MethodGet, "/admin/reports/sales"))
	require.False(t, r.Match(chi.NewRouteContext(), http.MethodPost, "/api/admin/login"))
}
