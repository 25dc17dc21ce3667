package router

import (
	"net/http"

	"github.com/anayaorganic/shop-backend/internal/api"
	m "github.com/anayaorganic/shop-backend/internal/api/middleware"
	"github.com/anayaorganic/shop-backend/internal/constants"
	"github.com/anayaorganic/shop-backend/internal/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// SetupRouter 註冊全部路由與中間件
func SetupRouter(server *api.Server, tokenMaker token.Maker, uploadDir string, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(m.AuthPayloadMiddleware(tokenMaker))
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))
	// 請求context帶deadline，db/redis round trip都受這個上限約束
	r.Use(middleware.Timeout(constants.StoreTimeout))

	// 商品圖片靜態檔案
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", server.AuthHandler.Register)
			r.Post("/login", server.AuthHandler.Login)
			r.With(m.AuthMiddleware).Get("/profile", server.AuthHandler.GetProfile)
			r.With(m.AuthMiddleware).Put("/profile", server.AuthHandler.UpdateProfile)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", server.ProductHandler.GetAllProducts)
			r.Get("/{id}", server.ProductHandler.GetProductByID)
			// 商品維護僅限管理員
			r.With(m.AuthMiddleware, m.AdminMiddleware).Post("/", server.ProductHandler.CreateProduct)
			r.With(m.AuthMiddleware, m.AdminMiddleware).Put("/{id}", server.ProductHandler.UpdateProduct)
			r.With(m.AuthMiddleware, m.AdminMiddleware).Delete("/{id}", server.ProductHandler.DeleteProduct)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Get("/{userId}", server.CartHandler.GetCart)
			r.Post("/add", server.CartHandler.AddToCart)
			r.Put("/update", server.CartHandler.UpdateCartItem)
			r.Delete("/remove", server.CartHandler.RemoveFromCart)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Post("/create", server.OrderHandler.CreateOrder)
			r.Get("/user/{userId}", server.OrderHandler.GetOrdersByUserID)
			r.Get("/order/{id}", server.OrderHandler.GetOrderByID)
			r.With(m.AdminMiddleware).Get("/", server.OrderHandler.GetAllOrders)
			r.With(m.AdminMiddleware).Put("/{id}/status", server.OrderHandler.UpdateOrderStatus)
			r.With(m.AdminMiddleware).Put("/{id}", server.OrderHandler.UpdateOrderDetails)
			r.With(m.AdminMiddleware).Delete("/order/{id}", server.OrderHandler.DeleteOrder)
		})
	})

	// 管理後台掛在 /admin，不在 /api 底下
	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", server.AdminHandler.Login)
		r.Post("/register", server.AdminHandler.Register)

		r.Group(func(r chi.Router) {
			r.Use(m.AuthMiddleware, m.AdminMiddleware)
			r.Get("/stats", server.AdminHandler.GetStats)
			r.Get("/reports/sales", server.AdminHandler.GetSalesReport)
			r.Get("/reports/stock", server.AdminHandler.GetStockReport)
			r.Get("/reports/revenue", server.AdminHandler.GetRevenueReport)
			r.Get("/reports/user-activity", server.AdminHandler.GetUserActivityReport)
			r.Get("/reports/categories", server.AdminHandler.GetCategories)
			r.Get("/profile", server.AdminHandler.GetProfile)
			r.Put("/profile", server.AdminHandler.UpdateProfile)
		})
	})

	return r
}
