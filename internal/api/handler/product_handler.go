package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/anayaorganic/shop-backend/pkg/api"
	"github.com/anayaorganic/shop-backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const maxUploadSize = 10 << 20 // 10MB

type ProductHandler struct {
	productService service.IProductService
	uploadDir      string
}

func NewProductHandler(productService service.IProductService, uploadDir string) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &ProductHandler{productService: productService, uploadDir: uploadDir}
}

// GET /api/products
func (h *ProductHandler) GetAllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.GetAllProducts(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, products)
}

// GET /api/products/{id}
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.productService.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, product)
}

// POST /api/products  (multipart form, image必填)
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	imagePath, err := h.saveUploadedImage(r)
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "No image uploaded")
		return
	}

	price, err := decimal.NewFromString(r.FormValue("price"))
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid price")
		return
	}
	stock, err := strconv.ParseUint(r.FormValue("stock"), 10, 32)
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid stock")
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), service.CreateProductParams{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       price,
		Image:       imagePath,
		Stock:       uint(stock),
		Category:    r.FormValue("category"),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusCreated, product)
}

// PUT /api/products/{id}  (multipart form, 所有欄位皆可選)
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	params := service.UpdateProductParams{}
	if v := r.FormValue("name"); v != "" {
		params.Name = &v
	}
	if v := r.FormValue("description"); v != "" {
		params.Description = &v
	}
	if v := r.FormValue("price"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			api.ErrorJSON(w, http.StatusBadRequest, "invalid price")
			return
		}
		params.Price = &price
	}
	if v := r.FormValue("stock"); v != "" {
		stock, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			api.ErrorJSON(w, http.StatusBadRequest, "invalid stock")
			return
		}
		stockVal := uint(stock)
		params.Stock = &stockVal
	}
	if v := r.FormValue("category"); v != "" {
		params.Category = &v
	}

	// 有上傳新圖才換圖
	if imagePath, err := h.saveUploadedImage(r); err == nil {
		params.Image = &imagePath
	}

	product, err := h.productService.UpdateProduct(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, product)
}

// DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.productService.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

// saveUploadedImage 存上傳圖檔，檔名用時間戳避免衝突，回傳對外路徑
func (h *ProductHandler) saveUploadedImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return "", err
	}
	defer file.Close()

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(header.Filename))
	dstPath := filepath.Join(h.uploadDir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return "/uploads/" + filename, nil
}
