package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/anayaorganic/shop-backend/pkg/api"
	"github.com/anayaorganic/shop-backend/internal/api/dto"
	"github.com/anayaorganic/shop-backend/internal/service"
	"github.com/anayaorganic/shop-backend/internal/util"
)

type AdminHandler struct {
	authService   service.IAuthService
	reportService service.IReportService
}

func NewAdminHandler(authService service.IAuthService, reportService service.IReportService) *AdminHandler {
	if authService == nil || reportService == nil {
		panic("authService and reportService cannot be nil")
	}
	return &AdminHandler{authService: authService, reportService: reportService}
}

// POST /admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginDTO dto.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&loginDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.AdminLogin(r.Context(), loginDTO.Email, loginDTO.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, dto.AuthResponse{
		Msg:       "Admin login successful",
		AuthToken: result.Token,
		Username:  result.User.Username,
		Role:      result.User.Role,
		UserID:    result.User.UserID,
	})
}

// POST /admin/register
func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	var registerDTO dto.RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&registerDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.AdminRegister(r.Context(), registerDTO.Username, registerDTO.Email, registerDTO.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, dto.AuthResponse{
		Msg:       "Admin registered successfully",
		AuthToken: result.Token,
		Username:  result.User.Username,
		Role:      result.User.Role,
		UserID:    result.User.UserID,
	})
}

// GET /admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportService.GetAdminStats(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, stats)
}

// GET /admin/reports/sales
func (h *AdminHandler) GetSalesReport(w http.ResponseWriter, r *http.Request) {
	sales, err := h.reportService.GetSalesReport(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, sales)
}

// GET /admin/reports/stock
func (h *AdminHandler) GetStockReport(w http.ResponseWriter, r *http.Request) {
	items, err := h.reportService.GetStockReport(r.Context(), r.URL.Query().Get("category"), r.URL.Query().Get("productName"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, items)
}

// GET /admin/reports/categories
func (h *AdminHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.reportService.GetCategories(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, categories)
}

// GET /admin/reports/revenue
func (h *AdminHandler) GetRevenueReport(w http.ResponseWriter, r *http.Request) {
	start, end := parseDateRange(r)
	revenues, err := h.reportService.GetRevenueReport(r.Context(), start, end)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, revenues)
}

// GET /admin/reports/user-activity
func (h *AdminHandler) GetUserActivityReport(w http.ResponseWriter, r *http.Request) {
	start, end := parseDateRange(r)
	activities, err := h.reportService.GetUserActivityReport(r.Context(), start, end)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, activities)
}

// GET /admin/profile
func (h *AdminHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	payload := util.GetTokenPayloadFromContext(r.Context())

	admin, err := h.authService.GetProfile(r.Context(), payload.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, admin)
}

// PUT /admin/profile
// 改密碼必須帶currentPassword驗證
func (h *AdminHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	payload := util.GetTokenPayloadFromContext(r.Context())

	var updateDTO dto.UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&updateDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	admin, err := h.authService.UpdateProfile(r.Context(), payload.UserID, service.UpdateProfileParams{
		Username:        updateDTO.Username,
		Email:           updateDTO.Email,
		Password:        updateDTO.NewPassword,
		CurrentPassword: updateDTO.CurrentPassword,
	}, true)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"admin": map[string]string{
			"username": admin.Username,
			"email":    admin.Email,
		},
	})
}

// parseDateRange 解析query string的start/end日期區間，兩者都有才生效
func parseDateRange(r *http.Request) (*time.Time, *time.Time) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		return nil, nil
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return nil, nil
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return nil, nil
	}
	return &start, &end
}
