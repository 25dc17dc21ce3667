package handler

import (
	"encoding/json"
	"net/http"

	"github.com/anayaorganic/shop-backend/pkg/api"
	"github.com/anayaorganic/shop-backend/internal/api/dto"
	"github.com/anayaorganic/shop-backend/internal/service"
	"github.com/anayaorganic/shop-backend/internal/util"
)

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{authService: authService}
}

// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var registerDTO dto.RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&registerDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Register(r.Context(), registerDTO.Username, registerDTO.Email, registerDTO.Password, registerDTO.Role)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, dto.AuthResponse{
		Msg:       "User registered successfully",
		AuthToken: result.Token,
		Username:  result.User.Username,
		Role:      result.User.Role,
		UserID:    result.User.UserID,
	})
}

// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginDTO dto.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&loginDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Login(r.Context(), loginDTO.Email, loginDTO.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, dto.AuthResponse{
		Msg:       "Login successful",
		AuthToken: result.Token,
		Username:  result.User.Username,
		Role:      result.User.Role,
		UserID:    result.User.UserID,
	})
}

// GET /api/auth/profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	payload := util.GetTokenPayloadFromContext(r.Context())

	user, err := h.authService.GetProfile(r.Context(), payload.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, user)
}

// PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	payload := util.GetTokenPayloadFromContext(r.Context())

	var updateDTO dto.UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&updateDTO); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := h.authService.UpdateProfile(r.Context(), payload.UserID, service.UpdateProfileParams{
		Username: updateDTO.Username,
		Email:    updateDTO.Email,
		Password: updateDTO.Password,
	}, false)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, map[string]string{"msg": "Profile updated successfully"})
}
