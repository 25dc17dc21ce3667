package dto

type RegisterDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileDTO struct {
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	Password        *string `json:"password"`
	NewPassword     *string `json:"newPassword"`
	CurrentPassword *string `json:"currentPassword"`
}

// AuthResponse 登入/註冊回應，兼容舊前端的欄位名
type AuthResponse struct {
	Msg       string `json:"msg"`
	AuthToken string `json:"authToken"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	UserID    int    `json:"userId"`
}
