package service

import (
	"context"
	"time"

	"github.com/anayaorganic/shop-backend/internal/constants"
	"github.com/anayaorganic/shop-backend/internal/infra/event"
	"github.com/anayaorganic/shop-backend/internal/infra/repository/db"
	"github.com/anayaorganic/shop-backend/internal/model"
	"github.com/anayaorganic/shop-backend/internal/token"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult 登入/註冊成功後回傳的資訊
type LoginResult struct {
	Token string
	User  *model.User
}

// UpdateProfileParams 個人資料部分更新，nil欄位保留原值
// ChangePassword時CurrentPassword必填(管理員流程)
type UpdateProfileParams struct {
	Username        *string
	Email           *string
	Password        *string
	CurrentPassword *string
}

type IAuthService interface {
	Register(ctx context.Context, username, email, password, role string) (*LoginResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	AdminLogin(ctx context.Context, email, password string) (*LoginResult, error)
	AdminRegister(ctx context.Context, username, email, password string) (*LoginResult, error)
	GetProfile(ctx context.Context, userID int) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int, params UpdateProfileParams, verifyCurrent bool) (*model.User, error)
}

type AuthService struct {
	userRepo   db.IUserRepository
	tokenMaker token.Maker
	producer   event.Producer
	logger     *zerolog.Logger
}

func NewAuthService(userRepo db.IUserRepository, tokenMaker token.Maker, producer event.Producer, logger *zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenMaker: tokenMaker,
		producer:   producer,
		logger:     logger,
	}
}

// Register 註冊新用戶
// email唯一，密碼bcrypt雜湊後才落地
func (a *AuthService) Register(ctx context.Context, username, email, password, role string) (*LoginResult, error) {
	existed, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existed != nil {
		return nil, ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if _, err := a.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	accessToken, err := a.tokenMaker.CreateToken(user.UserID, user.Username, user.Role, constants.AccessTokenDuration)
	if err != nil {
		return nil, err
	}

	go a.publishActivity(user.UserID, model.ActivityRegister)

	return &LoginResult{Token: accessToken, User: user}, nil
}

// Login 帳密登入
// bcrypt的比對本身是常數時間
func (a *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return a.verifyAndIssue(user, password)
}

// AdminLogin 只允許role為admin的帳號
func (a *AuthService) AdminLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	admin, err := a.userRepo.GetAdminByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return a.verifyAndIssue(admin, password)
}

func (a *AuthService) AdminRegister(ctx context.Context, username, email, password string) (*LoginResult, error) {
	return a.Register(ctx, username, email, password, model.RoleAdmin)
}

func (a *AuthService) verifyAndIssue(user *model.User, password string) (*LoginResult, error) {
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := a.tokenMaker.CreateToken(user.UserID, user.Username, user.Role, constants.AccessTokenDuration)
	if err != nil {
		return nil, err
	}

	go a.publishActivity(user.UserID, model.ActivityLogin)

	return &LoginResult{Token: accessToken, User: user}, nil
}

func (a *AuthService) GetProfile(ctx context.Context, userID int) (*model.User, error) {
	user, err := a.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotExist
	}
	return user, nil
}

// UpdateProfile 個人資料部分更新
// verifyCurrent為true時(管理員後台)，改密碼必須先驗證舊密碼
func (a *AuthService) UpdateProfile(ctx context.Context, userID int, params UpdateProfileParams, verifyCurrent bool) (*model.User, error) {
	user, err := a.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if params.Password != nil && *params.Password != "" {
		if verifyCurrent {
			if params.CurrentPassword == nil {
				return nil, ErrInvalidCredentials
			}
			if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*params.CurrentPassword)); err != nil {
				return nil, ErrInvalidCredentials
			}
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if params.Username != nil && *params.Username != "" {
		user.Username = *params.Username
	}
	if params.Email != nil && *params.Email != "" {
		user.Email = *params.Email
	}

	if err := a.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// 次要事件發布，有錯誤會記錄，交由後續程序處理
func (a *AuthService) publishActivity(userID int, activityType string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.producer.ProduceUserActivity(ctx, userID, activityType); err != nil {
		a.logger.Error().Err(err).Int("user_id", userID).Str("type", activityType).Msg("failed to publish user activity event")
	}
}

var _ IAuthService = (*AuthService)(nil)
