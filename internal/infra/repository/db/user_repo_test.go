package db

import (
	"context"
	"testing"

	"github.com/anayaorganic/shop-backend/internal/model"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type UserRepoTestSuite struct {
	suite.Suite
	db       *gorm.DB
	userRepo *UserRepo
}

func (suite *UserRepoTestSuite) SetupSuite() {
	db, err := GetDbConn("shop_backend_test", "localhost", "5432", "royce", "password")
	require.NoError(suite.T(), err)
	dbDao := NewDbDao(db)
	require.NoError(suite.T(), dbDao.InitMigrate())

	suite.db = db
	suite.userRepo = NewUserRepo(dbDao)
}

func (suite *UserRepoTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM users")
}

func (suite *UserRepoTestSuite) TearDownSuite() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

func (suite *UserRepoTestSuite) createTestUser(email, role string) *model.User {
	user := &model.User{
		Username: "Test User",
		Email:    email,
		Password: "hashed-password",
		Role:     role,
	}
	created, err := suite.userRepo.CreateUser(context.Background(), user)
	require.NoError(suite.T(), err)
	return created
}

func (suite *UserRepoTestSuite) TestCreateUser() {
	user := suite.createTestUser("a@example.com", model.RoleUser)
	require.NotZero(suite.T(), user.UserID)
	require.False(suite.T(), user.CreatedAt.IsZero())
}

func (suite *UserRepoTestSuite) TestCreateUser_DuplicateEmail() {
	suite.createTestUser("a@example.com", model.RoleUser)

	_, err := suite.userRepo.CreateUser(context.Background(), &model.User{
		Username: "Another",
		Email:    "a@example.com",
		Password: "hashed-password",
		Role:     model.RoleUser,
	})
	require.Error(suite.T(), err)
}

func (suite *UserRepoTestSuite) TestGetUserByEmail() {
	suite.createTestUser("a@example.com", model.RoleUser)

	found, err := suite.userRepo.GetUserByEmail(context.Background(), "a@example.com")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), found)
	require.Equal(suite.T(), "a@example.com", found.Email)
}

func (suite *UserRepoTestSuite) TestGetUserByEmail_NotFound() {
	found, err := suite.userRepo.GetUserByEmail(context.Background(), "missing@example.com")
	require.NoError(suite.T(), err)
	require.Nil(suite.T(), found)
}

func (suite *UserRepoTestSuite) TestGetAdminByEmail() {
	suite.createTestUser("admin@example.com", model.RoleAdmin)
	suite.createTestUser("user@example.com", model.RoleUser)

	found, err := suite.userRepo.GetAdminByEmail(context.Background(), "admin@example.com")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), found)
	require.Equal(suite.T(), model.RoleAdmin, found.Role)

	// 一般用戶不會被當成管理員查到
	found, err = suite.userRepo.GetAdminByEmail(context.Background(), "user@example.com")
	require.NoError(suite.T(), err)
	require.Nil(suite.T(), found)
}

func (suite *UserRepoTestSuite) TestUpdateUser() {
	user := suite.createTestUser("a@example.com", model.RoleUser)

	user.Username = "Renamed"
	err := suite.userRepo.UpdateUser(context.Background(), user)
	require.NoError(suite.T(), err)

	found, err := suite.userRepo.GetUserByID(context.Background(), user.UserID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "Renamed", found.Username)
}

func (suite *UserRepoTestSuite) TestCountUsers() {
	suite.createTestUser("a@example.com", model.RoleUser)
	suite.createTestUser("b@example.com", model.RoleUser)

	count, err := suite.userRepo.CountUsers(context.Background())
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), int64(2), count)
}

func TestUserRepoTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepoTestSuite))
}
