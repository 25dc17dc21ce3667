package db

import (
	"context"
	"time"

	"github.com/anayaorganic/shop-backend/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IReportRepository interface {
	UpsertDailyRevenue(ctx context.Context, date time.Time, amount decimal.Decimal) error
	GetRevenues(ctx context.Context, start, end *time.Time) ([]model.Revenue, error)
	CreateUserActivity(ctx context.Context, activity *model.UserActivity) error
	GetUserActivities(ctx context.Context, start, end *time.Time) ([]model.UserActivity, error)
}

// ReportRepo 報表資料，由projector根據kafka事件維護
type ReportRepo struct {
	dbDao *DbDao
}

func NewReportRepo(dbDao *DbDao) *ReportRepo {
	return &ReportRepo{dbDao: dbDao}
}

// Upsert - 當日營收累加
func (s *ReportRepo) UpsertDailyRevenue(ctx context.Context, date time.Time, amount decimal.Decimal) error {
	day := date.UTC().Truncate(24 * time.Hour)
	revenue := model.Revenue{Date: day, TotalRevenue: amount}
	return s.dbDao.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_revenue": gorm.Expr("revenues.total_revenue + ?", amount),
		}),
	}).Create(&revenue).Error
}

// Read - 營收報表，可選日期區間
func (s *ReportRepo) GetRevenues(ctx context.Context, start, end *time.Time) ([]model.Revenue, error) {
	query := s.dbDao.WithContext(ctx).Model(&model.Revenue{})
	if start != nil && end != nil {
		query = query.Where("date BETWEEN ? AND ?", *start, *end)
	}

	var revenues []model.Revenue
	err := query.Order("date DESC").Find(&revenues).Error
	return revenues, err
}

// Create - 用戶活動紀錄
func (s *ReportRepo) CreateUserActivity(ctx context.Context, activity *model.UserActivity) error {
	return s.dbDao.WithContext(ctx).Create(activity).Error
}

// Read - 用戶活動報表，可選日期區間
func (s *ReportRepo) GetUserActivities(ctx context.Context, start, end *time.Time) ([]model.UserActivity, error) {
	query := s.dbDao.WithContext(ctx).Model(&model.UserActivity{})
	if start != nil && end != nil {
		query = query.Where("date BETWEEN ? AND ?", *start, *end)
	}

	var activities []model.UserActivity
	err := query.Order("date DESC").Find(&activities).Error
	return activities, err
}

var _ IReportRepository = (*ReportRepo)(nil)
