package appcontext

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/anayaorganic/shop-backend/internal/api"
	"github.com/anayaorganic/shop-backend/internal/api/handler"
	"github.com/anayaorganic/shop-backend/internal/config"
	"github.com/anayaorganic/shop-backend/internal/infra/event"
	"github.com/anayaorganic/shop-backend/internal/infra/repository/db"
	"github.com/anayaorganic/shop-backend/internal/infra/repository/redisrepo"
	"github.com/anayaorganic/shop-backend/internal/service"
	"github.com/anayaorganic/shop-backend/internal/token"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ApplicationContext 集中管理所有依賴的建立與關閉
type ApplicationContext struct {
	Cf          *config.Config
	Logger      *zerolog.Logger
	DbConn      *gorm.DB
	DbDao       *db.DbDao
	RedisClient *redis.Client
	TokenMaker  token.Maker
	Producer    event.Producer
	Projector   *event.Projector

	UserRepo    db.IUserRepository
	ProductRepo db.IProductRepository
	OrderRepo   db.IOrderRepository
	ReportRepo  db.IReportRepository
	CartRepo    redisrepo.ICartRepository

	AuthService    service.IAuthService
	ProductService service.IProductService
	CartService    service.ICartService
	OrderService   service.IOrderService
	ReportService  service.IReportService
	MailService    service.IMailService

	Server *api.Server
}

func NewApplicationContext(cf *config.Config, logger *zerolog.Logger) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf:     cf,
		Logger: logger,
	}

	err := app.Init()
	if err != nil {
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	err := app.setUpDbConn()
	if err != nil {
		return err
	}
	err = app.setUpRedis()
	if err != nil {
		return err
	}
	err = app.setUpTokenMaker()
	if err != nil {
		return err
	}
	app.setUpRepos()
	app.setUpKafka()
	app.setUpServices()
	app.setUpServer()
	return nil
}

func (app *ApplicationContext) setUpDbConn() error {
	log.Printf("Start setup db conn")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return fmt.Errorf("failed to connect db: %w", err)
	}
	app.DbConn = conn
	app.DbDao = db.NewDbDao(conn)

	err = app.DbDao.InitMigrate()
	if err != nil {
		return fmt.Errorf("failed to migrate db: %w", err)
	}
	log.Printf("Finish setup db conn")
	return nil
}

func (app *ApplicationContext) setUpRedis() error {
	log.Printf("Start setup redis")
	app.RedisClient = redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPassword,
	})
	if err := app.RedisClient.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("failed to connect redis: %w", err)
	}
	log.Printf("Finish setup redis")
	return nil
}

func (app *ApplicationContext) setUpTokenMaker() error {
	maker, err := token.NewJWTMaker(app.Cf.JwtSecret)
	if err != nil {
		return fmt.Errorf("failed to create token maker: %w", err)
	}
	app.TokenMaker = maker
	return nil
}

func (app *ApplicationContext) setUpKafka() {
	log.Printf("Start setup kafka")
	brokers := strings.Split(app.Cf.KafkaBrokers, ",")
	app.Producer = event.NewProducer(brokers, app.Cf.KafkaTopic, app.Logger)
	app.Projector = event.NewProjector(brokers, app.Cf.KafkaTopic, "shop-backend-projector", app.ReportRepo, app.Logger)
	log.Printf("Finish setup kafka")
}

func (app *ApplicationContext) setUpRepos() {
	app.UserRepo = db.NewUserRepo(app.DbDao)
	app.ProductRepo = db.NewProductRepo(app.DbDao)
	app.OrderRepo = db.NewOrderRepo(app.DbDao)
	app.ReportRepo = db.NewReportRepo(app.DbDao)
	app.CartRepo = redisrepo.NewCartRepo(app.RedisClient)
}

func (app *ApplicationContext) setUpServices() {
	app.MailService = service.NewMailService(app.Cf.SmtpHost, app.Cf.SmtpPort, app.Cf.EmailAccount, app.Cf.SmtpAuthKey)
	app.AuthService = service.NewAuthService(app.UserRepo, app.TokenMaker, app.Producer, app.Logger)
	app.ProductService = service.NewProductService(app.ProductRepo)
	app.CartService = service.NewCartService(app.CartRepo, app.ProductRepo)
	app.OrderService = service.NewOrderService(app.OrderRepo, app.ProductRepo, app.UserRepo, app.CartRepo, app.Producer, app.MailService, app.Logger)
	app.ReportService = service.NewReportService(app.OrderRepo, app.UserRepo, app.ProductRepo, app.ReportRepo)
}

func (app *ApplicationContext) setUpServer() {
	if app.Cf.UploadDir != "" {
		if err := os.MkdirAll(app.Cf.UploadDir, 0o755); err != nil {
			app.Logger.Warn().Err(err).Str("dir", app.Cf.UploadDir).Msg("failed to create upload dir")
		}
	}
	app.Server = api.NewServer(
		handler.NewAuthHandler(app.AuthService),
		handler.NewProductHandler(app.ProductService, app.Cf.UploadDir),
		handler.NewCartHandler(app.CartService),
		handler.NewOrderHandler(app.OrderService),
		handler.NewAdminHandler(app.AuthService, app.ReportService),
	)
}

// Shutdown 依序釋放外部資源
func (app *ApplicationContext) Shutdown() {
	if app.Projector != nil {
		if err := app.Projector.Close(); err != nil {
			app.Logger.Error().Err(err).Msg("failed to close projector")
		}
	}
	if app.Producer != nil {
		if err := app.Producer.Close(); err != nil {
			app.Logger.Error().Err(err).Msg("failed to close kafka producer")
		}
	}
	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			app.Logger.Error().Err(err).Msg("failed to close redis client")
		}
	}
	if app.DbConn != nil {
		sqlDB, err := app.DbConn.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}
