package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"freedesk/config"
	_ "freedesk/docs"
	"freedesk/internal/billing"
	"freedesk/internal/events"
	"freedesk/internal/repository"
	"freedesk/internal/service"
	"freedesk/internal/storage"
	"freedesk/internal/transport/rest"
	"freedesk/pkg/database"
	"freedesk/pkg/logger"
	"freedesk/pkg/tracing"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title FreeDesk API
// @version 1.0
// @description API записи клиентов к фрилансеру и учета рабочего времени

// @contact.name API Support
// @contact.email support@freedesk.local

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Environment, cfg.LogLevel, zap.String("service", cfg.Name))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	shutdownTracing, err := tracing.Setup(ctx, cfg.OTel, cfg.Name, cfg.Version)
	if err != nil {
		log.Fatal("Не удалось инициализировать трассировку", zap.Error(err))
	}

	db, err := database.NewPostgresDB(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}
	defer db.Close()

	log.Info("Запуск миграций базы данных")
	if err := database.RunMigrations(ctx, db, "./migrations", log); err != nil {
		log.Fatal("Ошибка при выполнении миграций", zap.Error(err))
	}
	log.Info("Миграции успешно выполнены")

	sqlDB := database.NewSQLDB(db)
	defer sqlDB.Close()

	var fileStorage storage.FileStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3, log)
		if err != nil {
			log.Fatal("Не удалось инициализировать S3 хранилище", zap.Error(err))
		}
		fileStorage = s3Storage
		log.Info("S3 хранилище успешно инициализировано", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("S3 хранилище не настроено, выгрузка агенды будет недоступна")
	}

	repos := repository.NewRepositories(db, sqlDB)

	var invoiceGate service.InvoiceGate
	if cfg.Billing.InvoiceSource == "stripe" {
		stripeGate, err := billing.NewStripeGate(cfg.Billing.StripeSecretKey, repos.Client, log)
		if err != nil {
			log.Fatal("Не удалось инициализировать Stripe", zap.Error(err))
		}
		invoiceGate = stripeGate
		log.Info("Неоплаченные счета проверяются через Stripe")
	}

	publisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)

	services := service.NewServices(service.Deps{
		Repos:       repos,
		Logger:      log,
		Config:      cfg,
		FileStorage: fileStorage,
		Events:      publisher,
		InvoiceGate: invoiceGate,
	})

	if err := services.Auth.EnsureFreelancer(ctx, cfg.Freelancer); err != nil {
		log.Fatal("Не удалось создать учетную запись фрилансера", zap.Error(err))
	}

	var (
		limiter rest.RateLimiter
		rdb     *redis.Client
	)
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = rest.NewRedisRateLimiter(rdb, cfg.RateLimit.Bookings, cfg.RateLimit.Window, cfg.Name)
		log.Info("Ограничение запросов через Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		limiter = rest.NewMemoryRateLimiter(cfg.RateLimit.Bookings, cfg.RateLimit.Window)
	}

	handler := rest.NewHandler(services, log, cfg, limiter)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        otelhttp.NewHandler(router, cfg.Name),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	log.Info("Сервер запущен", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Выключение сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Ошибка при остановке сервера", zap.Error(err))
	}

	if err := publisher.Close(); err != nil {
		log.Error("Ошибка при закрытии публикатора событий", zap.Error(err))
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error("Ошибка при закрытии Redis", zap.Error(err))
		}
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Ошибка при остановке трассировки", zap.Error(err))
	}

	log.Info("Сервер успешно остановлен")
}
