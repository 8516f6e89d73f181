package app

import (
	"database/sql"
	"fmt"
	"os"

	"go-absensi/internal/middleware"
	"go-absensi/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Config dibaca dari environment sekali saat proses start.
type Config struct {
	Port        string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string
	RedisAddr   string
	KafkaBroker string
	JWTSecret   string
}

func LoadConfig() Config {
	cfg := Config{
		Port:        getenv("PORT", "8080"),
		DBHost:      getenv("DB_HOST", "localhost"),
		DBUser:      getenv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getenv("DB_NAME", "absensi"),
		DBPort:      getenv("DB_PORT", "5432"),
		DBSSLMode:   getenv("DB_SSLMODE", "disable"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: getenv("KAFKA_BROKER", "localhost:9092"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// App memegang koneksi proses-lifetime. Dibuat sekali di main,
// ditutup lewat Close saat shutdown.
type App struct {
	Config Config
	DB     *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
	Router *gin.Engine
}

func Build(cfg Config) (*App, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	db, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	a := &App{
		Config: cfg,
		DB:     db,
		SQLDB:  sqlDB,
		Redis:  rdb,
		Router: router,
	}
	if err := a.registerModules(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			zap.L().Warn("close redis failed", zap.Error(err))
		}
	}
	if a.SQLDB != nil {
		if err := a.SQLDB.Close(); err != nil {
			zap.L().Warn("close database failed", zap.Error(err))
		}
	}
}
