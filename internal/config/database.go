package config

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/prefeitura-rio/app-login-gateway/internal/logging"
	"github.com/prefeitura-rio/app-login-gateway/internal/migrations"
	"github.com/prefeitura-rio/app-login-gateway/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	// DB is the PostgreSQL connection pool
	DB *sql.DB
	// Redis client
	Redis *redisclient.Client
)

// InitPostgres opens the PostgreSQL pool, verifies connectivity and applies
// pending schema migrations. Migrations run here, once, so no request ever
// executes DDL.
func InitPostgres() {
	db, err := sql.Open("postgres", AppConfig.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	db.SetMaxOpenConns(AppConfig.DatabaseMaxConns)
	db.SetMaxIdleConns(AppConfig.DatabaseMaxConns / 2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal(err)
	}

	if err := migrations.Run(db); err != nil {
		logging.Logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	DB = db

	logging.Logger.Info("connected to PostgreSQL",
		zap.String("dsn", maskDSN(AppConfig.DatabaseURL)),
	)
}

// InitRedis initializes the Redis connection
func InitRedis() {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         AppConfig.RedisURI,
		Password:     AppConfig.RedisPassword,
		DB:           AppConfig.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	// Wrap with traced client
	Redis = redisclient.NewClient(redisClient)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis.Ping(ctx).Err(); err != nil {
		logging.Logger.Error("failed to connect to Redis",
			zap.String("uri", AppConfig.RedisURI),
			zap.Error(err))
		return
	}

	logging.Logger.Info("connected to Redis",
		zap.String("uri", AppConfig.RedisURI))
}

// maskDSN masks credentials in a PostgreSQL connection string
func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at == -1 {
		return dsn
	}
	return "postgres://****:****@" + dsn[at+1:]
}
