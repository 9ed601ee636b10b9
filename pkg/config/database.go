package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	connectTimeout  = 10 * time.Second
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxIdleTime = 5 * time.Minute
)

// DB holds the board's relational store and the notification document store.
type DB struct {
	Postgres      *gorm.DB
	Mongo         *mongo.Client
	Notifications *mongo.Database
}

// InitDB opens both stores and verifies them with a ping bounded by connectTimeout.
func InitDB(ctx context.Context, cfg *Config) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pg, err := openPostgres(ctx, cfg.PostgresConnStr, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	client, err := openMongo(ctx, cfg.MongoURI)
	if err != nil {
		_ = closeGorm(pg)
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	return &DB{
		Postgres:      pg,
		Mongo:         client,
		Notifications: client.Database(cfg.MongoDatabase),
	}, nil
}

func openPostgres(ctx context.Context, dsn, env string) (*gorm.DB, error) {
	level := logger.Warn
	if env == "development" {
		level = logger.Info
	}

	// TranslateError maps driver codes onto gorm.ErrForeignKeyViolated and friends.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	log.Println("Connected to PostgreSQL")
	return db, nil
}

func openMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Println("Connected to MongoDB")
	return client, nil
}

func closeGorm(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Close releases both stores and reports every failure.
func (db *DB) Close(ctx context.Context) error {
	var errs []error
	if db.Postgres != nil {
		if err := closeGorm(db.Postgres); err != nil {
			errs = append(errs, fmt.Errorf("close postgres: %w", err))
		}
	}
	if db.Mongo != nil {
		if err := db.Mongo.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close mongo: %w", err))
		}
	}
	return errors.Join(errs...)
}
