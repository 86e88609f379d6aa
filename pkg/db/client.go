package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/warmpaws/warmpaws-backend/pkg/config"
)

// Client owns the gorm handle and the pool settings behind it.
type Client struct {
	gdb *gorm.DB
}

// Connect opens the postgres pool described by cfg.
func Connect(cfg config.DB) (*Client, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrapping sql pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifeMins) * time.Minute)

	return &Client{gdb: gdb}, nil
}

// FromGorm wraps an existing gorm handle. Tests use this with sqlite.
func FromGorm(gdb *gorm.DB) *Client {
	return &Client{gdb: gdb}
}

// Gorm exposes the underlying handle for repositories.
func (c *Client) Gorm() *gorm.DB {
	return c.gdb
}

// Ping verifies connectivity within the context deadline.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Transaction runs fn atomically, rolling back on error.
func (c *Client) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return c.gdb.WithContext(ctx).Transaction(fn)
}

// Close drains the pool.
func (c *Client) Close() error {
	sqlDB, err := c.gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
