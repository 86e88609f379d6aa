package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/warmpaws/warmpaws-backend/pkg/config"
	"github.com/warmpaws/warmpaws-backend/pkg/env"
	"github.com/warmpaws/warmpaws-backend/pkg/migrate"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	command := "up"
	if len(args) > 0 {
		command = args[0]
	}

	if err := env.Load(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	sqlDB, err := sql.Open("pgx", cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("opening postgres: %w", err)
	}
	defer sqlDB.Close()

	ctx := context.Background()
	switch command {
	case "up":
		return migrate.Up(ctx, sqlDB)
	case "down":
		return migrate.Down(ctx, sqlDB)
	case "status":
		return migrate.Status(ctx, sqlDB)
	default:
		return fmt.Errorf("unknown command %q (want up, down or status)", command)
	}
}
