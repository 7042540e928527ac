package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/noah-isme/class-scheduler-api/internal/repository"
	"github.com/noah-isme/class-scheduler-api/pkg/config"
	"github.com/noah-isme/class-scheduler-api/pkg/database"
	"github.com/noah-isme/class-scheduler-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	cli := &commandLine{
		users: repository.NewUserRepository(db),
		migrate: func(ctx context.Context, command string, args ...string) error {
			return database.RunMigrations(ctx, db.DB, command, args...)
		},
		readPassword: term.ReadPassword,
		out:          os.Stdout,
		logger:       logr,
	}
	if err := cli.run(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, errHelp) {
			logr.Error("command failed", zap.Error(err))
		}
		stop()
		os.Exit(1)
	}
}
