package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"levelup/internal/auth"
	"levelup/internal/engine"
	"levelup/internal/server"
	"levelup/internal/storage"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, cfg, cleanup, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			svc := engine.NewService(db)
			authSvc := auth.NewService(storage.NewTokenRepo(db))
			srv := server.New(svc, authSvc, log)

			log.Info("listening", zap.String("addr", cfg.Addr), zap.String("db", cfg.DBPath))
			return srv.Router().Run(cfg.Addr)
		},
	}

	return cmd
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
