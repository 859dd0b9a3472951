package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"

	"github.com/mkravets/blog-api/config"
	"github.com/mkravets/blog-api/internal/auth"
	"github.com/mkravets/blog-api/internal/blog"
	"github.com/mkravets/blog-api/internal/db"
	"github.com/mkravets/blog-api/internal/rest"
	"github.com/mkravets/blog-api/internal/rpc"
	"github.com/mkravets/blog-api/internal/storage"
)

type App struct {
	DB     *db.Repository
	Logger *slog.Logger
	Echo   *echo.Echo
	Config *config.Config
}

func New(ctx context.Context, cfg *config.Config, dbConnect *pg.DB, logger *slog.Logger) (*App, error) {
	database := db.New(dbConnect)
	postManager := blog.NewPostManager(database)
	authenticator := auth.New(&cfg.Auth)

	uploads, err := storage.New(ctx, &cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("init storage gateway: %w", err)
	}

	handler := rest.NewHandler(postManager, authenticator, uploads, cfg, logger)
	e := handler.RegisterRoutes()

	rpcServer := rpc.New(logger, postManager)
	e.Any("/rpc", echo.WrapHandler(rpcServer))

	return &App{
		DB:     database,
		Logger: logger,
		Echo:   e,
		Config: cfg,
	}, nil
}

func (a *App) Run(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	return a.Echo.Start(addr)
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
