package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"wanderplan/cmd/fx/account_fx"
	"wanderplan/cmd/fx/config_fx"
	"wanderplan/cmd/fx/controllers_fx"
	"wanderplan/cmd/fx/db_fx"
	"wanderplan/cmd/fx/expense_fx"
	"wanderplan/cmd/fx/memcache_fx"
	"wanderplan/cmd/fx/metrics_fx"
	"wanderplan/cmd/fx/planner_fx"
	"wanderplan/cmd/fx/settings_fx"
	"wanderplan/cmd/fx/travel_plan_fx"
	"wanderplan/internal/config"
)

func main() {
	app := fx.New(
		config_fx.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		db_fx.Module,
		memcache_fx.Module,
		metrics_fx.Module,
		settings_fx.Module,
		planner_fx.Module,
		account_fx.Module,
		travel_plan_fx.Module,
		expense_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("Starting HTTP server", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
