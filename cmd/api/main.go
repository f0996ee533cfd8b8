package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	accountrepo "github.com/estately/service-listing-go/internal/account/repo"
	"github.com/estately/service-listing-go/internal/auth"
	categoryrepo "github.com/estately/service-listing-go/internal/category/repo"
	favoriterepo "github.com/estately/service-listing-go/internal/favorite/repo"
	listingrepo "github.com/estately/service-listing-go/internal/listing/repo"
	messagerepo "github.com/estately/service-listing-go/internal/message/repo"
	officerepo "github.com/estately/service-listing-go/internal/office/repo"
	"github.com/estately/service-listing-go/internal/router"
	"github.com/estately/service-listing-go/pkg/database"
	"github.com/estately/service-listing-go/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting service-listing-go")

	// init db
	cfg := database.ConfigFromEnv()
	sqlDB, err := database.Connect(cfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer sqlDB.Close()

	// wrap with sqlx for convenience in repos/services
	sqlxDB := sqlx.NewDb(sqlDB, cfg.Driver)
	defer sqlxDB.Close()

	// idempotent schema setup; the favorites compound unique index lives here
	setupCtx, cancelSetup := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelSetup()
	for _, ensure := range []func(context.Context) error{
		accountrepo.NewAccountRepo(sqlxDB).EnsureSchema,
		listingrepo.NewPropertyRepo(sqlxDB).EnsureSchema,
		categoryrepo.NewCategoryRepo(sqlxDB).EnsureSchema,
		officerepo.NewOfficeRepo(sqlxDB).EnsureSchema,
		messagerepo.NewMessageRepo(sqlxDB).EnsureSchema,
		favoriterepo.NewFavoriteRepo(sqlxDB).EnsureSchema,
	} {
		if err := ensure(setupCtx); err != nil {
			sugar.Fatalf("schema setup: %v", err)
		}
	}

	secret, ttl := auth.TokenConfigFromEnv()
	issuer := auth.NewTokenIssuer(secret, ttl)

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sugar.Info("service is running; press Ctrl+C to stop")

	// mount http server
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:3003"
	}
	handler := router.RegisterRoutes(sugar, sqlxDB, issuer)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// run server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// ping db once more
	if err := sqlDB.PingContext(doneCtx); err != nil {
		sugar.Warnf("db ping on shutdown failed: %v", err)
	}

	// shutdown http server
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
