package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vlrfantasy/backend/internal/config"
	"github.com/vlrfantasy/backend/internal/infrastructure/repository/postgres"
	"github.com/vlrfantasy/backend/internal/interfaces/httpapi"
	"github.com/vlrfantasy/backend/internal/usecase"
)

// OpenDB connects to postgres with OTel query instrumentation.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.ConnectContext(ctx, "postgres", cfg.DBURL,
		otelsql.WithAttributes(attribute.String("db.name", dbNameFromURL(cfg.DBURL))),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return db, nil
}

func NewHTTPServer(cfg config.Config, db *sqlx.DB, logger *slog.Logger) (*http.Server, error) {
	playerRepo := postgres.NewPlayerRepository(db)
	statRepo := postgres.NewMatchStatRepository(db)

	statsSvc := usecase.NewStatsService(playerRepo, statRepo)

	handler := httpapi.NewHandler(statsSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
