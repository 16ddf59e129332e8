package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoSim-25-26J-441/workdesk/config"
	"github.com/GoSim-25-26J-441/workdesk/internal/records/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DBOptions struct {
	DSN       string
	ConnectTO time.Duration
	PingTO    time.Duration
	MaxConns  int32
	MinConns  int32
}

func OpenDB(ctx context.Context, opt DBOptions) (*pgxpool.Pool, error) {
	if opt.DSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set")
	}
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 5 * time.Second
	}
	if opt.PingTO == 0 {
		opt.PingTO = 2 * time.Second
	}

	cfg, err := pgxpool.ParseConfig(opt.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if opt.MaxConns > 0 {
		cfg.MaxConns = opt.MaxConns
	}
	if opt.MinConns > 0 {
		cfg.MinConns = opt.MinConns
	}
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(cctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	pctx, pcancel := context.WithTimeout(ctx, opt.PingTO)
	defer pcancel()

	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return pool, nil
}

// Records is the storage behind the records API plus its shutdown hook.
// DB is nil when the in-memory repository is used.
type Records struct {
	Repo  repository.Repository
	DB    *repository.Postgres
	close func()
}

func (r *Records) Close() {
	if r.close != nil {
		r.close()
	}
}

// OpenRecords connects to PostgreSQL and applies the schema when a database
// is configured, and falls back to an in-memory repository otherwise.
func OpenRecords(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Records, error) {
	if !cfg.Configured() {
		logger.Warn("no database configured, records are kept in memory")
		return &Records{Repo: repository.NewMemory()}, nil
	}

	pool, err := OpenDB(ctx, DBOptions{
		DSN:      cfg.DatabaseURL(),
		MaxConns: int32(cfg.MaxConns),
		MinConns: int32(cfg.MinConns),
	})
	if err != nil {
		return nil, err
	}
	pg := repository.OpenPostgres(pool)
	if err := pg.Migrate(ctx); err != nil {
		_ = pg.Close()
		pool.Close()
		return nil, fmt.Errorf("failed to migrate records schema: %w", err)
	}
	logger.Info("records database ready", "host", cfg.Host, "name", cfg.Name)

	return &Records{
		Repo: pg,
		DB:   pg,
		close: func() {
			_ = pg.Close()
			pool.Close()
		},
	}, nil
}
