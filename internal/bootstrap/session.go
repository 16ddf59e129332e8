package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoSim-25-26J-441/workdesk/config"
	"github.com/GoSim-25-26J-441/workdesk/internal/cache"
	"github.com/GoSim-25-26J-441/workdesk/internal/gateway"
	"github.com/GoSim-25-26J-441/workdesk/internal/service"
	"github.com/GoSim-25-26J-441/workdesk/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

// Session is a wired client: local cache, records API gateway, state
// container and the service on top of them.
type Session struct {
	Service *service.Service
	Store   *store.Container
	Gateway *gateway.Client
	cache   *cache.Cache
}

// OpenSession builds a client session from cfg. reg may be nil to skip
// gateway metrics. The caller decides when to Load.
func OpenSession(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*Session, error) {
	backend, err := cache.Open(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s cache: %w", cfg.Cache.Backend, err)
	}
	c := cache.New(backend, logger)

	opts := []gateway.Option{
		gateway.WithTimeout(cfg.Gateway.Timeout),
		gateway.WithRateLimit(cfg.Gateway.RateLimit, cfg.Gateway.Burst),
	}
	if cfg.Gateway.Token != "" {
		opts = append(opts, gateway.WithToken(cfg.Gateway.Token))
	}
	if reg != nil {
		opts = append(opts, gateway.WithMetrics(reg))
	}
	gw := gateway.New(cfg.Gateway.BaseURL, opts...)

	storeOpts := []store.ContainerOption{store.WithLogger(logger)}
	if cfg.Store.WorkspaceMode == config.WorkspaceModeRemote {
		storeOpts = append(storeOpts, store.WithRemoteWorkspaces())
	}
	state := store.NewContainer(ctx, c, storeOpts...)

	svc := service.New(gw, state,
		service.WithLogger(logger),
		service.WithPersistGeneratedTasks(cfg.Store.PersistGeneratedTasks),
		service.WithDuplicateConcurrency(cfg.Store.DuplicateConcurrency),
	)

	return &Session{Service: svc, Store: state, Gateway: gw, cache: c}, nil
}

func (s *Session) Close() error {
	return s.cache.Close()
}
