package bootstrap

import (
	"log/slog"
	"slices"
	"time"

	httpapi "github.com/GoSim-25-26J-441/workdesk/internal/api/http"
	"github.com/GoSim-25-26J-441/workdesk/internal/api/http/middleware"
	recordshttp "github.com/GoSim-25-26J-441/workdesk/internal/records/http"
	"github.com/GoSim-25-26J-441/workdesk/internal/records/repository"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	Repo        repository.Repository
	DB          httpapi.Pinger // nil disables the database probe
	Registry    *prometheus.Registry
	Logger      *slog.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	logger := dep.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reg := dep.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))
	r.Use(middleware.RequestIDMiddleware(logger))
	r.Use(middleware.NewHTTPMetrics(reg).Handler())

	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB).RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	api := r.Group("/api")
	recordshttp.Register(api, dep.Repo, logger)

	return r
}

// corsConfig allows any origin, without credentials, for an empty list or "*".
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
