package bootstrap

import (
	"time"

	httpapi "github.com/GoSim-25-26J-441/go-diag-sink/internal/api/http"
	"github.com/GoSim-25-26J-441/go-diag-sink/internal/api/http/middleware"
	diaghttp "github.com/GoSim-25-26J-441/go-diag-sink/internal/diagnostics/http"
	"github.com/GoSim-25-26J-441/go-diag-sink/internal/diagnostics/repository"
	"github.com/GoSim-25-26J-441/go-diag-sink/internal/diagnostics/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Console        *service.Console
	Redis          *redis.Client
	RedisChannel   string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.MetricsMiddleware())

	if len(dep.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  dep.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Content-Type", middleware.RequestIDHeader},
			ExposeHeaders: []string{middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	var (
		pinger    httpapi.Pinger
		publisher service.Publisher
		events    diaghttp.EventSource
	)
	if dep.Redis != nil {
		repo := repository.NewEventRepository(dep.Redis, dep.RedisChannel)
		publisher = repo
		events = repo
		pinger = redisPinger{client: dep.Redis}
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, pinger)
	healthHandler.RegisterRoutes(r)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ingest := service.NewIngestService(dep.Console, publisher)
	diaghttp.New(ingest, events).Register(r)

	return r
}
