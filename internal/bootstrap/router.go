package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/api/http/middleware"
	genealogyhttp "github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/http"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/service"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/logger"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
	Checks         []httpapi.Check
	Service        *service.GenealogyService
	Gatherer       prometheus.Gatherer
	Logger         *logger.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))

	origins := dep.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Checks...)
	healthHandler.RegisterRoutes(r)

	if dep.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(dep.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api/v1")
	if dep.RateLimit > 0 {
		api.Use(middleware.RateLimit(dep.RateLimit, dep.RateBurst))
	}

	h := genealogyhttp.New(dep.Service, dep.Logger)
	h.Register(api.Group("/genealogy"))
	h.RegisterExecution(api.Group("/execution"))

	return r
}
