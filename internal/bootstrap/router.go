package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/GoSim-25-26J-441/sitebuilder-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/api/http/routes"
	projecthttp "github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/http"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Driver      string
	// Storage may be nil for local drivers.
	Storage     httpapi.Pinger
	Store       *service.Store
	Templates   projecthttp.Templates
	CORSOrigins []string
	RateRPS     float64
	RateBurst   int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Driver, dep.Storage)
	healthHandler.RegisterRoutes(r)

	routes.RegisterV1(r, routes.V1Deps{
		Store:     dep.Store,
		Templates: dep.Templates,
		RateRPS:   dep.RateRPS,
		RateBurst: dep.RateBurst,
	})

	return r
}

// corsConfig allows any origin (without credentials) when origins is empty.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
