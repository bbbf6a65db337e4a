package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/api/http/middleware"
	projecthttp "github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/http"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/service"
)

type V1Deps struct {
	Store     *service.Store
	Templates projecthttp.Templates
	RateRPS   float64
	RateBurst int
}

// RegisterV1 mounts the site builder API under /api/v1.
func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(dep.RateRPS, dep.RateBurst))

	projecthttp.New(dep.Store, dep.Templates).Register(api)
}
