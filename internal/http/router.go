package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/voltguard/backend/internal/config"
	"github.com/voltguard/backend/internal/db"
	"github.com/voltguard/backend/internal/geocode"
	"github.com/voltguard/backend/internal/http/handlers"
	"github.com/voltguard/backend/internal/http/middleware"
	"github.com/voltguard/backend/internal/ratelimit"
	"github.com/voltguard/backend/internal/service"

	_ "github.com/voltguard/backend/docs"
)

func Router(cfg config.Config, store *db.Store, roster *service.Roster, geocoder geocode.Geocoder, limiter ratelimit.RateLimiter, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:           store,
		Roster:          roster,
		Geocoder:        geocoder,
		Validator:       validator.New(),
		Logger:          logger,
		CampusName:      cfg.CampusName,
		RecencyWindow:   cfg.RecencyWindow,
		HeatmapWindow:   cfg.HeatmapWindow,
		DuplicateWindow: cfg.DuplicateWindow,
	}

	r.GET("/healthz", h.Healthz)

	limitCfg := ratelimit.Config{
		RequestsPerMinute: cfg.SubmissionsPerMinute,
		RequestsPerHour:   cfg.SubmissionsPerHour,
	}

	api := r.Group("/api")
	{
		api.GET("/incidents", h.IncidentsList)
		api.POST("/incidents", middleware.SubmissionLimit(limiter, limitCfg, logger), h.CreateIncident)
		api.GET("/incidents/:id", h.IncidentDetails)
		api.PUT("/incidents/:id/status", h.UpdateIncidentStatus)
		api.GET("/predictions", h.Predictions)
		api.GET("/heatmap", h.Heatmap)
		api.GET("/analytics/trends", h.Trends)
		api.GET("/analytics/aging", h.Aging)
		api.GET("/technicians", h.TechniciansList)
		api.PUT("/technicians/:id/availability", h.SetTechnicianAvailability)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/seed", h.Seed)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
