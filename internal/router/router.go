// Package router assembles the gin engine: global middleware, the /api
// routes and the operational endpoints.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/JoyChela/Epidemiology/internal/auth"
	"github.com/JoyChela/Epidemiology/internal/config"
	"github.com/JoyChela/Epidemiology/internal/handlers"
	"github.com/JoyChela/Epidemiology/internal/middleware"
	"github.com/JoyChela/Epidemiology/internal/services"
)

// New builds the HTTP handler for the whole service.
func New(cfg *config.Config, db *gorm.DB, log zerolog.Logger) *gin.Engine {
	issuer := auth.NewIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	h := handlers.New(services.New(db, cfg), issuer, log)
	metrics := middleware.NewMetrics("tracker")

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		metrics.Middleware(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.Server.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.Actor(issuer, log),
	)

	r.GET("/health", health(db))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.POST("/programs", h.CreateProgram)
		api.GET("/programs", h.ListPrograms)
		api.GET("/programs/:id", h.GetProgram)
		api.PATCH("/programs/:id", h.UpdateProgram)
		api.DELETE("/programs/:id", h.DeleteProgram)

		api.POST("/clients", h.RegisterClient)
		api.GET("/clients", h.SearchClients)
		api.GET("/clients/:id", h.GetClient)
		api.DELETE("/clients/:id", h.DeleteClient)
		api.POST("/clients/:id/programs/:program_id", h.EnrollClient)
		api.GET("/clients/:id/programs", h.ListClientPrograms)

		api.POST("/enrollments", h.CreateEnrollment)
		api.GET("/enrollments", h.ListEnrollments)
		api.GET("/enrollments/:id", h.GetEnrollment)
		api.DELETE("/enrollments/:id", h.DeleteEnrollment)

		api.POST("/users", h.CreateUser)
		api.POST("/users/login", h.Login)
		api.GET("/users", h.ListUsers)
		api.GET("/users/:id", h.GetUser)
		api.DELETE("/users/:id", h.DeleteUser)

		api.GET("/stats", h.Stats)
	}
	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.String(http.StatusServiceUnavailable, "database unavailable")
			return
		}
		c.String(http.StatusOK, "ok")
	}
}
