package http

import (
	"taskboard/internal/http/handlers"
	"taskboard/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, version string) {
	h := handlers.NewHandler(db)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	auth := middleware.Auth(h.Users)

	user := r.Group("/api/user")
	user.POST("/register", h.Register)
	user.POST("/login", h.Login)
	user.GET("/me", auth, h.Me)
	user.PUT("/profile", auth, h.UpdateProfile)
	user.PUT("/password", auth, h.ChangePassword)

	task := r.Group("/api/task")
	task.Use(auth)
	task.GET("", h.ListTasks)
	task.POST("", h.CreateTask)
	task.GET("/:id", h.GetTask)
	task.PUT("/:id", h.UpdateTask)
	task.DELETE("/:id", h.DeleteTask)
}
