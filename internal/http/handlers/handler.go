package handlers

import (
	"net/http"

	"taskboard/internal/domain"
	"taskboard/internal/http/middleware"
	"taskboard/internal/logger"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB    *pgxpool.Pool
	Users *repository.UserRepository
	Tasks *repository.TaskRepository
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{
		DB:    db,
		Users: repository.NewUserRepository(db),
		Tasks: repository.NewTaskRepository(db),
	}
}

// currentUser fetches the identity attached by the auth middleware.
func currentUser(c *gin.Context) (*domain.User, bool) {
	return middleware.CurrentUser(c)
}

// serverError logs the underlying cause and answers with a generic message.
// Details never reach the client.
func serverError(c *gin.Context, op string, err error) {
	logger.Error("handler failure", "op", op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

// userView is the client-facing projection of a user.
func userView(u *domain.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	}
}
