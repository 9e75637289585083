package handlers

import (
	"errors"
	"net/http"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

const minPasswordLen = 8

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Enter valid email")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		badRequest(c, "All fields are required")
		return
	}
	if len(req.Password) < minPasswordLen {
		badRequest(c, "Password must be at least 8 characters")
		return
	}

	hash, err := service.HashPassword(req.Password)
	if err != nil {
		serverError(c, "register.hash", err)
		return
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	ctx := c.Request.Context()
	if err := h.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			badRequest(c, "User already exists")
			return
		}
		serverError(c, "register.create", err)
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		serverError(c, "register.token", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
		"user":    userView(user),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		badRequest(c, "All credentials are required")
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			badRequest(c, "User not found")
			return
		}
		serverError(c, "login.lookup", err)
		return
	}

	if !service.CheckPassword(req.Password, user.PasswordHash) {
		badRequest(c, "Wrong password")
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		serverError(c, "login.token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    userView(user),
	})
}
