package handlers

import (
	"errors"
	"net/http"

	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": userView(user)})
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not found"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" {
		badRequest(c, "Enter valid name and email")
		return
	}

	ctx := c.Request.Context()
	updated, err := h.Users.UpdateProfile(ctx, user.ID, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			badRequest(c, "Email already in use")
			return
		}
		serverError(c, "profile.update", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": userView(updated)})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not found"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		badRequest(c, "All fields are required")
		return
	}
	if len(req.NewPassword) < minPasswordLen {
		badRequest(c, "Password must be at least 8 characters")
		return
	}

	ctx := c.Request.Context()
	hash, err := h.Users.GetPasswordHash(ctx, user.ID)
	if err != nil {
		serverError(c, "password.lookup", err)
		return
	}

	if !service.CheckPassword(req.CurrentPassword, hash) {
		badRequest(c, "Current password is incorrect")
		return
	}

	newHash, err := service.HashPassword(req.NewPassword)
	if err != nil {
		serverError(c, "password.hash", err)
		return
	}
	if err := h.Users.UpdatePassword(ctx, user.ID, newHash); err != nil {
		serverError(c, "password.update", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully"})
}
