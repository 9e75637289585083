package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

// taskID parses the :id route parameter. A non-numeric id cannot match any
// task, so it collapses into the same not-found outcome.
func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   any        `json:"completed"`
}

func (h *Handler) CreateTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not found"})
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.Title == "" {
		badRequest(c, "Title is required")
		return
	}

	priority := domain.Priority(req.Priority)
	if req.Priority == "" {
		priority = domain.PriorityLow
	}
	if !priority.Valid() {
		badRequest(c, "Priority must be low, medium or high")
		return
	}

	// Owner always comes from the authenticated identity; an owner field in
	// the payload is not even decoded.
	task := &domain.Task{
		OwnerID:     user.ID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     req.DueDate,
		Completed:   domain.CoerceCompleted(req.Completed),
	}

	if err := h.Tasks.Create(c.Request.Context(), task); err != nil {
		serverError(c, "task.create", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Task created successfully",
		"task":    task,
	})
}

func (h *Handler) ListTasks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not found"})
		return
	}

	tasks, err := h.Tasks.ListByOwner(c.Request.Context(), user.ID)
	if err != nil {
		serverError(c, "task.list", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": tasks})
}

func (h *Handler) GetTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not found"})
		return
	}

	id, ok := taskID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
		return
	}

	task, err := h.Tasks.GetByID(c.Request.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
			return
		}
		serverError(c, "task.get", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   any        `json:"completed"`
}

func (h *Handler) UpdateTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not found"})
		return
	}

	id, ok := taskID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found or not authorized"})
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	ctx := c.Request.Context()
	task, err := h.Tasks.GetByID(ctx, id, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found or not authorized"})
			return
		}
		serverError(c, "task.update.lookup", err)
		return
	}

	// Partial merge: absent fields keep their stored values. Validation rules
	// apply again to whatever is supplied.
	if req.Title != nil {
		if *req.Title == "" {
			badRequest(c, "Title is required")
			return
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		if !p.Valid() {
			badRequest(c, "Priority must be low, medium or high")
			return
		}
		task.Priority = p
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Completed != nil {
		task.Completed = domain.CoerceCompleted(req.Completed)
	}

	if err := h.Tasks.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found or not authorized"})
			return
		}
		serverError(c, "task.update", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

func (h *Handler) DeleteTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not found"})
		return
	}

	id, ok := taskID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Action failed"})
		return
	}

	err := h.Tasks.Delete(c.Request.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Action failed"})
			return
		}
		serverError(c, "task.delete", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task deleted"})
}
