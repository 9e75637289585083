package domain

import (
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the three allowed levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          int64      `json:"id" db:"id"`
	OwnerID     int64      `json:"owner" db:"owner_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Priority    Priority   `json:"priority" db:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty" db:"due_date"`
	Completed   bool       `json:"completed" db:"completed"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// CoerceCompleted normalizes the completed flag from a decoded JSON value.
// Clients send it as a bool, the number 1 or the string "yes" (any case);
// everything else counts as false. Applied on every write path so the rule
// cannot drift between create and update.
func CoerceCompleted(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "yes")
	case float64:
		return t == 1
	case int:
		return t == 1
	}
	return false
}
