package repository

import (
	"context"
	"errors"

	"taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrTaskNotFound covers both a missing task and a task owned by someone
// else. Callers cannot tell the two apart.
var ErrTaskNotFound = errors.New("task not found")

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO tasks (owner_id, title, description, priority, due_date, completed)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		t.OwnerID, t.Title, t.Description, t.Priority, t.DueDate, t.Completed,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, owner_id, title, description, priority, due_date, completed, created_at
		 FROM tasks
		 WHERE owner_id = $1
		 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]*domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Priority, &t.DueDate, &t.Completed, &t.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}

// GetByID matches on id and owner in a single lookup.
func (r *TaskRepository) GetByID(ctx context.Context, id, ownerID int64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx,
		`SELECT id, owner_id, title, description, priority, due_date, completed, created_at
		 FROM tasks
		 WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Priority, &t.DueDate, &t.Completed, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Update replaces the mutable fields of t. The owner column is never part of
// the SET list; it only appears in the WHERE clause.
func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks
		 SET title = $1, description = $2, priority = $3, due_date = $4, completed = $5
		 WHERE id = $6 AND owner_id = $7`,
		t.Title, t.Description, t.Priority, t.DueDate, t.Completed, t.ID, t.OwnerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, ownerID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}
