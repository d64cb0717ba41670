package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pulseboard/dash-services/internal/dashsvc/models"
)

type TaskStore struct {
	db *pgxpool.Pool
}

func NewTaskStore(db *pgxpool.Pool) *TaskStore {
	return &TaskStore{db: db}
}

func (s *TaskStore) GetTask(ctx context.Context, id string) (*models.Task, error) {
	query := `
		SELECT id, title, status, priority, external_ref, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	task := &models.Task{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Status,
		&task.Priority,
		&task.ExternalRef,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // task not found
		}
		return nil, fmt.Errorf("failed to get task by id: %w", err)
	}

	return task, nil
}

func (s *TaskStore) ListTasks(ctx context.Context) ([]models.Task, error) {
	query := `
		SELECT id, title, status, priority, external_ref, created_at, updated_at
		FROM tasks
		ORDER BY priority DESC, created_at
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Status,
			&task.Priority,
			&task.ExternalRef,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read task rows: %w", err)
	}

	return tasks, nil
}

func (s *TaskStore) UpdateTask(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET status = $2, priority = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, task.ID, task.Status, task.Priority, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
