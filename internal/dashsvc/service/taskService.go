package service

import (
	"context"
	"time"

	"github.com/pulseboard/dash-services/internal/dashsvc/models"
)

// TaskService backs the task-board collaborator. Task items live next to the
// cards but stay outside the card/bundle model.
type TaskService struct {
	store TaskStore
}

func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	return s.store.ListTasks(ctx)
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, models.ErrNotFound
	}

	if patch.Status != nil {
		if !models.ValidTaskStatus(*patch.Status) {
			return nil, &models.ValidationError{Field: "status", Reason: "unrecognized task status"}
		}
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}
