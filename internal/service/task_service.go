package service

import (
	"context"
	"fmt"

	"github.com/Shriramtantry/task-manager/internal/models"
	"github.com/Shriramtantry/task-manager/internal/repository"
)

type TaskService struct {
	taskRepo repository.TaskRepo
	activity Recorder
}

func NewTaskService(taskRepo repository.TaskRepo, activity Recorder) *TaskService {
	return &TaskService{taskRepo: taskRepo, activity: activity}
}

// Create stores a new, not yet completed task. The owner id is passed through
// unchecked.
func (s *TaskService) Create(ctx context.Context, t models.Task) (int, error) {
	t.Completed = false
	id, err := s.taskRepo.Create(ctx, t)
	if err != nil {
		return 0, newError(KindPersistence, "tasks.create", err)
	}

	s.activity.Record(ctx, models.Activity{
		Type:     models.ActivityTaskCreated,
		UserID:   t.UserID,
		Message:  "task created",
		Metadata: map[string]int{"task_id": id},
	})
	return id, nil
}

func (s *TaskService) ListByUser(ctx context.Context, userID int) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, newError(KindPersistence, "tasks.list", err)
	}
	return tasks, nil
}

// Delete removes the task; a missing id yields ErrTaskNotFound.
func (s *TaskService) Delete(ctx context.Context, id int) error {
	const op = "tasks.delete"

	owner, deleted, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		return newError(KindPersistence, op, err)
	}
	if !deleted {
		return newError(KindNotFound, op, fmt.Errorf("task %d: %w", id, ErrTaskNotFound))
	}

	s.activity.Record(ctx, models.Activity{
		Type:     models.ActivityTaskDeleted,
		UserID:   owner,
		Message:  "task deleted",
		Metadata: map[string]int{"task_id": id},
	})
	return nil
}
