package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/pkg/config"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000
	defaultPageSize   = 50
)

// CreateInput encapsulates task creation attributes. The owner is never
// part of the input; it always comes from the resolved identity.
type CreateInput struct {
	Title       string
	Description *string
	IsCompleted bool
	DueDate     *time.Time
}

// Page is one window of a task listing. Total is the size of the whole
// filtered set, not the window.
type Page struct {
	Items  []domain.Task
	Total  int
	Limit  int
	Offset int
}

// Service orchestrates owner-scoped task operations.
type Service struct {
	tasks  repository.TaskRepository
	logger *slog.Logger
	cfg    config.APIConfig
}

// New returns a task service.
func New(tasks repository.TaskRepository, logger *slog.Logger, cfg config.APIConfig) Service {
	return Service{tasks: tasks, logger: logger, cfg: cfg}
}

// Create persists a new task for ownerID.
func (s Service) Create(ctx context.Context, ownerID int64, input CreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	task := &domain.Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: input.Description,
		IsCompleted: input.IsCompleted,
		DueDate:     input.DueDate,
	}
	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	s.logger.Info("task created", "task_id", task.ID, "owner_id", ownerID)
	return task, nil
}

// Get returns the task only when ownerID owns it.
func (s Service) Get(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	return s.tasks.GetTask(ctx, ownerID, taskID)
}

// Update applies a partial update. An empty patch returns the current
// task unchanged rather than an error.
func (s Service) Update(ctx context.Context, ownerID, taskID int64, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Title.Set && patch.Title.Valid {
		patch.Title.Value = strings.TrimSpace(patch.Title.Value)
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.tasks.GetTask(ctx, ownerID, taskID)
	}
	task, err := s.tasks.UpdateTask(ctx, ownerID, taskID, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info("task updated", "task_id", taskID, "owner_id", ownerID)
	return task, nil
}

// Delete removes the task when ownerID owns it.
func (s Service) Delete(ctx context.Context, ownerID, taskID int64) error {
	if err := s.tasks.DeleteTask(ctx, ownerID, taskID); err != nil {
		return err
	}
	s.logger.Info("task deleted", "task_id", taskID, "owner_id", ownerID)
	return nil
}

// List returns one page of the owner's tasks. Ordering defaults to
// created_at ascending; the page size defaults to 50 and is capped by
// configuration. The repository itself enforces no cap beyond what is
// passed here.
func (s Service) List(ctx context.Context, ownerID int64, q domain.TaskListQuery) (Page, error) {
	normalized, err := s.normalizeQuery(q)
	if err != nil {
		return Page{}, err
	}
	items, total, err := s.tasks.ListTasks(ctx, ownerID, normalized)
	if err != nil {
		return Page{}, err
	}
	return Page{Items: items, Total: total, Limit: normalized.Limit, Offset: normalized.Offset}, nil
}

func (s Service) normalizeQuery(q domain.TaskListQuery) (domain.TaskListQuery, error) {
	switch q.OrderBy {
	case "":
		q.OrderBy = domain.OrderByCreatedAt
	case domain.OrderByDueDate, domain.OrderByCreatedAt, domain.OrderByTitle:
	default:
		return q, fmt.Errorf("%w: order_by must be one of due_date, created_at, title", domain.ErrValidation)
	}
	switch strings.ToLower(q.OrderDir) {
	case "":
		q.OrderDir = domain.OrderAsc
	case domain.OrderAsc, domain.OrderDesc:
		q.OrderDir = strings.ToLower(q.OrderDir)
	default:
		return q, fmt.Errorf("%w: order_dir must be asc or desc", domain.ErrValidation)
	}
	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	if max := s.cfg.MaxPageSize; max > 0 && q.Limit > max {
		q.Limit = max
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q, nil
}

func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len(title) > maxTitleLen {
		return fmt.Errorf("%w: title must be at most %d characters", domain.ErrValidation, maxTitleLen)
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && len(*description) > maxDescriptionLen {
		return fmt.Errorf("%w: description must be at most %d characters", domain.ErrValidation, maxDescriptionLen)
	}
	return nil
}

func validatePatch(patch domain.TaskPatch) error {
	if patch.Title.Set {
		if !patch.Title.Valid {
			return fmt.Errorf("%w: title cannot be null", domain.ErrValidation)
		}
		if err := validateTitle(patch.Title.Value); err != nil {
			return err
		}
	}
	if patch.Description.Set && patch.Description.Valid {
		if len(patch.Description.Value) > maxDescriptionLen {
			return fmt.Errorf("%w: description must be at most %d characters", domain.ErrValidation, maxDescriptionLen)
		}
	}
	if patch.IsCompleted.Set && !patch.IsCompleted.Valid {
		return fmt.Errorf("%w: is_completed cannot be null", domain.ErrValidation)
	}
	return nil
}
