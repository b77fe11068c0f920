package repository

import (
	"context"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// UserRepository persists users.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// TaskRepository persists tasks. Every operation is scoped to an owner;
// implementations must never expose another owner's rows.
type TaskRepository interface {
	CreateTask(ctx context.Context, task *domain.Task) error
	GetTask(ctx context.Context, ownerID, taskID int64) (*domain.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID int64) error
	ListTasks(ctx context.Context, ownerID int64, q domain.TaskListQuery) ([]domain.Task, int, error)
}
