package ports

import (
	"context"
	"time"

	"github.com/estatehub/realty-platform/internal/core/domain"
)

// CreateTaskInput carries the fields accepted when adding a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    int
	DueDate     *time.Time
}

// UpdateTaskInput applies partial updates; nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *int
	IsDone      *bool
	DueDate     *time.Time
	ClearDue    bool
}

// ProjectRepository persists projects with their embedded tasks,
// comments and members.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
	FindByTaskID(ctx context.Context, taskID int64) (*domain.Project, error)
	// NextTaskID reserves a task id unique across all projects, so
	// task routes can address a task without naming its project.
	NextTaskID(ctx context.Context) (int64, error)
}

// ProjectService defines the internal work-tracking use-cases.
type ProjectService interface {
	CreateProject(ctx context.Context, name string, ownerID int64) (*domain.Project, error)
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	ListProjects(ctx context.Context, userID int64) ([]domain.Project, error)
	DeleteProject(ctx context.Context, id, callerID int64) error

	CreateTask(ctx context.Context, projectID int64, in CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, taskID int64) (*domain.Task, error)
	UpdateTask(ctx context.Context, taskID int64, in UpdateTaskInput) (*domain.Task, error)
	ToggleTask(ctx context.Context, taskID int64) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID int64) error

	CreateComment(ctx context.Context, taskID, userID int64, body string) (*domain.Comment, error)
}
