package service

import (
	"context"
	"strings"
	"time"

	"github.com/estatehub/realty-platform/internal/core/domain"
	"github.com/estatehub/realty-platform/internal/core/ports"
)

// ProjectService implements the internal work-tracking use-cases.
type ProjectService struct {
	repo ports.ProjectRepository
}

func NewProjectService(repo ports.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) CreateProject(ctx context.Context, name string, ownerID int64) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.Create(ctx, &domain.Project{
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
		Tasks:     []domain.Task{},
		Members:   []domain.ProjectMember{},
	})
}

func (s *ProjectService) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) ListProjects(ctx context.Context, userID int64) ([]domain.Project, error) {
	return s.repo.ListForUser(ctx, userID)
}

// DeleteProject is restricted to the owner.
func (s *ProjectService) DeleteProject(ctx context.Context, id, callerID int64) error {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if project.OwnerID != callerID {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func (s *ProjectService) CreateTask(ctx context.Context, projectID int64, in ports.CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrInvalidInput
	}

	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.TaskTodo
	}
	priority := in.Priority
	if priority == 0 {
		priority = domain.PriorityMedium
	}

	taskID, err := s.repo.NextTaskID(ctx)
	if err != nil {
		return nil, err
	}

	task := domain.Task{
		ID:          taskID,
		ProjectID:   projectID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      status,
		Priority:    priority,
		DueDate:     in.DueDate,
		CreatedAt:   time.Now().UTC(),
		Comments:    []domain.Comment{},
	}
	project.Tasks = append(project.Tasks, task)
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *ProjectService) GetTask(ctx context.Context, taskID int64) (*domain.Task, error) {
	project, err := s.repo.FindByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	for i := range project.Tasks {
		if project.Tasks[i].ID == taskID {
			return &project.Tasks[i], nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (s *ProjectService) UpdateTask(ctx context.Context, taskID int64, in ports.UpdateTaskInput) (*domain.Task, error) {
	project, err := s.repo.FindByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var task *domain.Task
	for i := range project.Tasks {
		if project.Tasks[i].ID == taskID {
			task = &project.Tasks[i]
			break
		}
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.IsDone != nil {
		task.IsDone = *in.IsDone
	}
	if in.ClearDue {
		task.DueDate = nil
	} else if in.DueDate != nil {
		task.DueDate = in.DueDate
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	out := *task
	return &out, nil
}

func (s *ProjectService) ToggleTask(ctx context.Context, taskID int64) (*domain.Task, error) {
	project, err := s.repo.FindByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	for i := range project.Tasks {
		if project.Tasks[i].ID == taskID {
			project.Tasks[i].IsDone = !project.Tasks[i].IsDone
			if err := s.repo.Update(ctx, project); err != nil {
				return nil, err
			}
			out := project.Tasks[i]
			return &out, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (s *ProjectService) DeleteTask(ctx context.Context, taskID int64) error {
	project, err := s.repo.FindByTaskID(ctx, taskID)
	if err != nil {
		return err
	}
	for i := range project.Tasks {
		if project.Tasks[i].ID == taskID {
			project.Tasks = append(project.Tasks[:i], project.Tasks[i+1:]...)
			return s.repo.Update(ctx, project)
		}
	}
	return domain.ErrTaskNotFound
}

func (s *ProjectService) CreateComment(ctx context.Context, taskID, userID int64, body string) (*domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.ErrInvalidInput
	}

	project, err := s.repo.FindByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	for i := range project.Tasks {
		if project.Tasks[i].ID != taskID {
			continue
		}
		comment := domain.Comment{
			ID:        int64(len(project.Tasks[i].Comments) + 1),
			Body:      body,
			UserID:    userID,
			TaskID:    taskID,
			CreatedAt: time.Now().UTC(),
		}
		project.Tasks[i].Comments = append(project.Tasks[i].Comments, comment)
		if err := s.repo.Update(ctx, project); err != nil {
			return nil, err
		}
		return &comment, nil
	}
	return nil, domain.ErrTaskNotFound
}
