package domain

import (
	"errors"
	"time"
)

// TaskStatus is the workflow state of a project task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// Task priorities: 1 high, 2 medium, 3 low.
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

var ErrProjectNotFound = errors.New("project not found")
var ErrTaskNotFound = errors.New("task not found")

// Project groups the internal work of an agency team.
type Project struct {
	ID        int64           `json:"id" bson:"_id"`
	Name      string          `json:"name" bson:"name"`
	OwnerID   int64           `json:"owner_id" bson:"owner_id"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	Tasks     []Task          `json:"tasks" bson:"tasks"`
	Members   []ProjectMember `json:"members" bson:"members"`
}

// Task is a unit of work inside a project.
type Task struct {
	ID          int64      `json:"id" bson:"id"`
	ProjectID   int64      `json:"project_id" bson:"project_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Status      TaskStatus `json:"status" bson:"status"`
	Priority    int        `json:"priority" bson:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty" bson:"due_date,omitempty"`
	IsDone      bool       `json:"is_done" bson:"is_done"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	Comments    []Comment  `json:"comments" bson:"comments"`
}

// Comment is a note left on a task by a user.
type Comment struct {
	ID        int64     `json:"id" bson:"id"`
	Body      string    `json:"body" bson:"body"`
	UserID    int64     `json:"user_id" bson:"user_id"`
	TaskID    int64     `json:"task_id" bson:"task_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ProjectMember links a user from the auth service to a project.
type ProjectMember struct {
	ID        int64     `json:"id" bson:"id"`
	ProjectID int64     `json:"project_id" bson:"project_id"`
	UserID    int64     `json:"user_id" bson:"user_id"`
	Role      string    `json:"role" bson:"role"` // owner|member
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
