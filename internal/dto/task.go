package dto

import "time"

// CreateTaskRequest is the JSON body for POST /api/tasks and PUT /api/tasks/{id}.
// PUT reuses it because a full replace requires every field, same as creation.
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"required,oneof=pending in_progress completed"`
	Priority    string `json:"priority" binding:"required,oneof=low medium high"`
	Category    string `json:"category" binding:"required"`
	DueDate     string `json:"due_date" binding:"required,len=10,datetime=2006-01-02"`
}

// UpdateTaskRequest is the JSON body for PATCH /api/tasks/{id}.
// nil = leave the field untouched; every present field is validated independently.
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category    *string `json:"category"`
	DueDate     *string `json:"due_date" binding:"omitempty,len=10,datetime=2006-01-02"`
}

// ListTasksQuery binds the GET /api/tasks query string. Out-of-enum values
// are a validation failure, never silently ignored.
type ListTasksQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Priority string `form:"priority" binding:"omitempty,oneof=low medium high"`
	Category string `form:"category"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=due_date created_at updated_at"`
	Order    string `form:"order" binding:"omitempty,oneof=asc desc"`
}

type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Category    string    `json:"category"`
	DueDate     string    `json:"due_date"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
