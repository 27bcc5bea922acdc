package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	dom "github.com/Manasa-Gp/task-management/internal/domain"
	"github.com/Manasa-Gp/task-management/internal/dto"
	"github.com/Manasa-Gp/task-management/internal/repo"
	"github.com/Manasa-Gp/task-management/internal/service"

	"github.com/gin-gonic/gin"
)

// listParams is the closed set of query parameters GET /api/tasks accepts.
// Anything else is a validation failure, not silently ignored.
var listParams = map[string]struct{}{
	"status":   {},
	"priority": {},
	"category": {},
	"sort_by":  {},
	"order":    {},
}

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.TaskResponse
// @Failure      422   {object}  handlers.ValidationErrorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}
	t, err := h.svc.Create(c.Request.Context(), taskFromCreate(req))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskToResponse(t))
}

// List godoc
// @Summary      List tasks with optional filters and sorting
// @Tags         tasks
// @Produce      json
// @Param        status    query  string  false  "Filter by status"    Enums(pending, in_progress, completed)
// @Param        priority  query  string  false  "Filter by priority"  Enums(low, medium, high)
// @Param        category  query  string  false  "Filter by category (exact match)"
// @Param        sort_by   query  string  false  "Sort field"          Enums(due_date, created_at, updated_at)
// @Param        order     query  string  false  "Sort direction"      Enums(asc, desc)
// @Success      200  {array}   dto.TaskResponse
// @Failure      422  {object}  handlers.ValidationErrorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	for k := range c.Request.URL.Query() {
		if _, ok := listParams[k]; !ok {
			c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{
				Error:  "validation failed",
				Fields: []FieldError{{Field: k, Reason: "unknown query parameter"}},
			})
			return
		}
	}
	var q dto.ListTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationFailed(c, err)
		return
	}
	list, err := h.svc.List(c.Request.Context(), filterFromQuery(q))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasksToResponses(list))
}

// GetByID godoc
// @Summary      Get a task by ID
// @Tags         tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  handlers.ValidationErrorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			notFound(c)
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Update godoc
// @Summary      Partially update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Fields to update"
// @Success      200   {object}  dto.TaskResponse
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  handlers.ValidationErrorResponse
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}
	t, err := h.svc.Patch(c.Request.Context(), id, patchFromUpdate(req))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			notFound(c)
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Replace godoc
// @Summary      Fully replace a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Task ID"
// @Param        body  body      dto.CreateTaskRequest  true  "Complete task body"
// @Success      200   {object}  dto.TaskResponse
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  handlers.ValidationErrorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Replace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}
	t, err := h.svc.Replace(c.Request.Context(), id, taskFromCreate(req))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			notFound(c)
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Param        id   path  int  true  "Task ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  handlers.ValidationErrorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			notFound(c)
			return
		}
		internalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: []FieldError{{Field: "id", Reason: "must be a positive integer"}},
		})
		return 0, false
	}
	return id, true
}

func taskFromCreate(req dto.CreateTaskRequest) dom.Task {
	// due_date already validated against the layout; a parse failure here
	// would be a programming error, not bad input.
	due, _ := time.Parse(dom.DateLayout, req.DueDate)
	return dom.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      dom.Status(req.Status),
		Priority:    dom.Priority(req.Priority),
		Category:    req.Category,
		DueDate:     due,
	}
}

func patchFromUpdate(req dto.UpdateTaskRequest) repo.TaskPatch {
	p := repo.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	if req.Status != nil {
		s := dom.Status(*req.Status)
		p.Status = &s
	}
	if req.Priority != nil {
		pr := dom.Priority(*req.Priority)
		p.Priority = &pr
	}
	if req.DueDate != nil {
		due, _ := time.Parse(dom.DateLayout, *req.DueDate)
		p.DueDate = &due
	}
	return p
}

func filterFromQuery(q dto.ListTasksQuery) repo.ListFilter {
	f := repo.ListFilter{SortBy: q.SortBy, Order: q.Order}
	if q.Status != "" {
		s := dom.Status(q.Status)
		f.Status = &s
	}
	if q.Priority != "" {
		p := dom.Priority(q.Priority)
		f.Priority = &p
	}
	if q.Category != "" {
		f.Category = &q.Category
	}
	return f
}

func taskToResponse(t dom.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Category:    t.Category,
		DueDate:     t.DueDate.Format(dom.DateLayout),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func tasksToResponses(list []dom.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i])
	}
	return out
}
