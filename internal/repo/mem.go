package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	dom "github.com/Manasa-Gp/task-management/internal/domain"

	"github.com/jackc/pgx/v5"
)

// MemTaskRepo is an in-memory TaskRepo with the same observable semantics as
// PGTaskRepo, used by tests. Missing rows surface as pgx.ErrNoRows, mutations
// refresh UpdatedAt, and List honours ListFilter exactly like the SQL build.
type MemTaskRepo struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]dom.Task
}

func NewMemTaskRepo() *MemTaskRepo {
	return &MemTaskRepo{nextID: 1, tasks: make(map[int64]dom.Task)}
}

func (r *MemTaskRepo) Create(_ context.Context, t dom.Task) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	t.ID = r.nextID
	r.nextID++
	t.CreatedAt = now
	t.UpdatedAt = now
	r.tasks[t.ID] = t
	return t, nil
}

func (r *MemTaskRepo) GetByID(_ context.Context, id int64) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	return t, nil
}

func (r *MemTaskRepo) List(_ context.Context, f ListFilter) ([]dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := []dom.Task{}
	for _, t := range r.tasks {
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		if f.Priority != nil && t.Priority != *f.Priority {
			continue
		}
		if f.Category != nil && t.Category != *f.Category {
			continue
		}
		list = append(list, t)
	}
	sortTasks(list, f.SortBy, f.Order)
	return list, nil
}

func (r *MemTaskRepo) Patch(_ context.Context, id int64, p TaskPatch) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	t.UpdatedAt = time.Now().UTC()
	r.tasks[id] = t
	return t, nil
}

func (r *MemTaskRepo) Replace(_ context.Context, id int64, in dom.Task) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	t.Title = in.Title
	t.Description = in.Description
	t.Status = in.Status
	t.Priority = in.Priority
	t.Category = in.Category
	t.DueDate = in.DueDate
	t.UpdatedAt = time.Now().UTC()
	r.tasks[id] = t
	return t, nil
}

func (r *MemTaskRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tasks, id)
	return nil
}

func sortTasks(list []dom.Task, sortBy, order string) {
	desc := order == "desc"
	sort.Slice(list, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "due_date":
			less = list[i].DueDate.Before(list[j].DueDate)
		case "created_at":
			less = list[i].CreatedAt.Before(list[j].CreatedAt)
		case "updated_at":
			less = list[i].UpdatedAt.Before(list[j].UpdatedAt)
		default:
			return list[i].ID < list[j].ID
		}
		if desc {
			return !less && !equalKey(list[i], list[j], sortBy)
		}
		return less
	})
}

func equalKey(a, b dom.Task, sortBy string) bool {
	switch sortBy {
	case "due_date":
		return a.DueDate.Equal(b.DueDate)
	case "created_at":
		return a.CreatedAt.Equal(b.CreatedAt)
	case "updated_at":
		return a.UpdatedAt.Equal(b.UpdatedAt)
	}
	return false
}
