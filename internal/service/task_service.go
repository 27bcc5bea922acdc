package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Manasa-Gp/task-management/internal/cache"
	dom "github.com/Manasa-Gp/task-management/internal/domain"
	"github.com/Manasa-Gp/task-management/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned when no task exists with the requested id. It is the
// only error callers should branch on; everything else is a storage failure.
var ErrNotFound = errors.New("task not found")

type TaskService struct {
	repo  repo.TaskRepo
	cache *cache.TaskCache
	sf    singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, c *cache.TaskCache) *TaskService {
	return &TaskService{repo: r, cache: c}
}

func (s *TaskService) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx)
	return created, nil
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Task{}, mapNoRows(err)
	}
	return t, nil
}

func (s *TaskService) List(ctx context.Context, f repo.ListFilter) ([]dom.Task, error) {
	if s.cache == nil {
		return s.repo.List(ctx, f)
	}
	key := filterKey(f)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetList(ctx, key); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.List(ctx, f)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetList(ctx, key, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Task), nil
}

// Patch applies only the supplied fields. A patch with no fields is a no-op
// that still refreshes updated_at.
func (s *TaskService) Patch(ctx context.Context, id int64, p repo.TaskPatch) (dom.Task, error) {
	if p.Title != nil {
		trimmed := strings.TrimSpace(*p.Title)
		p.Title = &trimmed
	}
	t, err := s.repo.Patch(ctx, id, p)
	if err != nil {
		return dom.Task{}, mapNoRows(err)
	}
	s.invalidateCache(ctx)
	return t, nil
}

// Replace overwrites every field of the task except id and created_at.
func (s *TaskService) Replace(ctx context.Context, id int64, t dom.Task) (dom.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	updated, err := s.repo.Replace(ctx, id, t)
	if err != nil {
		return dom.Task{}, mapNoRows(err)
	}
	s.invalidateCache(ctx)
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNoRows(err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *TaskService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}

func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// filterKey canonicalizes a ListFilter for cache and singleflight keys.
func filterKey(f repo.ListFilter) string {
	var b strings.Builder
	if f.Status != nil {
		b.WriteString("s=" + string(*f.Status))
	}
	b.WriteByte('|')
	if f.Priority != nil {
		b.WriteString("p=" + string(*f.Priority))
	}
	b.WriteByte('|')
	if f.Category != nil {
		b.WriteString("c=" + *f.Category)
	}
	b.WriteByte('|')
	b.WriteString(f.SortBy + "|" + f.Order)
	return b.String()
}
