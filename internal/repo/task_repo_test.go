package repo

import (
	"context"
	"testing"
	"time"

	dom "github.com/Manasa-Gp/task-management/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string              { return &s }
func statusPtr(s dom.Status) *dom.Status   { return &s }
func prioPtr(p dom.Priority) *dom.Priority { return &p }

func TestBuildListQueryNoFilters(t *testing.T) {
	query, args := buildListQuery(ListFilter{})
	assert.Equal(t, `SELECT `+taskColumns+` FROM tasks ORDER BY id ASC`, query)
	assert.Empty(t, args)
}

func TestBuildListQuerySingleFilter(t *testing.T) {
	query, args := buildListQuery(ListFilter{Status: statusPtr(dom.StatusPending)})
	assert.Equal(t, `SELECT `+taskColumns+` FROM tasks WHERE status = $1 ORDER BY id ASC`, query)
	assert.Equal(t, []any{"pending"}, args)
}

func TestBuildListQueryConjunctiveFilters(t *testing.T) {
	query, args := buildListQuery(ListFilter{
		Status:   statusPtr(dom.StatusPending),
		Priority: prioPtr(dom.PriorityHigh),
		Category: strPtr("work"),
	})
	assert.Equal(t,
		`SELECT `+taskColumns+` FROM tasks WHERE status = $1 AND priority = $2 AND category = $3 ORDER BY id ASC`,
		query)
	assert.Equal(t, []any{"pending", "high", "work"}, args)
}

func TestBuildListQuerySort(t *testing.T) {
	query, _ := buildListQuery(ListFilter{SortBy: "due_date", Order: "asc"})
	assert.Contains(t, query, "ORDER BY due_date ASC")

	query, _ = buildListQuery(ListFilter{SortBy: "updated_at", Order: "desc"})
	assert.Contains(t, query, "ORDER BY updated_at DESC")

	// Direction defaults to ascending.
	query, _ = buildListQuery(ListFilter{SortBy: "created_at"})
	assert.Contains(t, query, "ORDER BY created_at ASC")
}

func TestBuildListQueryUnknownSortFallsBack(t *testing.T) {
	// The handler validates sort_by; the builder still refuses to interpolate
	// anything outside the whitelist.
	query, _ := buildListQuery(ListFilter{SortBy: "id; DROP TABLE tasks"})
	assert.Contains(t, query, "ORDER BY id ASC")
	assert.NotContains(t, query, "DROP")
}

func TestBuildPatchQuerySubsetOfFields(t *testing.T) {
	st := dom.StatusCompleted
	query, args := buildPatchQuery(7, TaskPatch{Status: &st, Title: strPtr("new title")})
	assert.Equal(t,
		`UPDATE tasks SET title = $1, status = $2 WHERE id = $3 RETURNING `+taskColumns,
		query)
	assert.Equal(t, []any{"new title", "completed", int64(7)}, args)
}

func TestBuildPatchQueryNoFieldsTouchesRow(t *testing.T) {
	query, args := buildPatchQuery(3, TaskPatch{})
	assert.Equal(t,
		`UPDATE tasks SET updated_at = now() WHERE id = $1 RETURNING `+taskColumns,
		query)
	assert.Equal(t, []any{int64(3)}, args)
}

func newTask(title string, status dom.Status, prio dom.Priority, category, due string) dom.Task {
	d, _ := time.Parse(dom.DateLayout, due)
	return dom.Task{
		Title:    title,
		Status:   status,
		Priority: prio,
		Category: category,
		DueDate:  d,
	}
}

func TestMemRepoLifecycle(t *testing.T) {
	ctx := context.Background()
	r := NewMemTaskRepo()

	created, err := r.Create(ctx, newTask("a", dom.StatusPending, dom.PriorityLow, "work", "2026-03-01"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = r.GetByID(ctx, 42)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	require.NoError(t, r.Delete(ctx, created.ID))
	assert.ErrorIs(t, r.Delete(ctx, created.ID), pgx.ErrNoRows)
}

func TestMemRepoListFilterAndSort(t *testing.T) {
	ctx := context.Background()
	r := NewMemTaskRepo()
	for _, tk := range []dom.Task{
		newTask("a", dom.StatusPending, dom.PriorityHigh, "work", "2026-03-05"),
		newTask("b", dom.StatusPending, dom.PriorityLow, "work", "2026-03-01"),
		newTask("c", dom.StatusCompleted, dom.PriorityHigh, "home", "2026-03-03"),
		newTask("d", dom.StatusPending, dom.PriorityHigh, "home", "2026-03-02"),
	} {
		_, err := r.Create(ctx, tk)
		require.NoError(t, err)
	}

	list, err := r.List(ctx, ListFilter{
		Status:   statusPtr(dom.StatusPending),
		Priority: prioPtr(dom.PriorityHigh),
		SortBy:   "due_date",
		Order:    "asc",
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "d", list[0].Title)
	assert.Equal(t, "a", list[1].Title)

	list, err = r.List(ctx, ListFilter{SortBy: "due_date", Order: "desc"})
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "a", list[0].Title)

	// No sort key: stable id order.
	list, err = r.List(ctx, ListFilter{})
	require.NoError(t, err)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
}

func TestMemRepoPatchAppliesOnlySuppliedFields(t *testing.T) {
	ctx := context.Background()
	r := NewMemTaskRepo()
	created, err := r.Create(ctx, newTask("a", dom.StatusPending, dom.PriorityLow, "work", "2026-03-01"))
	require.NoError(t, err)

	st := dom.StatusCompleted
	patched, err := r.Patch(ctx, created.ID, TaskPatch{Status: &st})
	require.NoError(t, err)
	assert.Equal(t, dom.StatusCompleted, patched.Status)
	assert.Equal(t, created.Title, patched.Title)
	assert.Equal(t, created.Priority, patched.Priority)
	assert.Equal(t, created.DueDate, patched.DueDate)
	assert.True(t, created.CreatedAt.Equal(patched.CreatedAt))
	assert.False(t, patched.UpdatedAt.Before(created.UpdatedAt))
}
