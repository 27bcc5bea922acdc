package service

import (
	"context"
	"testing"
	"time"

	dom "github.com/Manasa-Gp/task-management/internal/domain"
	"github.com/Manasa-Gp/task-management/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *TaskService {
	return NewTaskService(repo.NewMemTaskRepo(), nil)
}

func sampleTask() dom.Task {
	due, _ := time.Parse(dom.DateLayout, "2026-03-15")
	return dom.Task{
		Title:    "write report",
		Status:   dom.StatusPending,
		Priority: dom.PriorityMedium,
		Category: "work",
		DueDate:  due,
	}
}

func TestCreateTrimsTitle(t *testing.T) {
	s := newService()
	in := sampleTask()
	in.Title = "  write report  "
	created, err := s.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "write report", created.Title)
	assert.NotZero(t, created.ID)
}

func TestGetByIDMapsNotFound(t *testing.T) {
	s := newService()
	_, err := s.GetByID(context.Background(), 77)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPatchMapsNotFound(t *testing.T) {
	s := newService()
	_, err := s.Patch(context.Background(), 77, repo.TaskPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceMapsNotFound(t *testing.T) {
	s := newService()
	_, err := s.Replace(context.Background(), 77, sampleTask())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMapsNotFound(t *testing.T) {
	s := newService()
	assert.ErrorIs(t, s.Delete(context.Background(), 77), ErrNotFound)
}

func TestPatchTrimsTitle(t *testing.T) {
	ctx := context.Background()
	s := newService()
	created, err := s.Create(ctx, sampleTask())
	require.NoError(t, err)

	title := "  renamed  "
	patched, err := s.Patch(ctx, created.ID, repo.TaskPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", patched.Title)
}

func TestListWithoutCacheReadsThrough(t *testing.T) {
	ctx := context.Background()
	s := newService()
	_, err := s.Create(ctx, sampleTask())
	require.NoError(t, err)

	list, err := s.List(ctx, repo.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestFilterKeyCanonical(t *testing.T) {
	st := dom.StatusPending
	pr := dom.PriorityHigh
	cat := "work"

	assert.Equal(t, "||||", filterKey(repo.ListFilter{}))
	assert.Equal(t, "s=pending|p=high|c=work|due_date|asc", filterKey(repo.ListFilter{
		Status:   &st,
		Priority: &pr,
		Category: &cat,
		SortBy:   "due_date",
		Order:    "asc",
	}))
	// Distinct filters must never collide on a cache key.
	assert.NotEqual(t,
		filterKey(repo.ListFilter{Status: &st}),
		filterKey(repo.ListFilter{Priority: &pr}))
}
