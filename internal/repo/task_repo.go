package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	dom "github.com/Manasa-Gp/task-management/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskPatch carries the fields of a partial update. nil = leave as is.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *dom.Status
	Priority    *dom.Priority
	Category    *string
	DueDate     *time.Time
}

// ListFilter restricts and orders a task listing. Predicate pointers are
// conjunctive exact matches; nil means no restriction. SortBy must be one of
// due_date, created_at, updated_at or empty for the stable default order.
type ListFilter struct {
	Status   *dom.Status
	Priority *dom.Priority
	Category *string
	SortBy   string
	Order    string // asc (default) or desc
}

// TaskRepo provides task persistence. Absent rows surface as pgx.ErrNoRows.
type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, id int64) (dom.Task, error)
	List(ctx context.Context, f ListFilter) ([]dom.Task, error)
	Patch(ctx context.Context, id int64, p TaskPatch) (dom.Task, error)
	Replace(ctx context.Context, id int64, t dom.Task) (dom.Task, error)
	Delete(ctx context.Context, id int64) error
}

const taskColumns = `id, title, description, status, priority, category, due_date, created_at, updated_at`

// PGTaskRepo implements TaskRepo with Postgres.
type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (title, description, status, priority, category, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns
	row := r.db.QueryRow(ctx, query,
		t.Title, t.Description, string(t.Status), string(t.Priority), t.Category, t.DueDate)
	return scanTask(row)
}

func (r *PGTaskRepo) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	row := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	return scanTask(row)
}

func (r *PGTaskRepo) List(ctx context.Context, f ListFilter) ([]dom.Task, error) {
	query, args := buildListQuery(f)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) Patch(ctx context.Context, id int64, p TaskPatch) (dom.Task, error) {
	query, args := buildPatchQuery(id, p)
	return scanTask(r.db.QueryRow(ctx, query, args...))
}

func (r *PGTaskRepo) Replace(ctx context.Context, id int64, t dom.Task) (dom.Task, error) {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5, category = $6, due_date = $7
		WHERE id = $1
		RETURNING ` + taskColumns
	row := r.db.QueryRow(ctx, query,
		id, t.Title, t.Description, string(t.Status), string(t.Priority), t.Category, t.DueDate)
	return scanTask(row)
}

func (r *PGTaskRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// buildListQuery turns a ListFilter into parameterized SQL. The sort column is
// taken from a fixed whitelist; when none is given the order falls back to id
// so listings are stable across calls.
func buildListQuery(f ListFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if f.Status != nil {
		add("status", string(*f.Status))
	}
	if f.Priority != nil {
		add("priority", string(*f.Priority))
	}
	if f.Category != nil {
		add("category", *f.Category)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	switch f.SortBy {
	case "due_date", "created_at", "updated_at":
		dir := "ASC"
		if f.Order == "desc" {
			dir = "DESC"
		}
		query += " ORDER BY " + f.SortBy + " " + dir
	default:
		query += " ORDER BY id ASC"
	}
	return query, args
}

// buildPatchQuery builds the dynamic UPDATE for a partial update. A patch with
// no fields still touches the row so the updated_at trigger fires.
func buildPatchQuery(id int64, p TaskPatch) (string, []any) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Status != nil {
		add("status", string(*p.Status))
	}
	if p.Priority != nil {
		add("priority", string(*p.Priority))
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.DueDate != nil {
		add("due_date", *p.DueDate)
	}
	if len(sets) == 0 {
		sets = append(sets, "updated_at = now()")
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), taskColumns)
	return query, args
}

func scanTask(row pgx.Row) (dom.Task, error) {
	var t dom.Task
	var status, priority string
	err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &priority,
		&t.Category, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return dom.Task{}, err
	}
	t.Status = dom.Status(status)
	t.Priority = dom.Priority(priority)
	return t, nil
}
