package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/repository"
)

const taskColumns = "id, owner_id, title, description, is_completed, due_date, created_at"

// CreateTask inserts a task. The id and creation time come back from the
// store and are written into task.
func (r *Repository) CreateTask(ctx context.Context, task *domain.Task) error {
	const query = `INSERT INTO tasks (owner_id, title, description, is_completed, due_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	row := r.pool.QueryRow(ctx, query, task.OwnerID, task.Title, task.Description, task.IsCompleted, task.DueDate)
	return row.Scan(&task.ID, &task.CreatedAt)
}

// GetTask fetches a task owned by ownerID. A task owned by anyone else is
// reported as not found.
func (r *Repository) GetTask(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = $1 AND owner_id = $2`, taskColumns)
	return scanTask(r.pool.QueryRow(ctx, query, taskID, ownerID))
}

// UpdateTask applies a partial update as a single conditional statement,
// so a patch can never race with itself across two round trips. Only the
// fields present in the patch are written; concurrent patches on disjoint
// fields both land.
func (r *Repository) UpdateTask(ctx context.Context, ownerID, taskID int64, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Empty() {
		return r.GetTask(ctx, ownerID, taskID)
	}
	query, args := buildTaskUpdate(ownerID, taskID, patch)
	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// DeleteTask removes a task owned by ownerID, reporting ErrNotFound when
// no such row existed for that owner.
func (r *Repository) DeleteTask(ctx context.Context, ownerID, taskID int64) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`
	tag, err := r.pool.Exec(ctx, query, taskID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListTasks returns one page of the owner's tasks plus the total size of
// the filtered set. The count query mirrors the filter predicate but not
// the pagination window.
func (r *Repository) ListTasks(ctx context.Context, ownerID int64, q domain.TaskListQuery) ([]domain.Task, int, error) {
	query, args := buildTaskList(ownerID, q)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.IsCompleted, &t.DueDate, &t.CreatedAt); err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs := buildTaskCount(ownerID, q)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.IsCompleted, &t.DueDate, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// orderColumns whitelists sortable columns; anything else falls back to
// created_at rather than reaching the SQL string.
var orderColumns = map[string]string{
	domain.OrderByDueDate:   "due_date",
	domain.OrderByCreatedAt: "created_at",
	domain.OrderByTitle:     "title",
}

func orderClause(q domain.TaskListQuery) string {
	column, ok := orderColumns[q.OrderBy]
	if !ok {
		column = "created_at"
	}
	dir := "ASC"
	if strings.EqualFold(q.OrderDir, domain.OrderDesc) {
		dir = "DESC"
	}
	if column == "due_date" {
		// NULL due dates sort after dated tasks in either direction; the
		// direction flag flips only the dated segment.
		return fmt.Sprintf("ORDER BY due_date IS NULL ASC, due_date %s, id ASC", dir)
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", column, dir)
}

func buildTaskList(ownerID int64, q domain.TaskListQuery) (string, []any) {
	var sb strings.Builder
	args := []any{ownerID}
	sb.WriteString("SELECT " + taskColumns + " FROM tasks WHERE owner_id = $1")
	if q.Completed != nil {
		args = append(args, *q.Completed)
		fmt.Fprintf(&sb, " AND is_completed = $%d", len(args))
	}
	sb.WriteString(" " + orderClause(q))
	args = append(args, q.Limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	args = append(args, q.Offset)
	fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	return sb.String(), args
}

func buildTaskCount(ownerID int64, q domain.TaskListQuery) (string, []any) {
	var sb strings.Builder
	args := []any{ownerID}
	sb.WriteString("SELECT COUNT(*) FROM tasks WHERE owner_id = $1")
	if q.Completed != nil {
		args = append(args, *q.Completed)
		fmt.Fprintf(&sb, " AND is_completed = $%d", len(args))
	}
	return sb.String(), args
}

// buildTaskUpdate assembles a single UPDATE ... RETURNING statement from
// the patched fields. Callers guarantee the patch is non-empty.
func buildTaskUpdate(ownerID, taskID int64, patch domain.TaskPatch) (string, []any) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 6)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title.Set {
		set("title", patch.Title.Value)
	}
	if patch.Description.Set {
		if patch.Description.Valid {
			set("description", patch.Description.Value)
		} else {
			set("description", nil)
		}
	}
	if patch.IsCompleted.Set {
		set("is_completed", patch.IsCompleted.Value)
	}
	if patch.DueDate.Set {
		if patch.DueDate.Valid {
			set("due_date", patch.DueDate.Value)
		} else {
			set("due_date", nil)
		}
	}
	args = append(args, taskID)
	idPos := len(args)
	args = append(args, ownerID)
	ownerPos := len(args)
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $%d AND owner_id = $%d RETURNING %s",
		strings.Join(sets, ", "), idPos, ownerPos, taskColumns)
	return query, args
}
