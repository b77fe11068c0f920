package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Task is a unit of work owned by exactly one user. Description and
// DueDate are nullable in storage, hence pointers.
type Task struct {
	ID          int64      `json:"id"`
	OwnerID     int64      `json:"owner_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	IsCompleted bool       `json:"is_completed"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Optional distinguishes a JSON patch field that was absent from one that
// was explicitly set, including set to null. Set reports presence in the
// payload; Valid reports a non-null value.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// UnmarshalJSON is only invoked for keys present in the payload, so a
// zero Optional means the field was never supplied.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		var zero T
		o.Value = zero
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// TaskPatch carries the fields of a partial update. Fields absent from
// the patch leave the stored value untouched; an explicit null clears a
// nullable field.
type TaskPatch struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	IsCompleted Optional[bool]      `json:"is_completed"`
	DueDate     Optional[time.Time] `json:"due_date"`
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.IsCompleted.Set && !p.DueDate.Set
}

// Columns accepted for task list ordering.
const (
	OrderByDueDate   = "due_date"
	OrderByCreatedAt = "created_at"
	OrderByTitle     = "title"
)

// Ordering directions.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// TaskListQuery describes a filtered, ordered pagination window. A nil
// Completed applies no completion filter.
type TaskListQuery struct {
	Completed *bool
	OrderBy   string
	OrderDir  string
	Limit     int
	Offset    int
}
