package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTaskPatchDistinguishesAbsentFromNull(t *testing.T) {
	var patch TaskPatch
	payload := `{"description": null, "is_completed": true}`
	if err := json.Unmarshal([]byte(payload), &patch); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if patch.Title.Set {
		t.Fatal("title was absent; Set must be false")
	}
	if patch.DueDate.Set {
		t.Fatal("due_date was absent; Set must be false")
	}
	if !patch.Description.Set || patch.Description.Valid {
		t.Fatalf("description was explicit null; got %+v", patch.Description)
	}
	if !patch.IsCompleted.Set || !patch.IsCompleted.Valid || !patch.IsCompleted.Value {
		t.Fatalf("is_completed carried true; got %+v", patch.IsCompleted)
	}
	if patch.Empty() {
		t.Fatal("patch with fields must not report empty")
	}
}

func TestTaskPatchValues(t *testing.T) {
	var patch TaskPatch
	payload := `{"title": "new title", "due_date": "2026-03-01T12:00:00Z"}`
	if err := json.Unmarshal([]byte(payload), &patch); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if patch.Title.Value != "new title" {
		t.Fatalf("title %q", patch.Title.Value)
	}
	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if !patch.DueDate.Value.Equal(want) {
		t.Fatalf("due_date %v, want %v", patch.DueDate.Value, want)
	}
}

func TestTaskPatchEmpty(t *testing.T) {
	var patch TaskPatch
	if err := json.Unmarshal([]byte(`{}`), &patch); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !patch.Empty() {
		t.Fatal("empty payload must produce an empty patch")
	}
}
