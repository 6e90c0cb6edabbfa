package storage

import (
	"time"

	"go.uber.org/zap"

	"github.com/and161185/task-keeper/internal/blobstore"
	"github.com/and161185/task-keeper/internal/model"
)

// TodoStore persists each user's todo sequence inside the todos-by-user
// mapping. Insertion order is preserved by storage but carries no meaning;
// consumers re-sort through the derive package.
type TodoStore struct {
	store blobstore.Store
	log   *zap.Logger
	now   func() time.Time
}

// NewTodoStore constructs a todo store over the given blob store.
func NewTodoStore(store blobstore.Store, log *zap.Logger) *TodoStore {
	return &TodoStore{store: store, log: log, now: time.Now}
}

func (ts *TodoStore) all() map[string][]model.Todo {
	return readJSON(ts.store, ts.log, keyTodos, map[string][]model.Todo{})
}

// Todos returns the user's todo sequence, empty when none is stored.
// Records whose owner does not match userID are dropped even though the
// mapping is already keyed by user.
func (ts *TodoStore) Todos(userID string) []model.Todo {
	todos := ts.all()[userID]
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

// SetTodos replaces the user's entire todo sequence.
func (ts *TodoStore) SetTodos(userID string, todos []model.Todo) {
	all := ts.all()
	all[userID] = todos
	writeJSON(ts.store, ts.log, keyTodos, all)
}

// Add appends todo to the user's sequence.
func (ts *TodoStore) Add(userID string, todo model.Todo) {
	ts.SetTodos(userID, append(ts.Todos(userID), todo))
}

// TodoPatch carries the fields of a partial update; nil fields are left
// unchanged. DueDate and CompletedAt distinguish "clear" (pointer to nil)
// from "leave alone" (nil pointer) via the Clear* flags.
type TodoPatch struct {
	Title         *string
	Description   *string
	Status        *model.Status
	Priority      *model.Priority
	Category      *string
	CategoryColor *string
	DueDate       *time.Time
	ClearDueDate  bool
	Subtasks      *[]model.Subtask
	Tags          *[]string
	Attachments   *[]string
}

// Update merges patch over the todo with the given id and stamps a fresh
// update timestamp. A missing id is a silent no-op: callers that need to
// know must re-read. When the patch moves a todo into completed status the
// completion timestamp is stamped; moving out of completed clears it.
func (ts *TodoStore) Update(userID, todoID string, patch TodoPatch) {
	todos := ts.Todos(userID)
	for i := range todos {
		if todos[i].ID != todoID {
			continue
		}
		applyPatch(&todos[i], patch, ts.now())
		ts.SetTodos(userID, todos)
		return
	}
}

func applyPatch(t *model.Todo, p TodoPatch, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil && *p.Status != t.Status {
		if *p.Status == model.StatusCompleted {
			at := now
			t.CompletedAt = &at
		} else {
			t.CompletedAt = nil
		}
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.CategoryColor != nil {
		t.CategoryColor = *p.CategoryColor
	}
	if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	} else if p.ClearDueDate {
		t.DueDate = nil
	}
	if p.Subtasks != nil {
		t.Subtasks = *p.Subtasks
	}
	if p.Tags != nil {
		t.Tags = *p.Tags
	}
	if p.Attachments != nil {
		t.Attachments = *p.Attachments
	}
	t.UpdatedAt = now
}

// Delete removes the todo with the given id. Deleting an absent id is a no-op.
func (ts *TodoStore) Delete(userID, todoID string) {
	ts.DeleteMany(userID, []string{todoID})
}

// DeleteMany removes every todo whose id appears in todoIDs.
func (ts *TodoStore) DeleteMany(userID string, todoIDs []string) {
	drop := make(map[string]struct{}, len(todoIDs))
	for _, id := range todoIDs {
		drop[id] = struct{}{}
	}
	todos := ts.Todos(userID)
	kept := todos[:0]
	for _, t := range todos {
		if _, gone := drop[t.ID]; !gone {
			kept = append(kept, t)
		}
	}
	ts.SetTodos(userID, kept)
}
