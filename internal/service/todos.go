package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/task-keeper/internal/ident"
	"github.com/and161185/task-keeper/internal/model"
	"github.com/and161185/task-keeper/internal/remote"
	"github.com/and161185/task-keeper/internal/storage"
	"github.com/and161185/task-keeper/internal/validation"
)

// RemoteTodos is the slice of the remote client todo flows depend on.
type RemoteTodos interface {
	TodosByUser(ctx context.Context, userID string) ([]model.Todo, error)
	CreateTodo(ctx context.Context, t model.Todo) (model.Todo, error)
	UpdateTodo(ctx context.Context, id string, t model.Todo) (model.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
}

// TodoService keeps the local store authoritative and pushes changes to the
// remote API opportunistically. The remote side is never on the critical
// persistence path except where noted on Update.
type TodoService struct {
	remote RemoteTodos
	todos  *storage.TodoStore
	log    *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewTodoService constructs a todo service.
func NewTodoService(rc RemoteTodos, todos *storage.TodoStore, log *zap.Logger) *TodoService {
	return &TodoService{
		remote: rc,
		todos:  todos,
		log:    log,
		now:    time.Now,
		newID:  ident.New,
	}
}

// List returns the user's locally stored todos.
func (s *TodoService) List(userID string) []model.Todo {
	return s.todos.Todos(userID)
}

// Fetch pulls the user's todos from the remote API. An unreachable network
// degrades to an empty list; application errors propagate.
func (s *TodoService) Fetch(ctx context.Context, userID string) ([]model.Todo, error) {
	remoteTodos, err := s.remote.TodosByUser(ctx, userID)
	if err != nil {
		if remote.IsUnreachable(err) {
			return []model.Todo{}, nil
		}
		return nil, err
	}
	return remoteTodos, nil
}

// NewTodo carries the caller-supplied fields of a new todo.
type NewTodo struct {
	Title         string
	Description   string
	Priority      model.Priority
	Category      string
	CategoryColor string
	DueDate       *time.Time
	Tags          []string
}

// Create validates input, stores the todo locally and pushes it to the
// remote API. When the network is unreachable the locally built record
// stands in for the remote one.
func (s *TodoService) Create(ctx context.Context, userID string, in NewTodo) (model.Todo, error) {
	if verrs := validation.ValidateTodo(in.Title, in.Description); len(verrs) > 0 {
		return model.Todo{}, validationError(verrs)
	}

	now := s.now()
	t := model.Todo{
		ID:            s.newID(),
		UserID:        userID,
		Title:         in.Title,
		Description:   in.Description,
		Status:        model.StatusPending,
		Priority:      in.Priority,
		Category:      in.Category,
		CategoryColor: in.CategoryColor,
		DueDate:       in.DueDate,
		Tags:          in.Tags,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}

	if _, err := s.remote.CreateTodo(ctx, t); err != nil {
		if !remote.IsUnreachable(err) {
			return model.Todo{}, err
		}
		s.log.Debug("remote unreachable, keeping todo local", zap.String("todo", t.ID))
	}
	s.todos.Add(userID, t)
	return t, nil
}

// Update applies the patch locally, then pushes the merged record. Unlike
// Delete, an unreachable network here surfaces as an error; the local write
// has still happened. The asymmetry is deliberate and mirrors long-standing
// caller expectations.
func (s *TodoService) Update(ctx context.Context, userID, todoID string, patch storage.TodoPatch) error {
	s.todos.Update(userID, todoID, patch)

	merged, ok := s.find(userID, todoID)
	if !ok {
		// unknown id: local update was a no-op, nothing to push
		return nil
	}
	if _, err := s.remote.UpdateTodo(ctx, todoID, merged); err != nil {
		return err
	}
	return nil
}

// Delete removes the todo locally and remotely. An unreachable network is
// swallowed: the remote copy is cleaned up on a later sync.
func (s *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	s.todos.Delete(userID, todoID)
	if err := s.remote.DeleteTodo(ctx, todoID); err != nil && !remote.IsUnreachable(err) {
		return err
	}
	return nil
}

// DeleteMany removes several todos from local storage only.
func (s *TodoService) DeleteMany(userID string, todoIDs []string) {
	s.todos.DeleteMany(userID, todoIDs)
}

func (s *TodoService) find(userID, todoID string) (model.Todo, bool) {
	for _, t := range s.todos.Todos(userID) {
		if t.ID == todoID {
			return t, true
		}
	}
	return model.Todo{}, false
}
