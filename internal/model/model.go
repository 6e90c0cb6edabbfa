// Package model defines domain entities used by services, storage and derivation.
package model

import "time"

// Status is the lifecycle state of a todo.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusArchived   Status = "archived"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// Priority is the urgency level of a todo.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank returns the comparable weight of a priority (urgent highest).
// Unknown priorities rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Subtask is owned exclusively by its parent todo and has no independent lifecycle.
type Subtask struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Todo is a single task record. UserID never changes after creation;
// read paths re-filter on it even though storage is already keyed per user.
type Todo struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Status           Status     `json:"status"`
	Priority         Priority   `json:"priority"`
	Category         string     `json:"category"`
	CategoryColor    string     `json:"categoryColor,omitempty"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"` // set only on transition to completed
	Subtasks         []Subtask  `json:"subtasks,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
	Attachments      []string   `json:"attachments,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	IsRecurring      bool       `json:"isRecurring,omitempty"`
	RecurringPattern string     `json:"recurringPattern,omitempty"`
}

// User is an account record. Accounts are never hard-deleted in the
// normal flow, only via a full data wipe.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Backup bundles both stored collections with a snapshot timestamp.
type Backup struct {
	Todos     map[string][]Todo `json:"todos"`
	Users     map[string]User   `json:"users"`
	Timestamp time.Time         `json:"timestamp"`
}

// Credentials is a login request payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup is a registration request payload.
type Signup struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// AuthResponse is returned by login/signup, remote or local.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
