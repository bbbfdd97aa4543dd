package model

import "time"

type Kind string

const (
	KindArea    Kind = "area"
	KindProject Kind = "project"
	KindTask    Kind = "task"
	KindInbox   Kind = "inbox"
	KindNote    Kind = "note"
)

type Area struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Active    bool      `json:"active" yaml:"active"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

type Project struct {
	ID        string        `json:"id" yaml:"id"`
	AreaID    string        `json:"areaId" yaml:"areaId"`
	Name      string        `json:"name" yaml:"name"`
	Status    ProjectStatus `json:"status" yaml:"status"`
	CreatedAt time.Time     `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" yaml:"updatedAt"`
}

type Task struct {
	ID        string  `json:"id" yaml:"id"`
	AreaID    string  `json:"areaId" yaml:"areaId"`
	ProjectID *string `json:"projectId" yaml:"projectId"`

	Title       string     `json:"title" yaml:"title"`
	Status      TaskStatus `json:"status" yaml:"status"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	DueAt       *time.Time `json:"dueAt" yaml:"dueAt"`
	ScheduledAt *time.Time `json:"scheduledAt" yaml:"scheduledAt"`

	// CompletedAt is non-nil exactly when Status is done.
	CompletedAt *time.Time `json:"completedAt" yaml:"completedAt"`

	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// IsOpen reports whether the task counts as open work for its project.
func (t Task) IsOpen() bool {
	return t.Status == TaskTodo || t.Status == TaskDoing
}

type InboxItem struct {
	ID        string      `json:"id" yaml:"id"`
	Content   string      `json:"content" yaml:"content"`
	Source    InboxSource `json:"source" yaml:"source"`
	State     InboxState  `json:"state" yaml:"state"`
	CreatedAt time.Time   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt" yaml:"updatedAt"`
}

type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	AreaID    *string   `json:"areaId" yaml:"areaId"`
	ProjectID *string   `json:"projectId" yaml:"projectId"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

type Event struct {
	ID         string    `json:"id" yaml:"id"`
	TS         time.Time `json:"ts" yaml:"ts"`
	Type       string    `json:"type" yaml:"type"`
	EntityKind Kind      `json:"entityKind" yaml:"entityKind"`
	EntityID   string    `json:"entityId" yaml:"entityId"`
	Payload    any       `json:"payload" yaml:"payload"`
}

// StrPtr returns nil for empty strings so optional references stay unset.
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the empty string for a nil reference.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
