package model

import (
	"fmt"
	"strings"
)

type InboxState string

const (
	InboxUnprocessed InboxState = "unprocessed"
	InboxProcessed   InboxState = "processed"
	InboxArchived    InboxState = "archived"
)

type InboxSource string

const (
	SourceText  InboxSource = "text"
	SourceVoice InboxSource = "voice"
)

type TaskStatus string

const (
	TaskTodo     TaskStatus = "todo"
	TaskDoing    TaskStatus = "doing"
	TaskDone     TaskStatus = "done"
	TaskDeferred TaskStatus = "deferred"
)

type ProjectStatus string

const (
	ProjectPaused    ProjectStatus = "paused"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// EnumError is returned by the Parse* helpers for values outside the closed set.
type EnumError struct {
	Field    string
	Value    string
	Expected []string
}

func (e EnumError) Error() string {
	return fmt.Sprintf("invalid %s: %q (expected %s)", e.Field, e.Value, strings.Join(e.Expected, "|"))
}

func parseEnum[T ~string](field, s string, allowed ...T) (T, error) {
	v := T(strings.ToLower(strings.TrimSpace(s)))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	exp := make([]string, 0, len(allowed))
	for _, a := range allowed {
		exp = append(exp, string(a))
	}
	return "", EnumError{Field: field, Value: s, Expected: exp}
}

func ParseInboxState(s string) (InboxState, error) {
	return parseEnum("state", s, InboxUnprocessed, InboxProcessed, InboxArchived)
}

func ParseInboxSource(s string) (InboxSource, error) {
	return parseEnum("source", s, SourceText, SourceVoice)
}

func ParseTaskStatus(s string) (TaskStatus, error) {
	return parseEnum("status", s, TaskTodo, TaskDoing, TaskDone, TaskDeferred)
}

func ParseProjectStatus(s string) (ProjectStatus, error) {
	return parseEnum("status", s, ProjectPaused, ProjectActive, ProjectCompleted)
}

func ParsePriority(s string) (Priority, error) {
	return parseEnum("priority", s, PriorityLow, PriorityNormal, PriorityHigh)
}
