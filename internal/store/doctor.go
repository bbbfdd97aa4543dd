package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level      DoctorIssueLevel `json:"level" yaml:"level"`
	Code       string           `json:"code" yaml:"code"`
	Message    string           `json:"message" yaml:"message"`
	EntityKind string           `json:"entityKind,omitempty" yaml:"entityKind,omitempty"`
	EntityID   string           `json:"entityId,omitempty" yaml:"entityId,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues" yaml:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

type doctorCheck struct {
	level DoctorIssueLevel
	code  string
	kind  string
	query string
	msg   string
}

// Each query returns the offending entity ids.
var doctorChecks = []doctorCheck{
	{
		level: DoctorIssueLevelError,
		code:  "task_area_mismatch",
		kind:  "task",
		query: `SELECT t.id FROM tasks t JOIN projects p ON p.id = t.project_id WHERE t.area_id <> p.area_id ORDER BY t.rowid`,
		msg:   "task area differs from its project's area",
	},
	{
		level: DoctorIssueLevelError,
		code:  "note_area_mismatch",
		kind:  "note",
		query: `SELECT n.id FROM notes n JOIN projects p ON p.id = n.project_id WHERE n.area_id IS NOT p.area_id ORDER BY n.rowid`,
		msg:   "note area differs from its project's area",
	},
	{
		level: DoctorIssueLevelWarn,
		code:  "active_project_without_open_task",
		kind:  "project",
		query: `SELECT p.id FROM projects p WHERE p.status = 'active'
			AND NOT EXISTS (SELECT 1 FROM tasks t WHERE t.project_id = p.id AND t.status IN ('todo', 'doing'))
			ORDER BY p.rowid`,
		msg: "active project has no todo or doing task",
	},
}

// Doctor checks the stored data against the organizer's invariants.
func (t *Tx) Doctor(ctx context.Context, defaultAreaID string) (DoctorReport, error) {
	var issues []DoctorIssue

	var integrity string
	if err := t.tx.QueryRowContext(ctx, `PRAGMA quick_check`).Scan(&integrity); err != nil {
		return DoctorReport{}, err
	}
	if integrity != "ok" {
		issues = append(issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "sqlite_integrity", Message: integrity})
	}

	if id := strings.TrimSpace(defaultAreaID); id != "" {
		if _, err := t.GetArea(ctx, id); errors.Is(err, ErrNotFound) {
			issues = append(issues, DoctorIssue{
				Level:      DoctorIssueLevelError,
				Code:       "default_area_missing",
				Message:    fmt.Sprintf("default area %s does not exist", id),
				EntityKind: "area",
				EntityID:   id,
			})
		} else if err != nil {
			return DoctorReport{}, err
		}
	}

	for _, c := range doctorChecks {
		ids, err := queryRows(ctx, t, func(r rowScanner) (string, error) {
			var id string
			err := r.Scan(&id)
			return id, err
		}, c.query)
		if err != nil {
			return DoctorReport{}, fmt.Errorf("doctor %s: %w", c.code, err)
		}
		for _, id := range ids {
			issues = append(issues, DoctorIssue{Level: c.level, Code: c.code, Message: c.msg, EntityKind: c.kind, EntityID: id})
		}
	}

	if issues == nil {
		issues = []DoctorIssue{}
	}
	return DoctorReport{Issues: issues}, nil
}
