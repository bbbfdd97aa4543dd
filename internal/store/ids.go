package store

import (
	"github.com/google/uuid"

	"auralis-cli/internal/model"
)

var idPrefixes = map[model.Kind]string{
	model.KindArea:    "area",
	model.KindProject: "project",
	model.KindTask:    "task",
	model.KindInbox:   "inbox",
	model.KindNote:    "note",
}

// NewID returns <prefix>_<uuid v4>. Prefixes keep ids readable: task_..., note_..., etc.
func NewID(kind model.Kind) string {
	prefix, ok := idPrefixes[kind]
	if !ok {
		prefix = string(kind)
	}
	return prefix + "_" + uuid.NewString()
}

func newEventID() string {
	return "evt_" + uuid.NewString()
}
