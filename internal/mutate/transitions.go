package mutate

import "auralis-cli/internal/model"

// Legal inbox edges. archived is terminal.
var inboxEdges = map[model.InboxState][]model.InboxState{
	model.InboxUnprocessed: {model.InboxProcessed, model.InboxArchived},
	model.InboxProcessed:   {model.InboxArchived},
}

// Legal project edges. completed is terminal.
var projectEdges = map[model.ProjectStatus][]model.ProjectStatus{
	model.ProjectPaused: {model.ProjectActive, model.ProjectCompleted},
	model.ProjectActive: {model.ProjectPaused, model.ProjectCompleted},
}

func hasEdge[T comparable](edges map[T][]T, from, to T) bool {
	for _, x := range edges[from] {
		if x == to {
			return true
		}
	}
	return false
}

// CheckInboxTransition validates from -> to. Equal states are a no-op and always allowed.
func CheckInboxTransition(id string, from, to model.InboxState) error {
	if from == to || hasEdge(inboxEdges, from, to) {
		return nil
	}
	return InvalidTransitionError{Kind: model.KindInbox, ID: id, From: string(from), To: string(to)}
}

// CheckProjectTransition validates from -> to, then the activation guard.
// openTasks is the number of the project's tasks in todo or doing.
func CheckProjectTransition(id string, from, to model.ProjectStatus, openTasks int) error {
	if from == model.ProjectCompleted {
		return InvalidTransitionError{Kind: model.KindProject, ID: id, From: string(from), To: string(to)}
	}
	if from == to {
		return nil
	}
	if !hasEdge(projectEdges, from, to) {
		return InvalidTransitionError{Kind: model.KindProject, ID: id, From: string(from), To: string(to)}
	}
	if to == model.ProjectActive && openTasks < 1 {
		return GuardViolationError{
			Kind:  model.KindProject,
			ID:    id,
			To:    string(to),
			Guard: "no open task (a project needs at least one todo or doing task to become active)",
		}
	}
	return nil
}
