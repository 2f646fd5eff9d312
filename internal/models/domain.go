package models

import (
	"fmt"
	"strings"
)

// TaskState is a Kanban column for tasks.
type TaskState string

const (
	StateToDo       TaskState = "to-do"
	StateInProgress TaskState = "in-progress"
	StateToValidate TaskState = "to-validate"
	StateDone       TaskState = "done"
)

// SprintStatus is the lifecycle stage of a sprint.
type SprintStatus string

const (
	SprintPlanning  SprintStatus = "planning"
	SprintActive    SprintStatus = "active"
	SprintCompleted SprintStatus = "completed"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"

	// BacklogSprint holds tasks that are not scheduled in a sprint.
	BacklogSprint = "Backlog"
)

// BoardStates lists task states in board column order.
var BoardStates = []TaskState{
	StateToDo,
	StateInProgress,
	StateToValidate,
	StateDone,
}

var validSprintStatuses = map[SprintStatus]struct{}{
	SprintPlanning:  {},
	SprintActive:    {},
	SprintCompleted: {},
}

// IsBoardState reports whether state is one of the board columns.
func IsBoardState(state string) bool {
	for _, s := range BoardStates {
		if string(s) == state {
			return true
		}
	}
	return false
}

func ParseSprintStatus(raw string) (SprintStatus, error) {
	value := SprintStatus(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("status is required")
	}
	if _, ok := validSprintStatuses[value]; !ok {
		return "", fmt.Errorf("invalid sprint status: %s", value)
	}
	return value, nil
}

func BoardStateStrings() []string {
	out := make([]string, 0, len(BoardStates))
	for _, s := range BoardStates {
		out = append(out, string(s))
	}
	return out
}
