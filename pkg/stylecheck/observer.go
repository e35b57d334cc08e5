package stylecheck

import (
	"fmt"
	"strings"
)

// EventKind identifies a checker notification.
type EventKind string

// Event kinds emitted by a Checker.
const (
	EventClassified     EventKind = "classified"
	EventUnusedVariable EventKind = "unused_variable"
	EventResult         EventKind = "result"
)

// Event is a human-readable notification about a check in progress.
type Event struct {
	Kind    EventKind
	Path    string
	Message string

	// IsStyle is set on EventClassified.
	IsStyle bool
	// Variable is set on EventUnusedVariable.
	Variable string
	// Unused is set on EventResult.
	Unused []string
}

// Observer receives checker notifications. It is called synchronously from
// the goroutine running the check.
type Observer func(Event)

func classifiedEvent(path string, isStyle bool) Event {
	msg := "This is not a style file"
	if isStyle {
		msg = "This is a style file"
	}

	return Event{Kind: EventClassified, Path: path, IsStyle: isStyle, Message: msg}
}

func unusedVariableEvent(variable, siblingPath string) Event {
	return Event{
		Kind:     EventUnusedVariable,
		Path:     siblingPath,
		Variable: variable,
		Message:  fmt.Sprintf("Variable %s is not used in %s", variable, siblingPath),
	}
}

func resultEvent(path string, unused []string) Event {
	return Event{
		Kind:    EventResult,
		Path:    path,
		Unused:  unused,
		Message: "unusedStyles: " + strings.Join(unused, ","),
	}
}
