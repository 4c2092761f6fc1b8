package core

import (
	"fmt"
	"strings"
)

// Note is the central entity of the domain.
// It is a named piece of plain text. The name is its identity and, for
// file-backed repositories, the base name of the file that holds it.
type Note struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// ValidateName reports whether name can be used as a note identity.
// A valid name is a single, non-empty path segment: it cannot contain
// separators or NUL bytes and cannot be "." or "..".
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

// EventType represents the type of change observed on a note.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a note in the store.
type Event struct {
	Type      EventType `json:"type"`
	Name      string    `json:"name"`
	Timestamp int64     `json:"timestamp"` // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type) + " " + e.Name
}
