package core

import "context"

// Repository defines the contract for storing and retrieving notes.
// Adhering to this interface keeps the core independent of the
// underlying storage mechanism.
type Repository interface {
	// Get retrieves a note by its name.
	// Returns ErrNotFound if the note cannot be read.
	Get(ctx context.Context, name string) (Note, error)

	// List returns every note currently stored.
	List(ctx context.Context) ([]Note, error)

	// Create persists a new note. Returns ErrExists if the name is taken.
	Create(ctx context.Context, n Note) error

	// Update overwrites an existing note. Returns ErrNotFound if absent.
	Update(ctx context.Context, n Note) error

	// Delete removes a note by its name. Returns ErrNotFound on any failure.
	Delete(ctx context.Context, name string) error

	// Initialize ensures the underlying storage is ready (e.g. create directories).
	Initialize(ctx context.Context) error
}

// Watchable defines an interface for repositories that can report changes.
type Watchable interface {
	// Watch emits events for notes whose name matches pattern.
	// The channel is closed once ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
