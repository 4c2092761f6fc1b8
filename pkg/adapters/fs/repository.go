package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/notesrv/pkg/core"
)

// DefaultSuffix is the extension appended to a note name to form its filename.
const DefaultSuffix = ".txt"

// Repository implements core.Repository using one file per note in a flat directory.
// Nothing is cached: every call touches the filesystem.
type Repository struct {
	Path   string
	config Config
	locks  *nameLocks

	mu        sync.RWMutex
	watchers  int
	lastEvent *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path         string
	MustExist    bool
	Suffix       string // e.g. ".txt"
	Logger       *slog.Logger
	ErrorHandler func(error) // Receives watcher runtime errors.
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Suffix == "" {
		config.Suffix = DefaultSuffix
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Repository{
		Path:   config.Path,
		config: config,
		locks:  newNameLocks(),
	}
}

// Initialize prepares the notes directory.
// With MustExist the directory has to be present already; otherwise it is created.
func (r *Repository) Initialize(ctx context.Context) error {
	if strings.HasSuffix(PartialSuffix, r.config.Suffix) {
		return fmt.Errorf("note suffix %q would match partial writes", r.config.Suffix)
	}

	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("notes path does not exist: %s", r.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat notes path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("notes path is not a directory: %s", r.Path)
		}
		return nil
	}

	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}
	return nil
}

// notePath resolves name to its file inside the notes directory.
// Names that could escape the directory are rejected.
func (r *Repository) notePath(name string) (string, error) {
	if err := core.ValidateName(name); err != nil {
		return "", err
	}
	filename := name + r.config.Suffix
	if !filepath.IsLocal(filename) {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidName, name)
	}
	return filepath.Join(r.Path, filename), nil
}

// Get reads a note from disk.
// Any read failure is reported as core.ErrNotFound, wrapping the cause.
func (r *Repository) Get(ctx context.Context, name string) (core.Note, error) {
	if err := ctx.Err(); err != nil {
		return core.Note{}, err
	}
	fullPath, err := r.notePath(name)
	if err != nil {
		return core.Note{}, err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return core.Note{}, fmt.Errorf("%w: %w", core.ErrNotFound, err)
	}
	return core.Note{Name: name, Text: string(data)}, nil
}

// List reads every regular file carrying the note suffix.
//
// Entries come back in directory order (sorted by filename). Files that
// vanish between the directory scan and the read are skipped.
func (r *Repository) List(ctx context.Context) ([]core.Note, error) {
	entries, err := os.ReadDir(r.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	notes := make([]core.Note, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name, ok := r.nameFromFile(entry.Name())
		if !ok || !entry.Type().IsRegular() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(r.Path, entry.Name()))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read note %s: %w", name, err)
		}
		notes = append(notes, core.Note{Name: name, Text: string(data)})
	}

	return notes, nil
}

// Create writes a new note using an exclusive create, so two concurrent
// creates of the same name can never both succeed.
func (r *Repository) Create(ctx context.Context, n core.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := r.notePath(n.Name)
	if err != nil {
		return err
	}

	unlock := r.locks.Lock(n.Name)
	defer unlock()

	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", core.ErrExists, n.Name)
		}
		return fmt.Errorf("failed to create note file: %w", err)
	}

	if _, err := f.WriteString(n.Text); err != nil {
		f.Close()
		os.Remove(fullPath)
		return fmt.Errorf("failed to write note file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(fullPath)
		return fmt.Errorf("failed to close note file: %w", err)
	}

	r.config.Logger.Debug("note created", "name", n.Name, "bytes", len(n.Text))
	return nil
}

// Update overwrites an existing note.
//
// Workflow:
//  1. Take the per-name lock so a concurrent delete cannot interleave.
//  2. Check existence; a missing (or unreadable) file is core.ErrNotFound.
//  3. Write the new text atomically (temp file + rename).
func (r *Repository) Update(ctx context.Context, n core.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := r.notePath(n.Name)
	if err != nil {
		return err
	}

	unlock := r.locks.Lock(n.Name)
	defer unlock()

	info, err := os.Stat(fullPath)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrNotFound, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", core.ErrNotFound, n.Name)
	}

	if err := replaceFile(fullPath, n.Text, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write note file: %w", err)
	}

	r.config.Logger.Debug("note updated", "name", n.Name, "bytes", len(n.Text))
	return nil
}

// Delete removes a note. Every removal failure is reported as core.ErrNotFound,
// and so is a path that exists but is not a regular file.
func (r *Repository) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := r.notePath(name)
	if err != nil {
		return err
	}

	unlock := r.locks.Lock(name)
	defer unlock()

	info, err := os.Stat(fullPath)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrNotFound, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", core.ErrNotFound, name)
	}

	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("%w: %w", core.ErrNotFound, err)
	}

	r.config.Logger.Debug("note deleted", "name", name)
	return nil
}

// nameFromFile maps a directory entry back to a note name.
// Returns false for files without the note suffix, which includes partial writes.
func (r *Repository) nameFromFile(filename string) (string, bool) {
	name, ok := strings.CutSuffix(filename, r.config.Suffix)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
