package core

import (
	"context"
)

// Service handles the business logic for notes.
type Service struct {
	repo Repository
}

// NewService creates a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Repository returns the underlying storage adapter.
func (s *Service) Repository() Repository {
	return s.repo
}

// GetNote retrieves a note by name.
func (s *Service) GetNote(ctx context.Context, name string) (Note, error) {
	if err := ValidateName(name); err != nil {
		return Note{}, err
	}
	return s.repo.Get(ctx, name)
}

// ListNotes retrieves all notes.
func (s *Service) ListNotes(ctx context.Context) ([]Note, error) {
	notes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []Note{}
	}
	return notes, nil
}

// CreateNote stores a new note. It never overwrites an existing one.
func (s *Service) CreateNote(ctx context.Context, name, text string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return s.repo.Create(ctx, Note{Name: name, Text: text})
}

// UpdateNote replaces the text of an existing note.
func (s *Service) UpdateNote(ctx context.Context, name, text string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return s.repo.Update(ctx, Note{Name: name, Text: text})
}

// DeleteNote removes a note.
func (s *Service) DeleteNote(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return s.repo.Delete(ctx, name)
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx, pattern)
}
