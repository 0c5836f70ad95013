// Package noteservice validates note input and coordinates the store for
// every delivery surface (terminal, HTTP, MCP).
package noteservice

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/notepad/internal/apperr"
	"github.com/starford/notepad/internal/models"
	"github.com/starford/notepad/internal/store"
)

// Event kinds passed to an EventFunc.
const (
	EventCreated = "created"
	EventDeleted = "deleted"
)

// EventFunc is called after a successful mutation.
type EventFunc func(kind string, id int64)

// NoteInput is the user-supplied part of a new note.
type NoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate requires both fields to be non-empty.
func (in NoteInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.Content, validation.Required),
	)
}

// Service coordinates validation and storage.
type Service struct {
	store   store.NoteStore
	logger  *slog.Logger
	onEvent EventFunc
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithEvents registers fn to be told about creates and deletes.
func WithEvents(fn EventFunc) Option {
	return func(s *Service) { s.onEvent = fn }
}

// NewService creates a new note service.
func NewService(st store.NoteStore, opts ...Option) *Service {
	s := &Service{store: st, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates in and stores it. Validation failures wrap
// apperr.ErrValidation and leave the store untouched.
func (s *Service) Create(ctx context.Context, in NoteInput) (*models.Note, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrValidation, err)
	}
	n, err := s.store.Insert(ctx, in.Title, in.Content)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("note created", slog.Int64("id", n.ID))
	s.emit(EventCreated, n.ID)
	return n, nil
}

// List returns every note summary, newest first.
func (s *Service) List(ctx context.Context) ([]models.NoteSummary, error) {
	items, err := s.store.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	return nonNilSlice(items), nil
}

// Get returns a full note.
func (s *Service) Get(ctx context.Context, id int64) (*models.Note, error) {
	return s.store.Get(ctx, id)
}

// Content returns a note's body.
func (s *Service) Content(ctx context.Context, id int64) (string, error) {
	return s.store.Content(ctx, id)
}

// ContentAt returns the body of the note at a list position, resolved
// against the current ordering.
func (s *Service) ContentAt(ctx context.Context, offset int) (string, error) {
	return s.store.ContentAt(ctx, offset)
}

// Delete removes a note by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("note deleted", slog.Int64("id", id))
	s.emit(EventDeleted, id)
	return nil
}

func (s *Service) emit(kind string, id int64) {
	if s.onEvent != nil {
		s.onEvent(kind, id)
	}
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
