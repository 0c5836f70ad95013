package store

import (
	"context"

	"github.com/starford/notepad/internal/models"
)

// NoteStore defines the note persistence operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with fakes.
type NoteStore interface {
	Insert(ctx context.Context, title, content string) (*models.Note, error)
	ListSummaries(ctx context.Context) ([]models.NoteSummary, error)
	Get(ctx context.Context, id int64) (*models.Note, error)
	Content(ctx context.Context, id int64) (string, error)
	ContentAt(ctx context.Context, offset int) (string, error)
	Delete(ctx context.Context, id int64) error
	DeleteAt(ctx context.Context, offset int) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// Verify *DB satisfies NoteStore at compile time.
var _ NoteStore = (*DB)(nil)
