// Package notepad holds the note list presenter, the note editor and the
// controller that switches between the list, editor and about screens.
//
// The types here are driven by a single event loop and are not safe for
// concurrent use.
package notepad

import (
	"context"
	"errors"

	"github.com/starford/notepad/internal/apperr"
	"github.com/starford/notepad/internal/models"
	"github.com/starford/notepad/internal/noteservice"
)

// Notes is the note service surface the presenter and editor use.
type Notes interface {
	Create(ctx context.Context, in noteservice.NoteInput) (*models.Note, error)
	List(ctx context.Context) ([]models.NoteSummary, error)
	Content(ctx context.Context, id int64) (string, error)
	Delete(ctx context.Context, id int64) error
}

var _ Notes = (*noteservice.Service)(nil)

// Selection is the note chosen on the list screen. ID is captured when the
// row is selected so later actions do not depend on the row's position.
type Selection struct {
	Position int
	ID       int64
}

// ListPresenter loads note summaries and tracks the selected note.
type ListPresenter struct {
	notes    Notes
	notify   Notifier
	rows     []models.NoteSummary
	selected *Selection
	content  string
}

// NewListPresenter creates an empty presenter. Call Refresh to load rows.
func NewListPresenter(notes Notes, notify Notifier) *ListPresenter {
	return &ListPresenter{notes: notes, notify: notify}
}

// Refresh reloads all summaries and clears the selection and preview.
func (p *ListPresenter) Refresh(ctx context.Context) error {
	p.clearSelection()
	rows, err := p.notes.List(ctx)
	if err != nil {
		p.rows = nil
		return err
	}
	p.rows = rows
	return nil
}

// SelectAt selects the row at position and shows its content.
func (p *ListPresenter) SelectAt(ctx context.Context, position int) error {
	if position < 0 || position >= len(p.rows) {
		p.notify.Notify(NoticeNoSuchNote)
		return nil
	}
	id := p.rows[position].ID
	content, err := p.notes.Content(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		p.notify.Notify(NoticeNoteGone)
		return p.Refresh(ctx)
	}
	if err != nil {
		return err
	}
	p.selected = &Selection{Position: position, ID: id}
	p.content = content
	return nil
}

// DeleteSelected deletes the selected note and reloads the list. Without a
// selection it only shows a notice. The selection and preview are cleared
// whatever the outcome.
func (p *ListPresenter) DeleteSelected(ctx context.Context) error {
	if p.selected == nil {
		p.notify.Notify(NoticeSelectToDelete)
		return nil
	}
	id := p.selected.ID
	p.clearSelection()

	err := p.notes.Delete(ctx, id)
	switch {
	case err == nil:
		p.notify.Notify(NoticeDeleted)
	case errors.Is(err, apperr.ErrNotFound):
		p.notify.Notify(NoticeNoteGone)
	default:
		return err
	}
	return p.Refresh(ctx)
}

// Rows returns the loaded summaries, newest first.
func (p *ListPresenter) Rows() []models.NoteSummary {
	return p.rows
}

// Labels returns the rows rendered for display.
func (p *ListPresenter) Labels() []string {
	out := make([]string, len(p.rows))
	for i, r := range p.rows {
		out[i] = r.Label()
	}
	return out
}

// Selection returns the current selection, if any.
func (p *ListPresenter) Selection() (Selection, bool) {
	if p.selected == nil {
		return Selection{}, false
	}
	return *p.selected, true
}

// Content returns the preview text of the selected note, or "".
func (p *ListPresenter) Content() string {
	return p.content
}

func (p *ListPresenter) clearSelection() {
	p.selected = nil
	p.content = ""
}
