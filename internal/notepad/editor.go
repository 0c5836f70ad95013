package notepad

import (
	"context"

	"github.com/starford/notepad/internal/noteservice"
)

// Editor is the add-note form.
type Editor struct {
	notes  Notes
	ctrl   *Controller
	list   *ListPresenter
	notify Notifier
}

// NewEditor creates an editor that returns to list after saving.
func NewEditor(notes Notes, ctrl *Controller, list *ListPresenter, notify Notifier) *Editor {
	return &Editor{notes: notes, ctrl: ctrl, list: list, notify: notify}
}

// Open switches to the editor screen with empty fields.
func (e *Editor) Open() error {
	return e.ctrl.GoTo(ScreenEditor)
}

// Save stores a note and returns to the list, which is reloaded. If either
// field is empty it shows a notice and stays on the editor; saved is false.
func (e *Editor) Save(ctx context.Context, title, content string) (saved bool, err error) {
	if err := e.ctrl.Require(ScreenEditor); err != nil {
		return false, err
	}
	in := noteservice.NoteInput{Title: title, Content: content}
	if in.Validate() != nil {
		e.notify.Notify(NoticeFillAllFields)
		return false, nil
	}
	if _, err := e.notes.Create(ctx, in); err != nil {
		return false, err
	}
	e.notify.Notify(NoticeSaved)
	// Reload before switching so the list screen shows the new note.
	refreshErr := e.list.Refresh(ctx)
	if err := e.ctrl.GoTo(ScreenList); err != nil {
		return true, err
	}
	return true, refreshErr
}

// Cancel returns to the list without saving. The list keeps its selection.
func (e *Editor) Cancel() error {
	if err := e.ctrl.Require(ScreenEditor); err != nil {
		return err
	}
	return e.ctrl.GoTo(ScreenList)
}
