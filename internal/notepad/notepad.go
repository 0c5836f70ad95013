package notepad

import (
	"context"
)

// Views holds one view per screen. Nil entries are allowed.
type Views struct {
	List   View
	Editor View
	About  View
}

// App wires the controller, list presenter and editor together and exposes
// the user actions of every screen.
type App struct {
	ctrl   *Controller
	list   *ListPresenter
	editor *Editor
	about  string
}

// New builds an App starting on the list screen. Call Start to load notes.
func New(notes Notes, views Views, notify Notifier, aboutText string) *App {
	ctrl := NewController(map[Screen]View{
		ScreenList:   views.List,
		ScreenEditor: views.Editor,
		ScreenAbout:  views.About,
	})
	list := NewListPresenter(notes, notify)
	return &App{
		ctrl:   ctrl,
		list:   list,
		editor: NewEditor(notes, ctrl, list, notify),
		about:  aboutText,
	}
}

// Start loads the note list.
func (a *App) Start(ctx context.Context) error {
	return a.list.Refresh(ctx)
}

// Screen returns the visible screen.
func (a *App) Screen() Screen { return a.ctrl.Current() }

// List returns the list presenter.
func (a *App) List() *ListPresenter { return a.list }

// AboutText returns the text of the about screen.
func (a *App) AboutText() string { return a.about }

// Select selects a row on the list screen.
func (a *App) Select(ctx context.Context, position int) error {
	if err := a.ctrl.Require(ScreenList); err != nil {
		return err
	}
	return a.list.SelectAt(ctx, position)
}

// Delete deletes the selected note.
func (a *App) Delete(ctx context.Context) error {
	if err := a.ctrl.Require(ScreenList); err != nil {
		return err
	}
	return a.list.DeleteSelected(ctx)
}

// Add opens the editor.
func (a *App) Add() error {
	return a.editor.Open()
}

// About opens the about screen.
func (a *App) About() error {
	return a.ctrl.GoTo(ScreenAbout)
}

// Save saves the editor form. See Editor.Save.
func (a *App) Save(ctx context.Context, title, content string) (bool, error) {
	return a.editor.Save(ctx, title, content)
}

// Cancel leaves the editor without saving.
func (a *App) Cancel() error {
	return a.editor.Cancel()
}

// Back performs back navigation and reports whether it was handled. An
// unhandled back on the list screen means the caller should exit.
func (a *App) Back() bool {
	return a.ctrl.Back()
}
