package notepad_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/notepad/internal/apperr"
	"github.com/starford/notepad/internal/models"
	"github.com/starford/notepad/internal/notepad"
	"github.com/starford/notepad/internal/noteservice"
	"github.com/starford/notepad/internal/store"
	"github.com/starford/notepad/internal/testutil"
)

type notices struct{ msgs []string }

func (n *notices) Notify(msg string) { n.msgs = append(n.msgs, msg) }

func (n *notices) last() string {
	if len(n.msgs) == 0 {
		return ""
	}
	return n.msgs[len(n.msgs)-1]
}

func newApp(t *testing.T) (*notepad.App, *store.DB, *notices) {
	t.Helper()
	db := testutil.TestStore(t)
	n := &notices{}
	app := notepad.New(noteservice.NewService(db), notepad.Views{}, n, "About text")
	require.NoError(t, app.Start(context.Background()))
	return app, db, n
}

func addNote(t *testing.T, app *notepad.App, title, content string) {
	t.Helper()
	require.NoError(t, app.Add())
	saved, err := app.Save(context.Background(), title, content)
	require.NoError(t, err)
	require.True(t, saved)
}

func titles(rows []models.NoteSummary) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Title
	}
	return out
}

func TestScenario_AddSelectDelete(t *testing.T) {
	ctx := context.Background()
	app, db, n := newApp(t)

	addNote(t, app, "A", "content A")
	addNote(t, app, "B", "content B")

	assert.Equal(t, notepad.ScreenList, app.Screen())
	assert.Equal(t, []string{"B", "A"}, titles(app.List().Rows()))

	require.NoError(t, app.Select(ctx, 0))
	assert.Equal(t, "content B", app.List().Content())
	sel, ok := app.List().Selection()
	require.True(t, ok)
	assert.Equal(t, 0, sel.Position)

	require.NoError(t, app.Delete(ctx))
	assert.Equal(t, notepad.NoticeDeleted, n.last())
	_, ok = app.List().Selection()
	assert.False(t, ok)
	assert.Empty(t, app.List().Content())

	rows, err := db.ListSummaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, titles(rows))
	assert.Equal(t, []string{"A"}, titles(app.List().Rows()))
}

func TestDeleteWithoutSelection(t *testing.T) {
	ctx := context.Background()
	app, db, n := newApp(t)
	addNote(t, app, "keep", "me")

	require.NoError(t, app.Delete(ctx))
	assert.Equal(t, notepad.NoticeSelectToDelete, n.last())
	count, _ := db.Count(ctx)
	assert.Equal(t, 1, count)
}

func TestSaveRejectsEmptyFields(t *testing.T) {
	ctx := context.Background()
	cases := []struct{ title, content string }{
		{"", "nonempty"},
		{"nonempty", ""},
		{"", ""},
	}
	for _, tc := range cases {
		app, db, n := newApp(t)
		require.NoError(t, app.Add())

		saved, err := app.Save(ctx, tc.title, tc.content)
		require.NoError(t, err)
		assert.False(t, saved)
		assert.Equal(t, notepad.NoticeFillAllFields, n.last())
		assert.Equal(t, notepad.ScreenEditor, app.Screen())
		count, _ := db.Count(ctx)
		assert.Zero(t, count)
	}
}

func TestSaveNoticesAndReturnsToList(t *testing.T) {
	app, _, n := newApp(t)
	addNote(t, app, "T", "C")

	assert.Equal(t, notepad.NoticeSaved, n.last())
	assert.Equal(t, notepad.ScreenList, app.Screen())
	require.Len(t, app.List().Rows(), 1)
	assert.Equal(t, "T", app.List().Rows()[0].Title)
}

func TestSaveClearsSelection(t *testing.T) {
	ctx := context.Background()
	app, _, _ := newApp(t)
	addNote(t, app, "first", "1")
	require.NoError(t, app.Select(ctx, 0))

	addNote(t, app, "second", "2")
	_, ok := app.List().Selection()
	assert.False(t, ok, "reload after save clears the selection")
}

func TestCancelKeepsSelectionAndStoresNothing(t *testing.T) {
	ctx := context.Background()
	app, db, _ := newApp(t)
	addNote(t, app, "first", "1")
	require.NoError(t, app.Select(ctx, 0))

	require.NoError(t, app.Add())
	require.NoError(t, app.Cancel())
	assert.Equal(t, notepad.ScreenList, app.Screen())

	sel, ok := app.List().Selection()
	assert.True(t, ok)
	assert.Equal(t, 0, sel.Position)
	assert.Equal(t, "1", app.List().Content())
	count, _ := db.Count(ctx)
	assert.Equal(t, 1, count)
}

func TestBackNavigation(t *testing.T) {
	app, _, _ := newApp(t)

	require.NoError(t, app.Add())
	assert.True(t, app.Back())
	assert.Equal(t, notepad.ScreenList, app.Screen())

	require.NoError(t, app.About())
	assert.Equal(t, notepad.ScreenAbout, app.Screen())
	assert.Equal(t, "About text", app.AboutText())
	assert.True(t, app.Back())

	assert.False(t, app.Back())
}

func TestListActionsRequireListScreen(t *testing.T) {
	ctx := context.Background()
	app, _, _ := newApp(t)
	require.NoError(t, app.About())

	assert.ErrorIs(t, app.Select(ctx, 0), apperr.ErrInvalidTransition)
	assert.ErrorIs(t, app.Delete(ctx), apperr.ErrInvalidTransition)
	assert.ErrorIs(t, app.Add(), apperr.ErrInvalidTransition)
	_, err := app.Save(ctx, "t", "c")
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
}

func TestSelectOutOfRange(t *testing.T) {
	ctx := context.Background()
	app, _, n := newApp(t)
	addNote(t, app, "only", "one")

	require.NoError(t, app.Select(ctx, 3))
	assert.Equal(t, notepad.NoticeNoSuchNote, n.last())
	_, ok := app.List().Selection()
	assert.False(t, ok)
}

func TestSelectionSurvivesConcurrentInsert(t *testing.T) {
	// A note inserted behind the list's back shifts positions; the captured
	// id still names the note the user selected.
	ctx := context.Background()
	app, db, _ := newApp(t)
	addNote(t, app, "target", "target body")
	require.NoError(t, app.Select(ctx, 0))

	_, err := db.Insert(ctx, "intruder", "intruder body")
	require.NoError(t, err)

	require.NoError(t, app.Delete(ctx))
	rows, _ := db.ListSummaries(ctx)
	assert.Equal(t, []string{"intruder"}, titles(rows))
}

func TestSelectNoteDeletedElsewhere(t *testing.T) {
	ctx := context.Background()
	app, db, n := newApp(t)
	addNote(t, app, "doomed", "x")
	id := app.List().Rows()[0].ID
	require.NoError(t, db.Delete(ctx, id))

	require.NoError(t, app.Select(ctx, 0))
	assert.Equal(t, notepad.NoticeNoteGone, n.last())
	assert.Empty(t, app.List().Rows())
}

type failingNotes struct {
	notepad.Notes
	deleteErr error
}

func (f failingNotes) Delete(context.Context, int64) error { return f.deleteErr }

func TestDeleteStorageFailureStillClearsSelection(t *testing.T) {
	ctx := context.Background()
	db := testutil.TestStore(t)
	_, err := db.Insert(ctx, "x", "y")
	require.NoError(t, err)

	boom := errors.New("disk on fire")
	notes := failingNotes{Notes: noteservice.NewService(db), deleteErr: boom}
	app := notepad.New(notes, notepad.Views{}, &notices{}, "")
	require.NoError(t, app.Start(ctx))
	require.NoError(t, app.Select(ctx, 0))

	assert.ErrorIs(t, app.Delete(ctx), boom)
	_, ok := app.List().Selection()
	assert.False(t, ok)
	assert.Empty(t, app.List().Content())
}

func TestLabels(t *testing.T) {
	app, _, _ := newApp(t)
	addNote(t, app, "Groceries", "Milk, eggs")
	labels := app.List().Labels()
	require.Len(t, labels, 1)
	assert.Regexp(t, `^Groceries \(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\)$`, labels[0])
}
