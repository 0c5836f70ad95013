package notepad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/notepad/internal/apperr"
)

// recordingView tracks visibility and the order of Show/Hide calls.
type recordingView struct {
	name    string
	visible bool
	log     *[]string
}

func (v *recordingView) Show() {
	v.visible = true
	*v.log = append(*v.log, "show "+v.name)
}

func (v *recordingView) Hide() {
	v.visible = false
	*v.log = append(*v.log, "hide "+v.name)
}

func newRecordingViews() (map[Screen]View, map[Screen]*recordingView, *[]string) {
	log := &[]string{}
	rec := map[Screen]*recordingView{
		ScreenList:   {name: "list", log: log},
		ScreenEditor: {name: "editor", log: log},
		ScreenAbout:  {name: "about", log: log},
	}
	views := make(map[Screen]View, len(rec))
	for s, v := range rec {
		views[s] = v
	}
	return views, rec, log
}

func visibleCount(rec map[Screen]*recordingView) int {
	n := 0
	for _, v := range rec {
		if v.visible {
			n++
		}
	}
	return n
}

func TestController_StartsOnList(t *testing.T) {
	views, rec, _ := newRecordingViews()
	c := NewController(views)

	assert.Equal(t, ScreenList, c.Current())
	assert.True(t, rec[ScreenList].visible)
	assert.Equal(t, 1, visibleCount(rec))
}

func TestController_AllowedTransitions(t *testing.T) {
	cases := []struct {
		name string
		path []Screen
	}{
		{"list to editor and back", []Screen{ScreenEditor, ScreenList}},
		{"list to about and back", []Screen{ScreenAbout, ScreenList}},
		{"editor then about via list", []Screen{ScreenEditor, ScreenList, ScreenAbout, ScreenList}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			views, rec, _ := newRecordingViews()
			c := NewController(views)
			for _, s := range tc.path {
				require.NoError(t, c.GoTo(s))
				assert.Equal(t, s, c.Current())
				assert.True(t, rec[s].visible)
				assert.Equal(t, 1, visibleCount(rec))
			}
		})
	}
}

func TestController_RejectsDirectEditorAbout(t *testing.T) {
	views, rec, _ := newRecordingViews()
	c := NewController(views)
	require.NoError(t, c.GoTo(ScreenEditor))

	err := c.GoTo(ScreenAbout)
	require.ErrorIs(t, err, apperr.ErrInvalidTransition)
	assert.Equal(t, ScreenEditor, c.Current())
	assert.True(t, rec[ScreenEditor].visible)
	assert.Equal(t, 1, visibleCount(rec))

	require.NoError(t, c.GoTo(ScreenList))
	require.NoError(t, c.GoTo(ScreenAbout))
	assert.ErrorIs(t, c.GoTo(ScreenEditor), apperr.ErrInvalidTransition)
}

func TestController_RejectsSelfTransition(t *testing.T) {
	c := NewController(nil)
	assert.ErrorIs(t, c.GoTo(ScreenList), apperr.ErrInvalidTransition)
}

func TestController_HidesBeforeShowing(t *testing.T) {
	views, _, log := newRecordingViews()
	c := NewController(views)
	require.NoError(t, c.GoTo(ScreenAbout))

	assert.Equal(t, []string{"show list", "hide list", "show about"}, *log)
}

func TestController_Back(t *testing.T) {
	c := NewController(nil)
	assert.False(t, c.Back(), "back on list is left to the caller")
	assert.Equal(t, ScreenList, c.Current())

	require.NoError(t, c.GoTo(ScreenEditor))
	assert.True(t, c.Back())
	assert.Equal(t, ScreenList, c.Current())

	require.NoError(t, c.GoTo(ScreenAbout))
	assert.True(t, c.Back())
	assert.Equal(t, ScreenList, c.Current())
}

func TestScreenString(t *testing.T) {
	assert.Equal(t, "list", ScreenList.String())
	assert.Equal(t, "editor", ScreenEditor.String())
	assert.Equal(t, "about", ScreenAbout.String())
	assert.Equal(t, "screen(7)", Screen(7).String())
}
