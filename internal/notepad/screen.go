package notepad

import (
	"fmt"

	"github.com/starford/notepad/internal/apperr"
)

// Screen is one of the mutually exclusive screens.
type Screen int

const (
	ScreenList Screen = iota
	ScreenEditor
	ScreenAbout
)

func (s Screen) String() string {
	switch s {
	case ScreenList:
		return "list"
	case ScreenEditor:
		return "editor"
	case ScreenAbout:
		return "about"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

// View is the rendering side of a screen.
type View interface {
	Show()
	Hide()
}

// transitions lists the screens reachable from each screen. Editor and
// About only connect through List.
var transitions = map[Screen][]Screen{
	ScreenList:   {ScreenEditor, ScreenAbout},
	ScreenEditor: {ScreenList},
	ScreenAbout:  {ScreenList},
}

// Controller owns the current screen. Exactly one view is shown at a time.
type Controller struct {
	current Screen
	views   map[Screen]View
}

// NewController starts on ScreenList and shows its view. Missing views are
// treated as no-ops.
func NewController(views map[Screen]View) *Controller {
	c := &Controller{current: ScreenList, views: views}
	c.view(ScreenList).Show()
	return c
}

// Current returns the visible screen.
func (c *Controller) Current() Screen {
	return c.current
}

// GoTo switches to screen to, hiding the current view first. Disallowed
// transitions return apperr.ErrInvalidTransition and change nothing.
func (c *Controller) GoTo(to Screen) error {
	if !c.allowed(to) {
		return fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, c.current, to)
	}
	c.view(c.current).Hide()
	c.current = to
	c.view(to).Show()
	return nil
}

// Back handles the back action. From Editor or About it returns to List and
// reports true. On List it does nothing and reports false, leaving the
// default behaviour (exit) to the caller.
func (c *Controller) Back() bool {
	if c.current == ScreenList {
		return false
	}
	// Every non-list screen leads back to List.
	_ = c.GoTo(ScreenList)
	return true
}

// Require returns an error unless s is the current screen.
func (c *Controller) Require(s Screen) error {
	if c.current != s {
		return fmt.Errorf("%w: action needs %s screen, current is %s", apperr.ErrInvalidTransition, s, c.current)
	}
	return nil
}

func (c *Controller) allowed(to Screen) bool {
	for _, s := range transitions[c.current] {
		if s == to {
			return true
		}
	}
	return false
}

func (c *Controller) view(s Screen) View {
	if v, ok := c.views[s]; ok && v != nil {
		return v
	}
	return nopView{}
}

type nopView struct{}

func (nopView) Show() {}
func (nopView) Hide() {}
