// Package terminal is the line-oriented front end of the notepad. It renders
// the current screen and turns typed commands into notepad actions.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/starford/notepad/internal/notepad"
)

type draft struct {
	title   string
	content string
}

// Terminal drives a notepad.App from a reader and writer.
type Terminal struct {
	in          *bufio.Reader
	out         io.Writer
	app         *notepad.App
	logger      *slog.Logger
	interactive bool
	started     bool
	draft       draft
}

// Config holds the Terminal dependencies.
type Config struct {
	Notes       notepad.Notes
	In          io.Reader
	Out         io.Writer
	Logger      *slog.Logger
	AboutText   string
	Interactive bool
}

// New creates a Terminal showing the list screen.
func New(cfg Config) *Terminal {
	t := &Terminal{
		in:          bufio.NewReader(cfg.In),
		out:         cfg.Out,
		logger:      cfg.Logger,
		interactive: cfg.Interactive,
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	t.app = notepad.New(cfg.Notes, notepad.Views{
		List: &screenView{render: t.renderList},
		Editor: &screenView{render: func() {
			t.draft = draft{}
			t.renderEditor()
		}},
		About: &screenView{render: t.renderAbout},
	}, notepad.NotifierFunc(t.notify), cfg.AboutText)
	return t
}

// App returns the driven notepad.
func (t *Terminal) App() *notepad.App { return t.app }

// Run loads the notes and processes commands until exit, back on the list
// screen, end of input, or ctx cancellation. Failures of single actions are
// reported and the loop continues.
func (t *Terminal) Run(ctx context.Context) error {
	if err := t.app.Start(ctx); err != nil {
		return err
	}
	t.started = true
	t.renderList()

	for {
		if ctx.Err() != nil {
			return nil
		}
		if t.interactive {
			t.printf("notepad [%s]> ", t.app.Screen())
		}
		line, err := readLine(t.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		quit, err := t.dispatch(ctx, line)
		if err != nil {
			t.logger.Error("action failed", slog.String("command", line), slog.String("error", err.Error()))
			t.printf("error: %v\n", err)
		}
		if quit {
			t.printf("Bye!\n")
			return nil
		}
	}
}

func (t *Terminal) dispatch(ctx context.Context, line string) (quit bool, err error) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	if cmd == "help" {
		t.render()
		return false, nil
	}
	if cmd == "back" {
		return !t.app.Back(), nil
	}

	switch t.app.Screen() {
	case notepad.ScreenList:
		return t.dispatchList(ctx, cmd, rest)
	case notepad.ScreenEditor:
		return false, t.dispatchEditor(ctx, cmd, rest)
	default:
		t.printf("Unknown command: %s\n", cmd)
		return false, nil
	}
}

func (t *Terminal) dispatchList(ctx context.Context, cmd, rest string) (bool, error) {
	switch cmd {
	case "select", "s":
		n, err := strconv.Atoi(rest)
		if err != nil {
			t.printf("Usage: select <n>\n")
			return false, nil
		}
		if err := t.app.Select(ctx, n-1); err != nil {
			return false, err
		}
		t.renderList()
	case "delete", "d":
		if err := t.app.Delete(ctx); err != nil {
			return false, err
		}
		t.renderList()
	case "add", "a":
		return false, t.app.Add()
	case "about":
		return false, t.app.About()
	case "exit", "quit", "q":
		return true, nil
	default:
		if n, err := strconv.Atoi(cmd); err == nil {
			return t.dispatchList(ctx, "select", strconv.Itoa(n))
		}
		t.printf("Unknown command: %s\n", cmd)
	}
	return false, nil
}

func (t *Terminal) dispatchEditor(ctx context.Context, cmd, rest string) error {
	switch cmd {
	case "title":
		t.draft.title = rest
	case "text":
		t.printf("Text (press Enter on an empty line to finish):\n")
		t.draft.content = readMultiline(t.in)
		t.renderEditor()
	case "save":
		saved, err := t.app.Save(ctx, t.draft.title, t.draft.content)
		if err != nil {
			return err
		}
		if saved {
			t.draft = draft{}
		}
	case "cancel":
		return t.app.Cancel()
	default:
		t.printf("Unknown command: %s\n", cmd)
	}
	return nil
}

func (t *Terminal) render() {
	switch t.app.Screen() {
	case notepad.ScreenList:
		t.renderList()
	case notepad.ScreenEditor:
		t.renderEditor()
	case notepad.ScreenAbout:
		t.renderAbout()
	}
}

func (t *Terminal) notify(msg string) {
	t.printf("! %s\n", msg)
}
