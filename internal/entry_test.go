package internal

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunTerminal_PersistsAcrossSessions(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "notepad.db")
	ctx := context.Background()

	var out bytes.Buffer
	script := "add\ntitle Groceries\ntext\nMilk, eggs\n\nsave\nexit\n"
	err := RunTerminal(ctx,
		WithConfig(cfg),
		WithIO(strings.NewReader(script), &out, false),
		WithLogOutput(io.Discard),
	)
	if err != nil {
		t.Fatalf("first session: %v", err)
	}

	out.Reset()
	err = RunTerminal(ctx,
		WithConfig(cfg),
		WithIO(strings.NewReader("select 1\nexit\n"), &out, false),
		WithLogOutput(io.Discard),
	)
	if err != nil {
		t.Fatalf("second session: %v", err)
	}
	if !strings.Contains(out.String(), "Milk, eggs") {
		t.Errorf("second session did not show stored note:\n%s", out.String())
	}
}

func TestRunTerminal_RequiresConfig(t *testing.T) {
	if err := RunTerminal(context.Background()); err == nil {
		t.Fatal("expected error without config")
	}
}

func TestRunTerminal_AboutText(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "notepad.db")
	cfg.About.Text = "Custom about"

	var out bytes.Buffer
	err := RunTerminal(context.Background(),
		WithConfig(cfg),
		WithIO(strings.NewReader("about\nback\nexit\n"), &out, false),
		WithLogOutput(io.Discard),
	)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Custom about") {
		t.Errorf("about text missing:\n%s", out.String())
	}
}
