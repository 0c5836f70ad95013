package terminal

import (
	"fmt"
	"strings"
)

// screenView adapts a render function to notepad.View. The terminal has
// nothing to erase, so Hide only marks the view as gone.
type screenView struct {
	render  func()
	visible bool
}

func (v *screenView) Show() {
	v.visible = true
	v.render()
}

func (v *screenView) Hide() {
	v.visible = false
}

func (t *Terminal) renderList() {
	if !t.started {
		return
	}
	list := t.app.List()
	t.printf("\n== Notes ==\n")
	labels := list.Labels()
	if len(labels) == 0 {
		t.printf("  (no notes)\n")
	}
	sel, hasSel := list.Selection()
	for i, l := range labels {
		marker := " "
		if hasSel && sel.Position == i {
			marker = ">"
		}
		t.printf("%s %d. %s\n", marker, i+1, l)
	}
	if content := list.Content(); content != "" {
		t.printf("-- %s --\n%s\n", labels[sel.Position], content)
	}
	t.printf("Commands: select <n>, delete, add, about, exit\n")
}

func (t *Terminal) renderEditor() {
	t.printf("\n== New note ==\n")
	t.printf("Title: %s\n", t.draft.title)
	if t.draft.content == "" {
		t.printf("Text:\n")
	} else {
		t.printf("Text:\n%s\n", indent(t.draft.content))
	}
	t.printf("Commands: title <text>, text, save, back\n")
}

func (t *Terminal) renderAbout() {
	t.printf("\n== About ==\n%s\n", t.app.AboutText())
	t.printf("Commands: back\n")
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}

func (t *Terminal) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(t.out, format, args...)
}
