package mcpserver

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/notepad/internal/models"
	"github.com/starford/notepad/internal/noteservice"
	"github.com/starford/notepad/internal/store"
	"github.com/starford/notepad/internal/testutil"
)

func testServer(t *testing.T) (*Server, *store.DB) {
	t.Helper()
	db := testutil.TestStore(t)
	return New(noteservice.NewService(db), "About Notepad", "test"), db
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" helper, so dispatch to the handlers.
	var result *mcp.CallToolResult
	var err error
	switch name {
	case "list_notes":
		result, err = srv.listNotes(ctx, req)
	case "read_note":
		result, err = srv.readNote(ctx, req)
	case "create_note":
		result, err = srv.createNote(ctx, req)
	case "delete_note":
		result, err = srv.deleteNote(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}
	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCreateReadDelete(t *testing.T) {
	srv, db := testServer(t)

	res := callTool(t, srv, "create_note", map[string]any{"title": "Groceries", "content": "Milk, eggs"})
	if res.IsError {
		t.Fatalf("create_note: %s", resultText(res))
	}
	idText := strings.TrimPrefix(resultText(res), "created: ")
	id, err := strconv.Atoi(idText)
	if err != nil {
		t.Fatalf("unexpected create result %q", resultText(res))
	}

	res = callTool(t, srv, "read_note", map[string]any{"id": float64(id)})
	if res.IsError || resultText(res) != "Milk, eggs" {
		t.Errorf("read_note = %q (error=%v)", resultText(res), res.IsError)
	}

	res = callTool(t, srv, "delete_note", map[string]any{"id": float64(id)})
	if res.IsError {
		t.Fatalf("delete_note: %s", resultText(res))
	}
	n, _ := db.Count(context.Background())
	if n != 0 {
		t.Errorf("count after delete = %d", n)
	}
}

func TestCreateRejectsEmpty(t *testing.T) {
	srv, db := testServer(t)
	res := callTool(t, srv, "create_note", map[string]any{"title": "", "content": "x"})
	if !res.IsError {
		t.Error("expected an error result for empty title")
	}
	n, _ := db.Count(context.Background())
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestReadMissing(t *testing.T) {
	srv, _ := testServer(t)
	res := callTool(t, srv, "read_note", map[string]any{"id": float64(99)})
	if !res.IsError || !strings.Contains(resultText(res), "not found") {
		t.Errorf("read_note(99) = %q (error=%v)", resultText(res), res.IsError)
	}
	res = callTool(t, srv, "read_note", map[string]any{})
	if !res.IsError {
		t.Error("expected error when id is missing")
	}
}

func TestListNotes(t *testing.T) {
	srv, db := testServer(t)
	ctx := context.Background()
	_, _ = db.Insert(ctx, "A", "a")
	_, _ = db.Insert(ctx, "B", "b")

	res := callTool(t, srv, "list_notes", nil)
	var items []models.NoteSummary
	if err := json.Unmarshal([]byte(resultText(res)), &items); err != nil {
		t.Fatalf("decode list: %v (%q)", err, resultText(res))
	}
	if len(items) != 2 || items[0].Title != "B" {
		t.Errorf("items = %+v", items)
	}
}

func TestAboutResource(t *testing.T) {
	srv, _ := testServer(t)
	contents, err := srv.readAboutResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.Text != "About Notepad" || tc.URI != AboutURI {
		t.Errorf("resource = %+v", contents[0])
	}
}
