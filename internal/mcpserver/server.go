// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the notepad to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/notepad/internal/apperr"
	"github.com/starford/notepad/internal/noteservice"
)

// AboutURI is the resource URI of the about text.
const AboutURI = "notepad://about"

// Server wraps the MCP server with notepad tools.
type Server struct {
	mcp   *server.MCPServer
	svc   *noteservice.Service
	about string
}

// New creates a new MCP server with all notepad tools registered.
func New(svc *noteservice.Service, aboutText, version string) *Server {
	s := &Server{svc: svc, about: aboutText}

	s.mcp = server.NewMCPServer(
		"Notepad",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List all notes, newest first, as id, title and creation time."),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full content of a note."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id from list_notes")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new note. Title and content must both be non-empty. Notes cannot be edited afterwards."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Note title")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Note text")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a note by id."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id from list_notes")),
	), s.deleteNote)

	s.mcp.AddResource(
		mcp.NewResource(AboutURI, "About Notepad",
			mcp.WithResourceDescription("What this notepad is."),
			mcp.WithMIMEType("text/plain"),
		),
		s.readAboutResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listNotes(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.svc.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.svc.Get(ctx, int64(id))
	if err != nil {
		return toolError(err, id), nil
	}
	return mcp.NewToolResultText(note.Content), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.svc.Create(ctx, noteservice.NoteInput{Title: title, Content: content})
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			return mcp.NewToolResultError("title and content must both be non-empty"), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %d", note.ID)), nil
}

func (s *Server) deleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.Delete(ctx, int64(id)); err != nil {
		return toolError(err, id), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %d", id)), nil
}

func (s *Server) readAboutResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      AboutURI,
			MIMEType: "text/plain",
			Text:     s.about,
		},
	}, nil
}

func toolError(err error, id int) *mcp.CallToolResult {
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %d", id))
	}
	return mcp.NewToolResultError(err.Error())
}
