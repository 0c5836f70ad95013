package api

import "github.com/starford/notepad/internal/models"

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Title   string `json:"title" example:"Groceries" validate:"required"`
	Content string `json:"content" example:"Milk, eggs" validate:"required"`
}

// NoteListResponse wraps the newest-first note listing.
type NoteListResponse struct {
	Notes []models.NoteSummary `json:"notes" validate:"required"`
	Total int                  `json:"total" example:"2" validate:"required"`
}

// AboutResponse carries the about screen text.
type AboutResponse struct {
	Text string `json:"text" example:"Notepad" validate:"required"`
}
