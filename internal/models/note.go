// Package models defines the domain types for Notepad.
package models

import "time"

// DateLayout is how note timestamps are rendered in list rows.
const DateLayout = "2006-01-02 15:04:05"

// Note is a persisted note. Notes are created and deleted, never edited.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteSummary is the lightweight row returned by list operations.
// Content is loaded on demand.
type NoteSummary struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Label renders the summary the way the list screen shows it: "title (date)".
func (s NoteSummary) Label() string {
	return s.Title + " (" + s.CreatedAt.Format(DateLayout) + ")"
}
