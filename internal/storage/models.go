package storage

import "time"

// Fixed keys under which each collection is persisted as a single JSON document.
const (
	KeyAssignments = "assignments"
	KeySubjects    = "subjects"
	KeyNotes       = "notes"
	KeyResources   = "resources"
)

// DateLayout is the calendar-date format used for assignment due dates.
const DateLayout = "2006-01-02"

// Priority of an assignment.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status of an assignment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// NoteType determines which media reference, if any, a note carries.
type NoteType string

const (
	NoteText  NoteType = "text"
	NoteAudio NoteType = "audio"
	NoteImage NoteType = "image"
)

// ResourceType classifies a study resource.
type ResourceType string

const (
	ResourceBook     ResourceType = "book"
	ResourceVideo    ResourceType = "video"
	ResourceDocument ResourceType = "document"
	ResourceWebsite  ResourceType = "website"
)

// ResourceTypes lists every resource type in display order.
func ResourceTypes() []ResourceType {
	return []ResourceType{ResourceBook, ResourceVideo, ResourceDocument, ResourceWebsite}
}

// Assignment is a tracked piece of coursework.
type Assignment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	DueDate     string    `json:"dueDate"` // YYYY-MM-DD
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Subject is a graded course used for the CGPA.
// GradePoints is always derived from Grade.
type Subject struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Credits     int     `json:"credits"`
	Grade       string  `json:"grade"`
	GradePoints float64 `json:"gradePoints"`
}

// Note is a text, audio or image note.
type Note struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Type            NoteType  `json:"type"`
	CreatedAt       time.Time `json:"createdAt"`
	Tags            []string  `json:"tags"`
	AudioURL        string    `json:"audioUrl,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	MediaType       string    `json:"mediaType,omitempty"`
	DurationSeconds float64   `json:"durationSeconds,omitempty"`
}

// Resource is a curated study resource.
type Resource struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	URL         string       `json:"url"`
	Type        ResourceType `json:"type"`
	Subject     string       `json:"subject"`
	Rating      int          `json:"rating"` // 0 (unrated) through 5
	AddedAt     time.Time    `json:"addedAt"`
	Tags        []string     `json:"tags"`
}
