package service

import (
	"context"
	"time"

	"campuscraft/internal/storage"
)

// Seed holds the starting contents of each collection.
type Seed struct {
	Assignments []storage.Assignment
	Subjects    []storage.Subject
	Notes       []storage.Note
	Resources   []storage.Resource
}

// DefaultSeed returns the sample data shown to a new user. Timestamps are relative to now.
func DefaultSeed(now time.Time) Seed {
	day := 24 * time.Hour
	return Seed{
		Assignments: []storage.Assignment{
			{
				ID:          "1",
				Title:       "Mathematics Assignment",
				Subject:     "Calculus",
				DueDate:     "2024-02-15",
				Priority:    storage.PriorityHigh,
				Status:      storage.StatusPending,
				Description: "Solve problems 1-10 from Chapter 5",
				CreatedAt:   now,
			},
			{
				ID:          "2",
				Title:       "History Essay",
				Subject:     "World History",
				DueDate:     "2024-02-20",
				Priority:    storage.PriorityMedium,
				Status:      storage.StatusCompleted,
				Description: "Write about Industrial Revolution impact",
				CreatedAt:   now,
			},
		},
		Subjects: []storage.Subject{
			{ID: "1", Name: "Mathematics", Credits: 4, Grade: "A", GradePoints: 4.0},
			{ID: "2", Name: "Physics", Credits: 3, Grade: "B+", GradePoints: 3.3},
		},
		Notes: []storage.Note{
			{
				ID:        "1",
				Title:     "Physics Lecture - Wave Motion",
				Content:   "Key concepts: frequency, wavelength, amplitude. Remember to review interference patterns.",
				Type:      storage.NoteText,
				CreatedAt: now,
				Tags:      []string{"physics", "lecture"},
			},
			{
				ID:        "2",
				Title:     "Math Formula Notes",
				Content:   "Integration by parts and substitution methods",
				Type:      storage.NoteText,
				CreatedAt: now.Add(-day),
				Tags:      []string{"math", "formulas"},
			},
		},
		Resources: []storage.Resource{
			{
				ID:          "1",
				Title:       "Khan Academy - Calculus",
				Description: "Complete calculus course with interactive exercises and video tutorials",
				URL:         "https://khanacademy.org/calculus",
				Type:        storage.ResourceVideo,
				Subject:     "Mathematics",
				Rating:      5,
				AddedAt:     now,
				Tags:        []string{"calculus", "free", "interactive"},
			},
			{
				ID:          "2",
				Title:       "MIT OpenCourseWare - Physics",
				Description: "Free physics courses from MIT with lecture notes and problem sets",
				URL:         "https://ocw.mit.edu/physics",
				Type:        storage.ResourceDocument,
				Subject:     "Physics",
				Rating:      5,
				AddedAt:     now.Add(-day),
				Tags:        []string{"physics", "mit", "free"},
			},
			{
				ID:          "3",
				Title:       "Introduction to Algorithms (CLRS)",
				Description: "Comprehensive textbook covering algorithms and data structures",
				URL:         "https://mitpress.mit.edu/books/introduction-algorithms",
				Type:        storage.ResourceBook,
				Subject:     "Computer Science",
				Rating:      4,
				AddedAt:     now.Add(-2 * day),
				Tags:        []string{"algorithms", "textbook", "computer-science"},
			},
		},
	}
}

// Stores bundles the four entity stores.
type Stores struct {
	Assignments *AssignmentStore
	Subjects    *SubjectStore
	Notes       *NoteStore
	Resources   *ResourceStore
}

// NewStores builds every store over the same adapter.
func NewStores(ctx context.Context, adapter *storage.Adapter, seed Seed, opts ...Option) *Stores {
	return &Stores{
		Assignments: NewAssignmentStore(ctx, adapter, seed.Assignments, opts...),
		Subjects:    NewSubjectStore(ctx, adapter, seed.Subjects, opts...),
		Notes:       NewNoteStore(ctx, adapter, seed.Notes, opts...),
		Resources:   NewResourceStore(ctx, adapter, seed.Resources, opts...),
	}
}
