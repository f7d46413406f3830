package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"campuscraft/internal/contextutil"
	"campuscraft/internal/storage"
)

// AssignmentInput carries the user-entered fields for a new assignment.
type AssignmentInput struct {
	Title       string           `json:"title" validate:"required"`
	Subject     string           `json:"subject" validate:"required"`
	DueDate     string           `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Priority    storage.Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
	Description string           `json:"description"`
}

func (in *AssignmentInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Subject = strings.TrimSpace(in.Subject)
	in.DueDate = strings.TrimSpace(in.DueDate)
	in.Description = strings.TrimSpace(in.Description)
}

// AssignmentPatch lists the fields to change; nil fields are left alone.
type AssignmentPatch struct {
	Title       *string           `json:"title"`
	Subject     *string           `json:"subject"`
	DueDate     *string           `json:"dueDate"`
	Priority    *storage.Priority `json:"priority"`
	Description *string           `json:"description"`
	Status      *storage.Status   `json:"status"`
}

// AssignmentStats summarizes the tracker.
type AssignmentStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// AssignmentView is an assignment with its due-date status relative to now.
type AssignmentView struct {
	storage.Assignment
	DaysUntilDue int    `json:"daysUntilDue"`
	Overdue      bool   `json:"overdue"`
	TimeStatus   string `json:"timeStatus"`
}

// AssignmentStore owns the assignment collection, newest first.
type AssignmentStore struct {
	items *collection[storage.Assignment]
	now   func() time.Time
}

// NewAssignmentStore loads the persisted assignments, falling back to seed.
func NewAssignmentStore(ctx context.Context, adapter *storage.Adapter, seed []storage.Assignment, opts ...Option) *AssignmentStore {
	o := buildOptions(opts)
	return &AssignmentStore{
		items: newCollection(ctx, adapter, "assignment", storage.KeyAssignments, seed,
			func(a storage.Assignment) string { return a.ID }),
		now: o.now,
	}
}

// List returns the assignments, newest first.
func (s *AssignmentStore) List() []storage.Assignment {
	return s.items.snapshot()
}

// Views returns the assignments with their due-date status.
func (s *AssignmentStore) Views() []AssignmentView {
	now := s.now()
	list := s.items.snapshot()
	out := make([]AssignmentView, 0, len(list))
	for _, a := range list {
		v := AssignmentView{Assignment: a}
		if days, err := DaysUntilDue(a.DueDate, now); err == nil {
			v.DaysUntilDue = days
			v.Overdue = isOverdue(a, days)
		}
		v.TimeStatus = TimeStatus(a, now)
		out = append(out, v)
	}
	return out
}

// Get returns one assignment.
func (s *AssignmentStore) Get(id string) (storage.Assignment, error) {
	return s.items.get(id)
}

// Create validates the input and inserts a pending assignment at the front.
func (s *AssignmentStore) Create(ctx context.Context, in AssignmentInput) (storage.Assignment, error) {
	logger := contextutil.LoggerFromContext(ctx)

	in.normalize()
	if err := validateStruct(in); err != nil {
		logger.WarnContext(ctx, "invalid assignment", "error", err)
		return storage.Assignment{}, err
	}
	if in.Priority == "" {
		in.Priority = storage.PriorityMedium
	}

	a := storage.Assignment{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Subject:     in.Subject,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Status:      storage.StatusPending,
		Description: in.Description,
		CreatedAt:   s.now(),
	}

	err := s.items.prepend(ctx, a)
	logger.InfoContext(ctx, "assignment created", "id", a.ID, "due", a.DueDate)
	return a, err
}

// Update merges the patch into the assignment and revalidates it.
func (s *AssignmentStore) Update(ctx context.Context, id string, patch AssignmentPatch) (storage.Assignment, error) {
	updated, err := s.items.replace(ctx, id, func(cur storage.Assignment) (storage.Assignment, error) {
		in := AssignmentInput{
			Title:       cur.Title,
			Subject:     cur.Subject,
			DueDate:     cur.DueDate,
			Priority:    cur.Priority,
			Description: cur.Description,
		}
		if patch.Title != nil {
			in.Title = *patch.Title
		}
		if patch.Subject != nil {
			in.Subject = *patch.Subject
		}
		if patch.DueDate != nil {
			in.DueDate = *patch.DueDate
		}
		if patch.Priority != nil {
			in.Priority = *patch.Priority
		}
		if patch.Description != nil {
			in.Description = *patch.Description
		}
		in.normalize()
		if err := validateStruct(in); err != nil {
			return cur, err
		}

		next := cur
		next.Title = in.Title
		next.Subject = in.Subject
		next.DueDate = in.DueDate
		next.Priority = in.Priority
		next.Description = in.Description
		if patch.Status != nil {
			if *patch.Status != storage.StatusPending && *patch.Status != storage.StatusCompleted {
				return cur, newValidationError("status", "status must be one of [pending completed]")
			}
			next.Status = *patch.Status
		}
		return next, nil
	})
	if err == nil || IsPersistenceWarning(err) {
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "assignment updated", "id", id)
	}
	return updated, err
}

// ToggleStatus flips the assignment between pending and completed.
func (s *AssignmentStore) ToggleStatus(ctx context.Context, id string) (storage.Assignment, error) {
	updated, err := s.items.replace(ctx, id, func(cur storage.Assignment) (storage.Assignment, error) {
		if cur.Status == storage.StatusPending {
			cur.Status = storage.StatusCompleted
		} else {
			cur.Status = storage.StatusPending
		}
		return cur, nil
	})
	if err == nil || IsPersistenceWarning(err) {
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "assignment status toggled", "id", id, "status", updated.Status)
	}
	return updated, err
}

// Delete removes the assignment. Unknown ids return *NotFoundError.
func (s *AssignmentStore) Delete(ctx context.Context, id string) error {
	err := s.items.remove(ctx, id)
	if err == nil || IsPersistenceWarning(err) {
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "assignment deleted", "id", id)
	}
	return err
}

// Stats counts pending, completed and overdue assignments.
func (s *AssignmentStore) Stats() AssignmentStats {
	now := s.now()
	var st AssignmentStats
	for _, a := range s.items.snapshot() {
		st.Total++
		switch a.Status {
		case storage.StatusPending:
			st.Pending++
		case storage.StatusCompleted:
			st.Completed++
		}
		if days, err := DaysUntilDue(a.DueDate, now); err == nil && isOverdue(a, days) {
			st.Overdue++
		}
	}
	return st
}

func isOverdue(a storage.Assignment, days int) bool {
	return a.Status == storage.StatusPending && days < 0
}

// DaysUntilDue returns ceil((dueDate - now) / 24h), with dueDate taken at midnight in now's
// location. A date of today yields 0 and past dates are negative.
func DaysUntilDue(dueDate string, now time.Time) (int, error) {
	due, err := time.ParseInLocation(storage.DateLayout, dueDate, now.Location())
	if err != nil {
		return 0, fmt.Errorf("invalid due date %q: %w", dueDate, err)
	}
	days := math.Ceil(due.Sub(now).Hours() / 24)
	if days == 0 {
		// ceil of a small negative fraction is -0
		return 0, nil
	}
	return int(days), nil
}

// TimeStatus is the human label for an assignment's deadline.
func TimeStatus(a storage.Assignment, now time.Time) string {
	if a.Status == storage.StatusCompleted {
		return "Completed"
	}
	days, err := DaysUntilDue(a.DueDate, now)
	if err != nil {
		return "No due date"
	}
	switch {
	case days < 0:
		return fmt.Sprintf("Overdue by %d %s", -days, plural(-days, "day"))
	case days == 0:
		return "Due today"
	default:
		return fmt.Sprintf("%d %s remaining", days, plural(days, "day"))
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
