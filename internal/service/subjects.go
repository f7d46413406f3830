package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"campuscraft/internal/contextutil"
	"campuscraft/internal/gpa"
	"campuscraft/internal/storage"
)

// SubjectInput carries the fields for a graded subject.
type SubjectInput struct {
	Name    string `json:"name" validate:"required"`
	Credits int    `json:"credits" validate:"required,min=1"`
	Grade   string `json:"grade" validate:"required,grade"`
}

func (in *SubjectInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Grade = strings.ToUpper(strings.TrimSpace(in.Grade))
}

// SubjectPatch lists the fields to change; nil fields are left alone.
type SubjectPatch struct {
	Name    *string `json:"name"`
	Credits *int    `json:"credits"`
	Grade   *string `json:"grade"`
}

// SubjectStats summarizes the CGPA calculator.
type SubjectStats struct {
	Count        int        `json:"count"`
	TotalCredits int        `json:"totalCredits"`
	CGPA         gpa.Result `json:"cgpa"`
}

// SubjectStore owns the subject collection in insertion order.
type SubjectStore struct {
	items *collection[storage.Subject]
}

// NewSubjectStore loads the persisted subjects, falling back to seed.
func NewSubjectStore(ctx context.Context, adapter *storage.Adapter, seed []storage.Subject, _ ...Option) *SubjectStore {
	return &SubjectStore{
		items: newCollection(ctx, adapter, "subject", storage.KeySubjects, seed,
			func(s storage.Subject) string { return s.ID }),
	}
}

// List returns the subjects in the order they were added.
func (s *SubjectStore) List() []storage.Subject {
	return s.items.snapshot()
}

// Get returns one subject.
func (s *SubjectStore) Get(id string) (storage.Subject, error) {
	return s.items.get(id)
}

// Create validates the input and appends the subject with its grade points.
func (s *SubjectStore) Create(ctx context.Context, in SubjectInput) (storage.Subject, error) {
	logger := contextutil.LoggerFromContext(ctx)

	in.normalize()
	if err := validateStruct(in); err != nil {
		logger.WarnContext(ctx, "invalid subject", "error", err)
		return storage.Subject{}, err
	}

	points, _ := gpa.Points(in.Grade)
	subj := storage.Subject{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Credits:     in.Credits,
		Grade:       in.Grade,
		GradePoints: points,
	}

	err := s.items.add(ctx, subj)
	logger.InfoContext(ctx, "subject added", "id", subj.ID, "grade", subj.Grade, "credits", subj.Credits)
	return subj, err
}

// Update merges the patch and recomputes the grade points.
func (s *SubjectStore) Update(ctx context.Context, id string, patch SubjectPatch) (storage.Subject, error) {
	updated, err := s.items.replace(ctx, id, func(cur storage.Subject) (storage.Subject, error) {
		in := SubjectInput{Name: cur.Name, Credits: cur.Credits, Grade: cur.Grade}
		if patch.Name != nil {
			in.Name = *patch.Name
		}
		if patch.Credits != nil {
			in.Credits = *patch.Credits
		}
		if patch.Grade != nil {
			in.Grade = *patch.Grade
		}
		in.normalize()
		if err := validateStruct(in); err != nil {
			return cur, err
		}

		points, _ := gpa.Points(in.Grade)
		cur.Name = in.Name
		cur.Credits = in.Credits
		cur.Grade = in.Grade
		cur.GradePoints = points
		return cur, nil
	})
	if err == nil || IsPersistenceWarning(err) {
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "subject updated", "id", id)
	}
	return updated, err
}

// Delete removes the subject. Unknown ids return *NotFoundError.
func (s *SubjectStore) Delete(ctx context.Context, id string) error {
	err := s.items.remove(ctx, id)
	if err == nil || IsPersistenceWarning(err) {
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "subject deleted", "id", id)
	}
	return err
}

// CGPA computes the credit-weighted CGPA over the current subjects.
func (s *SubjectStore) CGPA() gpa.Result {
	return gpa.Compute(s.items.snapshot())
}

// Stats returns the subject count, total credits and CGPA.
func (s *SubjectStore) Stats() SubjectStats {
	res := s.CGPA()
	return SubjectStats{
		Count:        res.SubjectCount,
		TotalCredits: res.TotalCredits,
		CGPA:         res,
	}
}
