package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"campuscraft/internal/contextutil"
	"campuscraft/internal/search"
	"campuscraft/internal/storage"
)

// ResourceInput carries the fields for a study resource.
type ResourceInput struct {
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description"`
	URL         string               `json:"url" validate:"required,url"`
	Type        storage.ResourceType `json:"type" validate:"omitempty,oneof=book video document website"`
	Subject     string               `json:"subject" validate:"required"`
	Tags        []string             `json:"tags"`
}

func (in *ResourceInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.URL = strings.TrimSpace(in.URL)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Tags = normalizeTags(in.Tags)
}

// ResourcePatch lists the fields to change; nil fields are left alone.
// The type is fixed when the resource is added.
type ResourcePatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	URL         *string   `json:"url"`
	Subject     *string   `json:"subject"`
	Tags        *[]string `json:"tags"`
}

// ResourceStats summarizes the resource library.
type ResourceStats struct {
	Total     int `json:"total"`
	HighRated int `json:"highRated"`
	Videos    int `json:"videos"`
	Subjects  int `json:"subjects"`
}

// ResourceStore owns the resource collection, newest first.
type ResourceStore struct {
	items *collection[storage.Resource]
	now   func() time.Time
}

// NewResourceStore loads the persisted resources, falling back to seed.
func NewResourceStore(ctx context.Context, adapter *storage.Adapter, seed []storage.Resource, opts ...Option) *ResourceStore {
	o := buildOptions(opts)
	return &ResourceStore{
		items: newCollection(ctx, adapter, "resource", storage.KeyResources, seed,
			func(r storage.Resource) string { return r.ID }),
		now: o.now,
	}
}

// List returns the resources, newest first.
func (s *ResourceStore) List() []storage.Resource {
	return s.items.snapshot()
}

// Get returns one resource.
func (s *ResourceStore) Get(id string) (storage.Resource, error) {
	return s.items.get(id)
}

// Search applies the text, subject and type filters.
func (s *ResourceStore) Search(q search.Query) []storage.Resource {
	return search.Resources(s.items.snapshot(), q)
}

// Create validates the input and inserts an unrated resource at the front.
func (s *ResourceStore) Create(ctx context.Context, in ResourceInput) (storage.Resource, error) {
	logger := contextutil.LoggerFromContext(ctx)

	in.normalize()
	if err := validateStruct(in); err != nil {
		logger.WarnContext(ctx, "invalid resource", "error", err)
		return storage.Resource{}, err
	}
	if in.Type == "" {
		in.Type = storage.ResourceWebsite
	}

	r := storage.Resource{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
		Type:        in.Type,
		Subject:     in.Subject,
		Rating:      0,
		AddedAt:     s.now(),
		Tags:        in.Tags,
	}

	err := s.items.prepend(ctx, r)
	logger.InfoContext(ctx, "resource added", "id", r.ID, "type", r.Type, "subject", r.Subject)
	return r, err
}

// Update merges the patch into the resource and revalidates it.
func (s *ResourceStore) Update(ctx context.Context, id string, patch ResourcePatch) (storage.Resource, error) {
	updated, err := s.items.replace(ctx, id, func(cur storage.Resource) (storage.Resource, error) {
		in := ResourceInput{
			Title:       cur.Title,
			Description: cur.Description,
			URL:         cur.URL,
			Type:        cur.Type,
			Subject:     cur.Subject,
			Tags:        cur.Tags,
		}
		if patch.Title != nil {
			in.Title = *patch.Title
		}
		if patch.Description != nil {
			in.Description = *patch.Description
		}
		if patch.URL != nil {
			in.URL = *patch.URL
		}
		if patch.Subject != nil {
			in.Subject = *patch.Subject
		}
		if patch.Tags != nil {
			in.Tags = *patch.Tags
		}
		in.normalize()
		if err := validateStruct(in); err != nil {
			return cur, err
		}
		if in.Type == "" {
			in.Type = storage.ResourceWebsite
		}

		cur.Title = in.Title
		cur.Description = in.Description
		cur.URL = in.URL
		cur.Type = in.Type
		cur.Subject = in.Subject
		cur.Tags = in.Tags
		return cur, nil
	})
	if err == nil || IsPersistenceWarning(err) {
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "resource updated", "id", id)
	}
	return updated, err
}

// Rate sets the resource's rating, which must be 1 through 5.
func (s *ResourceStore) Rate(ctx context.Context, id string, rating int) (storage.Resource, error) {
	if rating < 1 || rating > 5 {
		return storage.Resource{}, newValidationError("rating", "rating must be between 1 and 5")
	}
	updated, err := s.items.replace(ctx, id, func(cur storage.Resource) (storage.Resource, error) {
		cur.Rating = rating
		return cur, nil
	})
	if err == nil || IsPersistenceWarning(err) {
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "resource rated", "id", id, "rating", rating)
	}
	return updated, err
}

// Delete removes the resource. Unknown ids return *NotFoundError.
func (s *ResourceStore) Delete(ctx context.Context, id string) error {
	err := s.items.remove(ctx, id)
	if err == nil || IsPersistenceWarning(err) {
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "resource deleted", "id", id)
	}
	return err
}

// Subjects lists the filter options: All, then each distinct subject in first-seen order.
func (s *ResourceStore) Subjects() []string {
	out := []string{search.All}
	seen := make(map[string]struct{})
	for _, r := range s.items.snapshot() {
		if _, ok := seen[r.Subject]; ok {
			continue
		}
		seen[r.Subject] = struct{}{}
		out = append(out, r.Subject)
	}
	return out
}

// Types lists the type filter options, preceded by All.
func (s *ResourceStore) Types() []string {
	out := []string{search.All}
	for _, t := range storage.ResourceTypes() {
		out = append(out, string(t))
	}
	return out
}

// Stats counts high-rated resources, videos and distinct subjects.
func (s *ResourceStore) Stats() ResourceStats {
	var st ResourceStats
	subjects := make(map[string]struct{})
	for _, r := range s.items.snapshot() {
		st.Total++
		if r.Rating >= 4 {
			st.HighRated++
		}
		if r.Type == storage.ResourceVideo {
			st.Videos++
		}
		subjects[r.Subject] = struct{}{}
	}
	st.Subjects = len(subjects)
	return st
}
