package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"campuscraft/internal/contextutil"
	"campuscraft/internal/media"
	"campuscraft/internal/search"
	"campuscraft/internal/storage"
)

// NoteInput carries the fields for a text note.
type NoteInput struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

func (in *NoteInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Tags = normalizeTags(in.Tags)
}

// NotePatch lists the fields to change; nil fields are left alone.
// Only the title and content of a note are editable.
type NotePatch struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// NoteStats counts notes by type.
type NoteStats struct {
	Total int `json:"total"`
	Text  int `json:"text"`
	Audio int `json:"audio"`
	Image int `json:"image"`
}

// NoteStore owns the note collection, newest first.
type NoteStore struct {
	items *collection[storage.Note]
	now   func() time.Time
}

// NewNoteStore loads the persisted notes, falling back to seed.
func NewNoteStore(ctx context.Context, adapter *storage.Adapter, seed []storage.Note, opts ...Option) *NoteStore {
	o := buildOptions(opts)
	return &NoteStore{
		items: newCollection(ctx, adapter, "note", storage.KeyNotes, seed,
			func(n storage.Note) string { return n.ID }),
		now: o.now,
	}
}

// List returns the notes, newest first.
func (s *NoteStore) List() []storage.Note {
	return s.items.snapshot()
}

// Get returns one note.
func (s *NoteStore) Get(id string) (storage.Note, error) {
	return s.items.get(id)
}

// Search returns the notes whose title, content or tags contain term.
func (s *NoteStore) Search(term string) []storage.Note {
	return search.Notes(s.items.snapshot(), term)
}

// CreateText validates and stores a text note.
func (s *NoteStore) CreateText(ctx context.Context, in NoteInput) (storage.Note, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid note", "error", err)
		return storage.Note{}, err
	}

	return s.insert(ctx, storage.Note{
		Title:   in.Title,
		Content: in.Content,
		Type:    storage.NoteText,
		Tags:    in.Tags,
	})
}

// CreateAudio stores a recorded audio payload as an audio note.
func (s *NoteStore) CreateAudio(ctx context.Context, payload []byte) (storage.Note, error) {
	if len(payload) == 0 {
		return storage.Note{}, newValidationError("audio", "audio recording is empty")
	}
	info := media.Inspect(payload)
	if !info.IsAudio() {
		return storage.Note{}, newValidationError("audio", "payload is "+info.MediaType+", not audio")
	}

	mediaType := info.AudioType()
	now := s.now()
	return s.insert(ctx, storage.Note{
		Title:           "Audio Note - " + now.Format("15:04:05"),
		Content:         "Audio recording",
		Type:            storage.NoteAudio,
		Tags:            []string{"audio"},
		AudioURL:        media.DataURL(mediaType, payload),
		MediaType:       mediaType,
		DurationSeconds: info.DurationSeconds,
	})
}

// CreateImage stores an uploaded image as an image note titled after the file.
func (s *NoteStore) CreateImage(ctx context.Context, fileName string, payload []byte) (storage.Note, error) {
	if len(payload) == 0 {
		return storage.Note{}, newValidationError("image", "image file is empty")
	}
	info := media.Inspect(payload)
	if !info.IsImage() {
		return storage.Note{}, newValidationError("image", "payload is "+info.MediaType+", not an image")
	}

	name := strings.TrimSpace(fileName)
	if name == "" {
		name = "untitled"
	}
	return s.insert(ctx, storage.Note{
		Title:     "Image Note - " + name,
		Content:   "Image attachment",
		Type:      storage.NoteImage,
		Tags:      []string{"image"},
		ImageURL:  media.DataURL(info.MediaType, payload),
		MediaType: info.MediaType,
	})
}

func (s *NoteStore) insert(ctx context.Context, n storage.Note) (storage.Note, error) {
	n.ID = uuid.New().String()
	n.CreatedAt = s.now()
	if n.Tags == nil {
		n.Tags = []string{}
	}

	err := s.items.prepend(ctx, n)
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "note created", "id", n.ID, "type", n.Type)
	return n, err
}

// Update edits a text note. Media notes cannot be edited.
func (s *NoteStore) Update(ctx context.Context, id string, patch NotePatch) (storage.Note, error) {
	updated, err := s.items.replace(ctx, id, func(cur storage.Note) (storage.Note, error) {
		if cur.Type != storage.NoteText {
			return cur, newValidationError("type", "only text notes can be edited")
		}
		in := NoteInput{Title: cur.Title, Content: cur.Content, Tags: cur.Tags}
		if patch.Title != nil {
			in.Title = *patch.Title
		}
		if patch.Content != nil {
			in.Content = *patch.Content
		}
		in.normalize()
		if err := validateStruct(in); err != nil {
			return cur, err
		}

		cur.Title = in.Title
		cur.Content = in.Content
		return cur, nil
	})
	if err == nil || IsPersistenceWarning(err) {
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "note updated", "id", id)
	}
	return updated, err
}

// Delete removes the note. Unknown ids return *NotFoundError.
func (s *NoteStore) Delete(ctx context.Context, id string) error {
	err := s.items.remove(ctx, id)
	if err == nil || IsPersistenceWarning(err) {
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "note deleted", "id", id)
	}
	return err
}

// Stats counts the notes by type.
func (s *NoteStore) Stats() NoteStats {
	var st NoteStats
	for _, n := range s.items.snapshot() {
		st.Total++
		switch n.Type {
		case storage.NoteText:
			st.Text++
		case storage.NoteAudio:
			st.Audio++
		case storage.NoteImage:
			st.Image++
		}
	}
	return st
}
