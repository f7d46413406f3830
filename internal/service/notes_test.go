package service_test

import (
	"bytes"
	"strings"
	"testing"

	"campuscraft/internal/service"
	"campuscraft/internal/storage"
)

var (
	pngPayload = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	wavPayload = append([]byte("RIFF\x24\x00\x00\x00WAVEfmt "), bytes.Repeat([]byte{0}, 32)...)
	// EBML header with DocType "webm", which sniffs as video/webm.
	webmPayload = append([]byte{
		0x1A, 0x45, 0xDF, 0xA3, 0x9F,
		0x42, 0x86, 0x81, 0x01,
		0x42, 0xF7, 0x81, 0x01,
		0x42, 0xF2, 0x81, 0x04,
		0x42, 0xF3, 0x81, 0x08,
		0x42, 0x82, 0x84, 'w', 'e', 'b', 'm',
		0x42, 0x87, 0x81, 0x04,
		0x42, 0x85, 0x81, 0x02,
	}, bytes.Repeat([]byte{0}, 32)...)
)

func newNoteStore(t *testing.T) *service.NoteStore {
	t.Helper()
	return service.NewNoteStore(testContext(), memoryAdapter(), service.DefaultSeed(fixedNow).Notes, clock())
}

func TestNoteStore_CreateText(t *testing.T) {
	ctx := testContext()
	store := newNoteStore(t)

	n, err := store.CreateText(ctx, service.NoteInput{
		Title:   " Chem ",
		Content: "Balancing equations",
		Tags:    service.ParseTags("chemistry, , lab"),
	})
	if err != nil {
		t.Fatalf("CreateText() error = %v", err)
	}
	if n.Type != storage.NoteText || n.Title != "Chem" || len(n.Tags) != 2 {
		t.Errorf("CreateText() = %+v", n)
	}
	if store.List()[0].ID != n.ID {
		t.Error("new note is not first")
	}

	_, err = store.CreateText(ctx, service.NoteInput{Title: "", Content: " "})
	wantValidation(t, err, "title", "content")
	if len(store.List()) != 3 {
		t.Error("failed create mutated the collection")
	}
}

func TestNoteStore_CreateAudio(t *testing.T) {
	ctx := testContext()
	store := newNoteStore(t)

	n, err := store.CreateAudio(ctx, wavPayload)
	if err != nil {
		t.Fatalf("CreateAudio() error = %v", err)
	}
	if n.Title != "Audio Note - 15:00:00" || n.Content != "Audio recording" {
		t.Errorf("CreateAudio() title/content = %q/%q", n.Title, n.Content)
	}
	if n.Type != storage.NoteAudio || len(n.Tags) != 1 || n.Tags[0] != "audio" {
		t.Errorf("CreateAudio() type/tags = %s/%v", n.Type, n.Tags)
	}
	if !strings.HasPrefix(n.AudioURL, "data:audio/") || n.ImageURL != "" {
		t.Errorf("CreateAudio() urls = %q / %q", n.AudioURL, n.ImageURL)
	}

	webm, err := store.CreateAudio(ctx, webmPayload)
	if err != nil {
		t.Fatalf("CreateAudio(webm) error = %v", err)
	}
	if webm.MediaType != "audio/webm" || !strings.HasPrefix(webm.AudioURL, "data:audio/webm;base64,") {
		t.Errorf("CreateAudio(webm) media type = %q, url = %.30q", webm.MediaType, webm.AudioURL)
	}

	_, err = store.CreateAudio(ctx, pngPayload)
	wantValidation(t, err, "audio")
	_, err = store.CreateAudio(ctx, nil)
	wantValidation(t, err, "audio")
}

func TestNoteStore_CreateImage(t *testing.T) {
	ctx := testContext()
	store := newNoteStore(t)

	n, err := store.CreateImage(ctx, "diagram.png", pngPayload)
	if err != nil {
		t.Fatalf("CreateImage() error = %v", err)
	}
	if n.Title != "Image Note - diagram.png" || n.Content != "Image attachment" {
		t.Errorf("CreateImage() title/content = %q/%q", n.Title, n.Content)
	}
	if !strings.HasPrefix(n.ImageURL, "data:image/png;base64,") || n.MediaType != "image/png" {
		t.Errorf("CreateImage() url = %q, media type %q", n.ImageURL, n.MediaType)
	}

	_, err = store.CreateImage(ctx, "notes.txt", []byte("just some text"))
	wantValidation(t, err, "image")
}

func TestNoteStore_Update(t *testing.T) {
	ctx := testContext()
	store := newNoteStore(t)

	content := "Updated content"
	got, err := store.Update(ctx, "1", service.NotePatch{Content: &content})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Content != content || got.Title != "Physics Lecture - Wave Motion" {
		t.Errorf("Update() = %+v", got)
	}
	if strings.Join(got.Tags, ",") != "physics,lecture" {
		t.Errorf("Update() tags = %v, want unchanged", got.Tags)
	}

	title := "  "
	_, err = store.Update(ctx, "1", service.NotePatch{Title: &title})
	wantValidation(t, err, "title")

	audio, _ := store.CreateAudio(ctx, wavPayload)
	_, err = store.Update(ctx, audio.ID, service.NotePatch{Content: &content})
	wantValidation(t, err, "type")

	_, err = store.Update(ctx, "missing", service.NotePatch{Content: &content})
	wantNotFound(t, err)
}

func TestNoteStore_SearchAndStats(t *testing.T) {
	ctx := testContext()
	store := newNoteStore(t)
	store.CreateImage(ctx, "board.png", pngPayload)

	tests := []struct {
		term    string
		wantIDs int
	}{
		{term: "", wantIDs: 3},
		{term: "PHYSICS", wantIDs: 1},
		{term: "formulas", wantIDs: 1},
		{term: "image", wantIDs: 1},
		{term: "chemistry", wantIDs: 0},
	}
	for _, tt := range tests {
		if got := store.Search(tt.term); len(got) != tt.wantIDs {
			t.Errorf("Search(%q) returned %d notes, want %d", tt.term, len(got), tt.wantIDs)
		}
	}

	want := service.NoteStats{Total: 3, Text: 2, Image: 1}
	if got := store.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}

	if err := store.Delete(ctx, "2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	wantNotFound(t, store.Delete(ctx, "2"))
}
