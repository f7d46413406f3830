package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"campuscraft/internal/storage/mocks"

	"go.uber.org/mock/gomock"
)

func TestAdapter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter(NewMemoryKV())

	created := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)
	want := []Note{
		{
			ID:        "n1",
			Title:     "Wave Motion",
			Content:   "frequency, wavelength",
			Type:      NoteText,
			CreatedAt: created,
			Tags:      []string{"physics", "lecture"},
		},
		{
			ID:        "n2",
			Title:     "Audio Note - 10:00:00",
			Content:   "Audio recording",
			Type:      NoteAudio,
			CreatedAt: created.Add(time.Hour),
			Tags:      []string{"audio"},
			AudioURL:  "data:audio/mpeg;base64,AAAA",
			MediaType: "audio/mpeg",
		},
	}

	if err := adapter.Save(ctx, KeyNotes, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got := LoadOrDefault(ctx, adapter, KeyNotes, []Note{})
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadOrDefault() = %+v, want %+v", got, want)
	}
}

func TestLoadOrDefault_FallsBack(t *testing.T) {
	ctx := context.Background()
	def := []Subject{{ID: "seed", Name: "Mathematics", Credits: 4, Grade: "A", GradePoints: 4.0}}

	tests := []struct {
		name  string
		setup func(*mocks.MockKVStore)
	}{
		{
			name: "absent key",
			setup: func(m *mocks.MockKVStore) {
				m.EXPECT().Get(gomock.Any(), KeySubjects).Return(nil, ErrNotFound)
			},
		},
		{
			name: "corrupt value",
			setup: func(m *mocks.MockKVStore) {
				m.EXPECT().Get(gomock.Any(), KeySubjects).Return([]byte(`{not json`), nil)
			},
		},
		{
			name: "wrong shape",
			setup: func(m *mocks.MockKVStore) {
				m.EXPECT().Get(gomock.Any(), KeySubjects).Return([]byte(`{"id":"x"}`), nil)
			},
		},
		{
			name: "backend unavailable",
			setup: func(m *mocks.MockKVStore) {
				m.EXPECT().Get(gomock.Any(), KeySubjects).Return(nil, errors.New("connection refused"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			kv := mocks.NewMockKVStore(ctrl)
			tt.setup(kv)

			got := LoadOrDefault(ctx, NewAdapter(kv), KeySubjects, def)
			if !reflect.DeepEqual(got, def) {
				t.Errorf("LoadOrDefault() = %+v, want default %+v", got, def)
			}
		})
	}
}

func TestLoadOrDefault_NilAdapter(t *testing.T) {
	got := LoadOrDefault[[]Resource](context.Background(), nil, KeyResources, nil)
	if got != nil {
		t.Errorf("LoadOrDefault(nil adapter) = %v, want nil", got)
	}
}

func TestAdapter_SaveError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	kv := mocks.NewMockKVStore(ctrl)
	backendErr := errors.New("quota exceeded")
	kv.EXPECT().Put(gomock.Any(), KeyAssignments, []byte(`[]`)).Return(backendErr)

	err := NewAdapter(kv).Save(context.Background(), KeyAssignments, []Assignment{})
	if err == nil {
		t.Fatal("Save() expected error, got nil")
	}
	if !errors.Is(err, backendErr) {
		t.Errorf("Save() error = %v, should wrap backend error", err)
	}
}
