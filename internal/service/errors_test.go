package service

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "single field",
			err:  newValidationError("title", "title is required"),
			want: "validation error on field title: title is required",
		},
		{
			name: "several fields",
			err: &ValidationError{Fields: []FieldError{
				{Field: "title", Message: "title is required"},
				{Field: "url", Message: "url must be a valid URL"},
			}},
			want: "validation error on field title: title is required; validation error on field url: url must be a valid URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	err := fmt.Errorf("create: %w", newValidationError("name", "name is required"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("errors.Is(err, ErrInvalidInput) = false, want true")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("errors.Is(err, ErrNotFound) = true, want false")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) || !verr.HasField("name") || verr.HasField("grade") {
		t.Errorf("HasField mismatch for %v", err)
	}
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Kind: "note", ID: "42"}
	if got, want := err.Error(), "note 42 not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("errors.Is(err, ErrNotFound) = false, want true")
	}
}

func TestPersistenceWarning(t *testing.T) {
	cause := errors.New("disk full")
	var err error = &PersistenceWarning{Key: "notes", Err: cause}

	if !IsPersistenceWarning(err) {
		t.Error("IsPersistenceWarning() = false, want true")
	}
	if !IsPersistenceWarning(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsPersistenceWarning() on wrapped warning = false, want true")
	}
	if IsPersistenceWarning(cause) || IsPersistenceWarning(nil) {
		t.Error("IsPersistenceWarning() on plain error = true, want false")
	}
	if !errors.Is(err, cause) {
		t.Error("warning does not unwrap to its cause")
	}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		msg     string
		wantNil bool
		wantMsg string
	}{
		{
			name:    "nil error",
			err:     nil,
			msg:     "context",
			wantNil: true,
		},
		{
			name:    "wrapped error",
			err:     errors.New("original error"),
			msg:     "context",
			wantMsg: "context: original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapError(tt.err, tt.msg)
			if tt.wantNil {
				if got != nil {
					t.Errorf("WrapError() = %v, want nil", got)
				}
				return
			}
			if got == nil || got.Error() != tt.wantMsg {
				t.Errorf("WrapError() = %v, want %v", got, tt.wantMsg)
			}
			if !errors.Is(got, tt.err) {
				t.Error("WrapError() does not unwrap to the original error")
			}
		})
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{raw: "", want: []string{}},
		{raw: " physics , lecture ,, ", want: []string{"physics", "lecture"}},
		{raw: "math", want: []string{"math"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseTags(tt.raw)
			if got == nil {
				t.Fatal("ParseTags() returned nil")
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("ParseTags(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	err := validateStruct(SubjectInput{Name: "", Credits: 0, Grade: "Z"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("validateStruct() = %v, want *ValidationError", err)
	}

	want := map[string]string{
		"name":    "name is required",
		"credits": "credits is required",
		"grade":   "grade must be a letter grade from A+ to F",
	}
	if len(verr.Fields) != len(want) {
		t.Fatalf("got %d field errors, want %d: %v", len(verr.Fields), len(want), verr)
	}
	for _, f := range verr.Fields {
		if want[f.Field] != f.Message {
			t.Errorf("field %s: message %q, want %q", f.Field, f.Message, want[f.Field])
		}
	}
}
