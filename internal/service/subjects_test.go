package service_test

import (
	"testing"

	"campuscraft/internal/gpa"
	"campuscraft/internal/service"
)

func TestSubjectStore_CreateAndCGPA(t *testing.T) {
	ctx := testContext()
	store := service.NewSubjectStore(ctx, memoryAdapter(), nil)

	if got := store.CGPA(); got.Status != gpa.StatusNotCalculated || got.CGPA != 0 {
		t.Errorf("empty CGPA() = %+v, want 0 Not Calculated", got)
	}

	math, err := store.Create(ctx, service.SubjectInput{Name: "Mathematics", Credits: 4, Grade: "A"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if math.GradePoints != 4.0 {
		t.Errorf("GradePoints = %v, want 4.0", math.GradePoints)
	}
	phys, err := store.Create(ctx, service.SubjectInput{Name: "Physics", Credits: 3, Grade: " b+ "})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if phys.Grade != "B+" || phys.GradePoints != 3.3 {
		t.Errorf("Create() normalized grade = %q/%v, want B+/3.3", phys.Grade, phys.GradePoints)
	}

	list := store.List()
	if list[0].ID != math.ID || list[1].ID != phys.ID {
		t.Error("subjects are not kept in insertion order")
	}

	st := store.Stats()
	if st.Count != 2 || st.TotalCredits != 7 {
		t.Errorf("Stats() = %+v, want 2 subjects and 7 credits", st)
	}
	if st.CGPA.Rounded() != 3.7 || st.CGPA.Status != gpa.StatusExcellent {
		t.Errorf("CGPA = %v (%s), want 3.70 Excellent", st.CGPA.Display(), st.CGPA.Status)
	}
}

func TestSubjectStore_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		in     service.SubjectInput
		fields []string
	}{
		{name: "all missing", in: service.SubjectInput{}, fields: []string{"name", "credits", "grade"}},
		{name: "unknown grade", in: service.SubjectInput{Name: "Art", Credits: 2, Grade: "E"}, fields: []string{"grade"}},
		{name: "negative credits", in: service.SubjectInput{Name: "Art", Credits: -1, Grade: "A"}, fields: []string{"credits"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := service.NewSubjectStore(testContext(), memoryAdapter(), nil)
			_, err := store.Create(testContext(), tt.in)
			wantValidation(t, err, tt.fields...)
			if len(store.List()) != 0 {
				t.Error("failed create mutated the collection")
			}
		})
	}
}

func TestSubjectStore_UpdateRecomputesPoints(t *testing.T) {
	ctx := testContext()
	store := service.NewSubjectStore(ctx, memoryAdapter(), service.DefaultSeed(fixedNow).Subjects)

	grade := "C"
	got, err := store.Update(ctx, "2", service.SubjectPatch{Grade: &grade})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.GradePoints != 2.0 || got.Credits != 3 {
		t.Errorf("Update() = %+v, want C with 2.0 points and 3 credits", got)
	}

	bad := "Q"
	_, err = store.Update(ctx, "2", service.SubjectPatch{Grade: &bad})
	wantValidation(t, err, "grade")

	_, err = store.Update(ctx, "nope", service.SubjectPatch{Grade: &grade})
	wantNotFound(t, err)
}

func TestSubjectStore_Delete(t *testing.T) {
	ctx := testContext()
	store := service.NewSubjectStore(ctx, memoryAdapter(), service.DefaultSeed(fixedNow).Subjects)

	if err := store.Delete(ctx, "1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	wantNotFound(t, store.Delete(ctx, "1"))

	if got := store.CGPA(); got.Display() != "3.30" {
		t.Errorf("CGPA() after delete = %s, want 3.30", got.Display())
	}
}
