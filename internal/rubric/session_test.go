package rubric

import (
	"errors"
	"testing"
)

func TestSessionAssignSelects(t *testing.T) {
	r := testRubric("A")
	s := NewSession(&r)
	if err := s.Assign("a@x.com"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if s.SelectedEmail != "a@x.com" {
		t.Fatalf("selected = %q, want the newly assigned student", s.SelectedEmail)
	}
}

func TestSessionUnassignClearsSelection(t *testing.T) {
	r := testRubric("A")
	s := NewSession(&r)
	if err := s.Assign("a@x.com"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := s.Assign("b@x.com"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	s.Select("a@x.com")

	if !s.Unassign("b@x.com") {
		t.Fatal("unassign b should remove")
	}
	if s.SelectedEmail != "a@x.com" {
		t.Fatalf("removing another student must not clear selection, got %q", s.SelectedEmail)
	}

	if !s.Unassign("a@x.com") {
		t.Fatal("unassign a should remove")
	}
	if s.SelectedEmail != "" {
		t.Fatalf("selection should be cleared, got %q", s.SelectedEmail)
	}
	if r.gradeFor("a@x.com") != nil {
		t.Fatal("a@x.com grade record should be gone")
	}
}

func TestSessionGradingGuards(t *testing.T) {
	r := testRubric("A")
	s := NewSession(&r)

	if err := s.SelectGrade(GradeLocation{0, 0}); !errors.Is(err, ErrNoStudentSelected) {
		t.Fatalf("no selection: err = %v, want %v", err, ErrNoStudentSelected)
	}

	if err := s.Assign("a@x.com"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	s.Editing = true
	if err := s.SelectGrade(GradeLocation{0, 0}); !errors.Is(err, ErrEditionMode) {
		t.Fatalf("editing: err = %v, want %v", err, ErrEditionMode)
	}
	s.Editing = false
	if err := s.SelectGrade(GradeLocation{0, 0}); err != nil {
		t.Fatalf("select: %v", err)
	}
	if g := r.gradeFor("a@x.com"); g.CurrentGrade != 25 {
		t.Fatalf("CurrentGrade = %d, want 25", g.CurrentGrade)
	}
}
