package rubric

import (
	"errors"
	"testing"
)

func testRubric(categories ...string) Rubric {
	r := New("t@school.edu", "Teacher")
	r.Lines = nil
	for _, c := range categories {
		r.Lines = append(r.Lines, filledLine(c))
	}
	return r
}

func TestSelectGradeReplacesPriorTier(t *testing.T) {
	r := testRubric("A", "B")
	if err := r.AssignStudent("a@x.com"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := r.SelectGrade("a@x.com", GradeLocation{CategoryIndex: 0, GradingIndex: 1}, false); err != nil {
		t.Fatalf("first select: %v", err)
	}
	if err := r.SelectGrade("a@x.com", GradeLocation{CategoryIndex: 0, GradingIndex: 3}, false); err != nil {
		t.Fatalf("second select: %v", err)
	}
	g := r.gradeFor("a@x.com")
	count := 0
	for _, loc := range g.GradeLocations {
		if loc.CategoryIndex == 0 {
			count++
			if loc.GradingIndex != 3 {
				t.Fatalf("gradingIndex = %d, want 3 (latest click wins)", loc.GradingIndex)
			}
		}
	}
	if count != 1 {
		t.Fatalf("entries for category 0 = %d, want exactly 1", count)
	}
	if g.CurrentGrade != 10 {
		t.Fatalf("CurrentGrade = %d, want 10", g.CurrentGrade)
	}
}

func TestSelectGradeRejections(t *testing.T) {
	r := testRubric("A")
	r.Lines = append(r.Lines, blankLine())
	if err := r.AssignStudent("a@x.com"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	before := len(r.gradeFor("a@x.com").GradeLocations)

	cases := []struct {
		name    string
		email   string
		loc     GradeLocation
		editing bool
		want    error
	}{
		{"no student selected", "", GradeLocation{0, 0}, false, ErrNoStudentSelected},
		{"edition mode", "a@x.com", GradeLocation{0, 0}, true, ErrEditionMode},
		{"trailing blank line", "a@x.com", GradeLocation{1, 0}, false, ErrLineNotGradable},
		{"index past end", "a@x.com", GradeLocation{5, 0}, false, ErrLineNotGradable},
		{"negative index", "a@x.com", GradeLocation{-1, 0}, false, ErrLineNotGradable},
		{"bad tier", "a@x.com", GradeLocation{0, 4}, false, ErrBadGradingIndex},
		{"unassigned student", "b@x.com", GradeLocation{0, 0}, false, ErrNotAssigned},
	}
	for _, tc := range cases {
		err := r.SelectGrade(tc.email, tc.loc, tc.editing)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
	if got := len(r.gradeFor("a@x.com").GradeLocations); got != before {
		t.Fatalf("rejected clicks mutated state: %d entries, want %d", got, before)
	}
}

func TestRemoveLineCascade(t *testing.T) {
	r := testRubric("A", "B", "C")
	if err := r.AssignStudent("a@x.com"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	for c := 0; c < 3; c++ {
		if err := r.SelectGrade("a@x.com", GradeLocation{CategoryIndex: c, GradingIndex: c}, false); err != nil {
			t.Fatalf("select %d: %v", c, err)
		}
	}
	// entries: (0,0)=25 (1,1)=20 (2,2)=15, total 60

	r.RemoveLine(r.Lines[1].LineID)

	if len(r.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(r.Lines))
	}
	g := r.gradeFor("a@x.com")
	if len(g.GradeLocations) != 2 {
		t.Fatalf("grade locations = %v, want 2 entries", g.GradeLocations)
	}
	for _, loc := range g.GradeLocations {
		switch loc.GradingIndex {
		case 0:
			if loc.CategoryIndex != 0 {
				t.Fatalf("entry before removed index moved: %+v", loc)
			}
		case 2:
			if loc.CategoryIndex != 1 {
				t.Fatalf("entry after removed index not shifted down: %+v", loc)
			}
		default:
			t.Fatalf("entry for removed category survived: %+v", loc)
		}
	}
	if g.CurrentGrade != 40 { // 25 + 15
		t.Fatalf("CurrentGrade = %d, want 40", g.CurrentGrade)
	}
}

func TestRemoveLineUnknownIDIsNoop(t *testing.T) {
	r := testRubric("A", "B")
	if err := r.AssignStudent("a@x.com"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := r.SelectGrade("a@x.com", GradeLocation{CategoryIndex: 1, GradingIndex: 0}, false); err != nil {
		t.Fatalf("select: %v", err)
	}
	r.RemoveLine("line-does-not-exist")
	if len(r.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(r.Lines))
	}
	g := r.gradeFor("a@x.com")
	if len(g.GradeLocations) != 1 || g.GradeLocations[0].CategoryIndex != 1 {
		t.Fatalf("grade locations mutated: %v", g.GradeLocations)
	}
}

func TestAddLineLeavesGradesAlone(t *testing.T) {
	r := testRubric("A")
	if err := r.AssignStudent("a@x.com"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := r.SelectGrade("a@x.com", GradeLocation{CategoryIndex: 0, GradingIndex: 0}, false); err != nil {
		t.Fatalf("select: %v", err)
	}
	lineID := r.AddLine()
	if lineID == "" {
		t.Fatal("AddLine returned empty id")
	}
	if r.MaxGrade() != 25 {
		t.Fatalf("new blank line must not count: MaxGrade = %d, want 25", r.MaxGrade())
	}
	if g := r.gradeFor("a@x.com"); g.CurrentGrade != 25 {
		t.Fatalf("CurrentGrade = %d, want 25", g.CurrentGrade)
	}
}

func TestLineIDsAreUnique(t *testing.T) {
	r := New("t@school.edu", "Teacher")
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := r.AddLine()
		if seen[id] {
			t.Fatalf("duplicate line id %q", id)
		}
		seen[id] = true
	}
}

func TestAssignStudent(t *testing.T) {
	r := testRubric("A")
	if err := r.AssignStudent(""); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("empty email: err = %v, want %v", err, ErrEmailRequired)
	}
	if err := r.AssignStudent("a@x.com"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := r.AssignStudent("a@x.com"); !errors.Is(err, ErrAlreadyAssigned) {
		t.Fatalf("duplicate: err = %v, want %v", err, ErrAlreadyAssigned)
	}
	g := r.gradeFor("a@x.com")
	if g == nil || g.CurrentGrade != 0 || len(g.GradeLocations) != 0 {
		t.Fatalf("fresh assignment should be empty, got %+v", g)
	}
}

func TestUnassignStudent(t *testing.T) {
	r := testRubric("A")
	if err := r.AssignStudent("a@x.com"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if !r.UnassignStudent("a@x.com") {
		t.Fatal("unassign should report removal")
	}
	if r.gradeFor("a@x.com") != nil {
		t.Fatal("grade record should be gone")
	}
	if r.UnassignStudent("a@x.com") {
		t.Fatal("second unassign should be a no-op")
	}
}
