package rubric

import "testing"

func filledLine(name string) Line {
	l := NewLine()
	l.CategoryName = name
	for i := range l.PossibleScores {
		l.PossibleScores[i].Text = "desc"
	}
	return l
}

func blankLine() Line { return NewLine() }

func TestMaxGradeExcludesTrailingBlankRun(t *testing.T) {
	r := New("t@school.edu", "Teacher")
	r.Lines = []Line{
		filledLine("Thesis"),
		filledLine("Evidence"),
		filledLine("Style"),
		blankLine(), // trailing draft placeholder
	}
	if got := r.MaxGrade(); got != 75 {
		t.Fatalf("MaxGrade = %d, want 75", got)
	}
	if got := len(r.GradableLineIDs()); got != 3 {
		t.Fatalf("gradable lines = %d, want 3", got)
	}
}

func TestMaxGradeCountsInteriorBlankLines(t *testing.T) {
	// A blank line followed by a non-blank one is before the trailing run
	// and therefore counts.
	r := New("t@school.edu", "Teacher")
	r.Lines = []Line{
		filledLine("Thesis"),
		blankLine(),
		filledLine("Style"),
		blankLine(),
		blankLine(),
	}
	if got := r.MaxGrade(); got != 75 {
		t.Fatalf("MaxGrade = %d, want 75", got)
	}
}

func TestMaxGradeWhitespaceOnlyIsBlank(t *testing.T) {
	r := New("t@school.edu", "Teacher")
	l := NewLine()
	l.CategoryName = "   "
	l.PossibleScores[2].Text = "\t"
	r.Lines = []Line{filledLine("Thesis"), l}
	if got := r.MaxGrade(); got != 25 {
		t.Fatalf("MaxGrade = %d, want 25", got)
	}
}

func TestMaxGradePartiallyFilledLineIsGradable(t *testing.T) {
	r := New("t@school.edu", "Teacher")
	l := NewLine()
	l.PossibleScores[3].Text = "needs work" // name empty, one tier filled
	r.Lines = []Line{l}
	if got := r.MaxGrade(); got != 25 {
		t.Fatalf("MaxGrade = %d, want 25", got)
	}
}

func TestMaxGradeAllBlank(t *testing.T) {
	r := New("t@school.edu", "Teacher")
	if got := r.MaxGrade(); got != 0 {
		t.Fatalf("MaxGrade = %d, want 0 for a fresh rubric", got)
	}
	if ids := r.GradableLineIDs(); len(ids) != 0 {
		t.Fatalf("gradable lines = %v, want none", ids)
	}
}

func TestScoreForIndex(t *testing.T) {
	want := map[int]int{0: 25, 1: 20, 2: 15, 3: 10}
	for idx, score := range want {
		got, ok := ScoreForIndex(idx)
		if !ok || got != score {
			t.Fatalf("ScoreForIndex(%d) = %d,%v, want %d,true", idx, got, ok, score)
		}
	}
	if _, ok := ScoreForIndex(4); ok {
		t.Fatal("ScoreForIndex(4) should be rejected")
	}
	if _, ok := ScoreForIndex(-1); ok {
		t.Fatal("ScoreForIndex(-1) should be rejected")
	}
}

func TestCurrentGradeFullSelection(t *testing.T) {
	// 3 non-blank lines + 1 trailing blank: top tier everywhere => 75/75.
	r := New("t@school.edu", "Teacher")
	r.Lines = []Line{filledLine("A"), filledLine("B"), filledLine("C"), blankLine()}
	if err := r.AssignStudent("a@x.com"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	for c := 0; c < 3; c++ {
		if err := r.SelectGrade("a@x.com", GradeLocation{CategoryIndex: c, GradingIndex: 0}, false); err != nil {
			t.Fatalf("select category %d: %v", c, err)
		}
	}
	g := r.gradeFor("a@x.com")
	if g.CurrentGrade != 75 {
		t.Fatalf("CurrentGrade = %d, want 75", g.CurrentGrade)
	}
	if g.CurrentGrade > r.MaxGrade() {
		t.Fatalf("CurrentGrade %d exceeds MaxGrade %d", g.CurrentGrade, r.MaxGrade())
	}
}

func TestCurrentGradeSkipsEntriesOnNonGradableLines(t *testing.T) {
	r := New("t@school.edu", "Teacher")
	r.Lines = []Line{filledLine("A"), filledLine("B")}
	if err := r.AssignStudent("a@x.com"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := r.SelectGrade("a@x.com", GradeLocation{CategoryIndex: 1, GradingIndex: 1}, false); err != nil {
		t.Fatalf("select: %v", err)
	}
	// Blank out line 1: it joins the trailing run, its recorded entry stays
	// but stops counting.
	if !r.SetCategoryName(r.Lines[1].LineID, "") {
		t.Fatal("SetCategoryName failed")
	}
	for tier := 0; tier < 4; tier++ {
		if !r.SetScoreText(r.Lines[1].LineID, tier, "") {
			t.Fatalf("SetScoreText tier %d failed", tier)
		}
	}
	g := r.gradeFor("a@x.com")
	if g.CurrentGrade != 0 {
		t.Fatalf("CurrentGrade = %d, want 0 once the line is non-gradable", g.CurrentGrade)
	}
	if len(g.GradeLocations) != 1 {
		t.Fatalf("recorded entry should survive, got %v", g.GradeLocations)
	}
}
