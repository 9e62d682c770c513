package rubric

import "errors"

var (
	ErrNoStudentSelected = errors.New("no student selected")
	ErrEditionMode       = errors.New("grading disabled while editing")
	ErrLineNotGradable   = errors.New("line is not gradable")
	ErrBadGradingIndex   = errors.New("grading index out of range")
	ErrEmailRequired     = errors.New("student email required")
	ErrAlreadyAssigned   = errors.New("student already assigned")
	ErrNotAssigned       = errors.New("student not assigned")
)

// AddLine appends a blank line and returns its id. Existing student grades
// are untouched (a new trailing blank line is never gradable).
func (r *Rubric) AddLine() string {
	l := NewLine()
	r.Lines = append(r.Lines, l)
	return l.LineID
}

// SetCategoryName replaces the category name of the line with the given id.
// Returns false if the id is unknown.
func (r *Rubric) SetCategoryName(lineID, name string) bool {
	i := r.lineIndex(lineID)
	if i < 0 {
		return false
	}
	r.Lines[i].CategoryName = name
	// Blankness may have changed, which moves the gradable boundary.
	r.recomputeGrades()
	return true
}

// SetScoreText replaces one tier's descriptor text on the line with the given
// id. Returns false if the id is unknown or the tier is out of range.
func (r *Rubric) SetScoreText(lineID string, tier int, text string) bool {
	i := r.lineIndex(lineID)
	if i < 0 || tier < 0 || tier >= len(TierScores) {
		return false
	}
	r.Lines[i].PossibleScores[tier].Text = text
	r.recomputeGrades()
	return true
}

// RemoveLine deletes the line with the given id and cascades over every
// student's grade locations: entries at the removed index are dropped, and
// entries past it shift down by one. No-op if the id is unknown.
//
// The reindexing here is the one place an off-by-one silently corrupts
// scores recorded for unrelated categories.
func (r *Rubric) RemoveLine(lineID string) {
	k := r.lineIndex(lineID)
	if k < 0 {
		return
	}
	r.Lines = append(r.Lines[:k], r.Lines[k+1:]...)

	for i := range r.StudentGrades {
		locs := r.StudentGrades[i].GradeLocations
		kept := locs[:0]
		for _, loc := range locs {
			switch {
			case loc.CategoryIndex == k:
				// dropped with the line
			case loc.CategoryIndex > k:
				loc.CategoryIndex--
				kept = append(kept, loc)
			default:
				kept = append(kept, loc)
			}
		}
		r.StudentGrades[i].GradeLocations = kept
	}
	r.recomputeGrades()
}

// SelectGrade records a tier selection for the given student. Selecting a new
// tier for a category replaces the prior selection for that category. The
// editing flag mirrors the client's edition mode, in which grading is
// disabled.
func (r *Rubric) SelectGrade(studentEmail string, loc GradeLocation, editing bool) error {
	if studentEmail == "" {
		return ErrNoStudentSelected
	}
	if editing {
		return ErrEditionMode
	}
	if loc.CategoryIndex < 0 || loc.CategoryIndex >= gradableCount(r.Lines) {
		return ErrLineNotGradable
	}
	if _, ok := ScoreForIndex(loc.GradingIndex); !ok {
		return ErrBadGradingIndex
	}
	g := r.gradeFor(studentEmail)
	if g == nil {
		return ErrNotAssigned
	}

	kept := g.GradeLocations[:0]
	for _, l := range g.GradeLocations {
		if l.CategoryIndex != loc.CategoryIndex {
			kept = append(kept, l)
		}
	}
	g.GradeLocations = append(kept, loc)
	g.CurrentGrade = computeGrade(r.Lines, g.GradeLocations)
	return nil
}

// AssignStudent adds an empty grade record for the student. Rejects a missing
// email and duplicates (matched by email).
func (r *Rubric) AssignStudent(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if r.gradeFor(email) != nil {
		return ErrAlreadyAssigned
	}
	r.StudentGrades = append(r.StudentGrades, StudentGrade{
		StudentEmail:   email,
		GradeLocations: []GradeLocation{},
		CurrentGrade:   0,
	})
	return nil
}

// UnassignStudent removes the student's grade record. Returns false if no
// record matched.
func (r *Rubric) UnassignStudent(email string) bool {
	for i := range r.StudentGrades {
		if r.StudentGrades[i].StudentEmail == email {
			r.StudentGrades = append(r.StudentGrades[:i], r.StudentGrades[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Rubric) lineIndex(lineID string) int {
	for i := range r.Lines {
		if r.Lines[i].LineID == lineID {
			return i
		}
	}
	return -1
}
