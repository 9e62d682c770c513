package rubric

// Session tracks the per-screen grading state the client holds while a rubric
// is open: which student is selected and whether edition mode is active.
// It exists so the selection/edition invariants live next to the model
// instead of being re-implemented by every caller.
type Session struct {
	Rubric        *Rubric
	SelectedEmail string
	Editing       bool
}

func NewSession(r *Rubric) *Session {
	return &Session{Rubric: r}
}

func (s *Session) Select(email string) { s.SelectedEmail = email }

// SelectGrade applies a grade-cell click for the currently selected student.
func (s *Session) SelectGrade(loc GradeLocation) error {
	return s.Rubric.SelectGrade(s.SelectedEmail, loc, s.Editing)
}

// Assign adds the student and marks them as selected.
func (s *Session) Assign(email string) error {
	if err := s.Rubric.AssignStudent(email); err != nil {
		return err
	}
	s.SelectedEmail = email
	return nil
}

// Unassign removes the student and clears the selection if it pointed at them.
func (s *Session) Unassign(email string) bool {
	removed := s.Rubric.UnassignStudent(email)
	if removed && s.SelectedEmail == email {
		s.SelectedEmail = ""
	}
	return removed
}
