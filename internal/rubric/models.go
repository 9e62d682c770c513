package rubric

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TierScores are the four fixed point values of every rubric line, in
// gradingIndex order.
var TierScores = [4]int{25, 20, 15, 10}

const DefaultTitle = "Untitled Rubric"

type PossibleScore struct {
	Score int    `json:"score"`
	Text  string `json:"text"`
}

// Line is one scoring category. LineID is generated once at creation and is
// the only durable reference to a line; array position is display order only.
type Line struct {
	LineID         string           `json:"line_id"`
	CategoryName   string           `json:"category_name"`
	PossibleScores [4]PossibleScore `json:"possible_scores"`
}

// GradeLocation records which tier was selected for which category.
type GradeLocation struct {
	CategoryIndex int `json:"category_index"`
	GradingIndex  int `json:"grading_index"`
}

// StudentGrade is one assigned student's recorded grade. Email is the
// canonical identity (the document key in the roster).
type StudentGrade struct {
	StudentEmail string `json:"student_email"`
	// At most one entry per distinct CategoryIndex.
	GradeLocations []GradeLocation `json:"rubric_grades_location"`
	// Cached sum over gradable entries; recomputed on every mutation that
	// could affect it, never authoritative on its own.
	CurrentGrade int `json:"current_grade"`
}

type Header struct {
	Title       string   `json:"title"`
	GradeLevels []string `json:"grade_levels"`
}

type Rubric struct {
	ID            string         `json:"id,omitempty"`
	TeacherEmail  string         `json:"teacher_email"`
	TeacherName   string         `json:"teacher_name"`
	Header        Header         `json:"header"`
	Lines         []Line         `json:"rubric_lines"`
	StudentGrades []StudentGrade `json:"student_rubric_grade"`

	CreatedAt int64 `json:"created_at,omitempty"`
	UpdatedAt int64 `json:"updated_at,omitempty"`
}

// New returns a fresh in-memory rubric with the default title and one blank
// line (the trailing draft placeholder row). The store assigns ID on first save.
func New(teacherEmail, teacherName string) Rubric {
	return Rubric{
		TeacherEmail:  teacherEmail,
		TeacherName:   teacherName,
		Header:        Header{Title: DefaultTitle, GradeLevels: []string{}},
		Lines:         []Line{NewLine()},
		StudentGrades: []StudentGrade{},
	}
}

// NewLine returns a blank line with a freshly generated LineID and the four
// fixed tier values.
func NewLine() Line {
	return Line{
		LineID: newLineID(),
		PossibleScores: [4]PossibleScore{
			{Score: TierScores[0]},
			{Score: TierScores[1]},
			{Score: TierScores[2]},
			{Score: TierScores[3]},
		},
	}
}

// normalizeLines pins every line's four tier values to TierScores. Score
// columns in a stored or client-supplied document are display copies, never
// authoritative.
func (r *Rubric) normalizeLines() {
	for i := range r.Lines {
		for t := range r.Lines[i].PossibleScores {
			r.Lines[i].PossibleScores[t].Score = TierScores[t]
		}
	}
}

func newLineID() string {
	return fmt.Sprintf("line-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// NewID is the document id generator used by stores on first save.
func NewID() string { return uuid.NewString() }

func (r *Rubric) gradeFor(email string) *StudentGrade {
	for i := range r.StudentGrades {
		if r.StudentGrades[i].StudentEmail == email {
			return &r.StudentGrades[i]
		}
	}
	return nil
}
