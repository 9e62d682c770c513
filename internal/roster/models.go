package roster

import (
	"context"
	"errors"
	"strconv"
)

var ErrNotFound = errors.New("student not found")

// Student is a roster document, keyed by email. StudentID is a secondary,
// non-unique label (e.g. "1020/1").
type Student struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required"`
	StudentID  string `json:"student_id"`
	GradeLevel string `json:"grade_level" validate:"required"`

	CreatedAt int64 `json:"created_at,omitempty"`
}

// Store is the persistence collaborator for the shared student collection.
type Store interface {
	UpsertStudent(ctx context.Context, s Student) error
	GetStudent(ctx context.Context, email string) (Student, error)
	ListStudents(ctx context.Context) ([]Student, error)
	DeleteStudent(ctx context.Context, email string) error
}

// OrdinalGradeLevel renders a numeric grade level with its English ordinal
// suffix ("11" -> "11th"); non-numeric labels pass through unchanged.
func OrdinalGradeLevel(gradeLevel string) string {
	n, err := strconv.Atoi(gradeLevel)
	if err != nil {
		return gradeLevel
	}
	if d := n % 100; d >= 11 && d <= 13 {
		return gradeLevel + "th"
	}
	switch n % 10 {
	case 1:
		return gradeLevel + "st"
	case 2:
		return gradeLevel + "nd"
	case 3:
		return gradeLevel + "rd"
	default:
		return gradeLevel + "th"
	}
}
