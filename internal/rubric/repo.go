package rubric

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("rubric not found")

type ListOpts struct {
	TeacherEmail string
	Limit        int
	Offset       int
}

// Summary is the list-screen projection: one card per rubric.
type Summary struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	AssignedStudents int    `json:"assigned_students"`
}

// Store is the persistence collaborator: document-per-rubric, full-document
// overwrite on save, last write wins.
type Store interface {
	// PutRubric upserts the document, assigning an id when empty, and
	// returns the stored rubric.
	PutRubric(ctx context.Context, r Rubric) (Rubric, error)
	GetRubric(ctx context.Context, id string) (Rubric, error)
	ListRubrics(ctx context.Context, opts ListOpts) ([]Summary, error)
	DeleteRubric(ctx context.Context, id string) error
}
