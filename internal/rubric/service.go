package rubric

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rubricboard/rubricboard/internal/roster"
	syncx "github.com/rubricboard/rubricboard/internal/sync"
)

var ErrLineNotFound = errors.New("line not found")

// AssignedStudent is one row of the derived assigned-students list: the grade
// record joined against the roster by email.
type AssignedStudent struct {
	Student         roster.Student  `json:"student"`
	GradeLevelLabel string          `json:"grade_level_label"`
	CurrentGrade    int             `json:"current_grade"`
	GradeLocations  []GradeLocation `json:"rubric_grades_location"`
}

// Service applies rubric mutations as read-modify-write cycles against the
// store: every successful write is followed by a snapshot publish so live
// subscribers re-render from the authoritative document.
type Service struct {
	store  Store
	roster roster.Store
	hub    *syncx.Hub
	events *syncx.EventRepo // nil when no event log is configured
}

func NewService(store Store, rosterStore roster.Store, hub *syncx.Hub, events *syncx.EventRepo) *Service {
	return &Service{store: store, roster: rosterStore, hub: hub, events: events}
}

// Create persists a fresh rubric owned by the given teacher and returns it
// with its store-assigned id.
func (s *Service) Create(ctx context.Context, teacherEmail, teacherName string) (Rubric, error) {
	r := New(teacherEmail, teacherName)
	return s.save(ctx, r)
}

func (s *Service) Get(ctx context.Context, id string) (Rubric, error) {
	return s.store.GetRubric(ctx, id)
}

func (s *Service) List(ctx context.Context, teacherEmail string, limit, offset int) ([]Summary, error) {
	return s.store.ListRubrics(ctx, ListOpts{TeacherEmail: teacherEmail, Limit: limit, Offset: offset})
}

// Save is the full-document overwrite used by the edit screen. Cached grades
// are recomputed before the write so a clobbered concurrent save is still
// internally consistent (last write wins, no merge).
func (s *Service) Save(ctx context.Context, r Rubric) (Rubric, error) {
	r.normalizeLines()
	r.recomputeGrades()
	return s.save(ctx, r)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteRubric(ctx, id); err != nil {
		return err
	}
	s.publishDeleted(ctx, id)
	return nil
}

func (s *Service) AddLine(ctx context.Context, id string) (Rubric, string, error) {
	r, err := s.store.GetRubric(ctx, id)
	if err != nil {
		return Rubric{}, "", err
	}
	lineID := r.AddLine()
	r, err = s.save(ctx, r)
	return r, lineID, err
}

func (s *Service) SetCategoryName(ctx context.Context, id, lineID, name string) (Rubric, error) {
	r, err := s.store.GetRubric(ctx, id)
	if err != nil {
		return Rubric{}, err
	}
	if !r.SetCategoryName(lineID, name) {
		return Rubric{}, ErrLineNotFound
	}
	return s.save(ctx, r)
}

func (s *Service) SetScoreText(ctx context.Context, id, lineID string, tier int, text string) (Rubric, error) {
	r, err := s.store.GetRubric(ctx, id)
	if err != nil {
		return Rubric{}, err
	}
	if !r.SetScoreText(lineID, tier, text) {
		return Rubric{}, ErrLineNotFound
	}
	return s.save(ctx, r)
}

// RemoveLine cascades grade reindexing and persists. Unknown lineIDs are a
// silent no-op: the current document is returned unchanged and unwritten.
func (s *Service) RemoveLine(ctx context.Context, id, lineID string) (Rubric, error) {
	r, err := s.store.GetRubric(ctx, id)
	if err != nil {
		return Rubric{}, err
	}
	if r.lineIndex(lineID) < 0 {
		return r, nil
	}
	r.RemoveLine(lineID)
	return s.save(ctx, r)
}

func (s *Service) SelectGrade(ctx context.Context, id, studentEmail string, loc GradeLocation, editing bool) (Rubric, error) {
	r, err := s.store.GetRubric(ctx, id)
	if err != nil {
		return Rubric{}, err
	}
	if err := r.SelectGrade(studentEmail, loc, editing); err != nil {
		return Rubric{}, err
	}
	return s.save(ctx, r)
}

// Assign adds a student (looked up in the roster by email) with an empty
// grade record.
func (s *Service) Assign(ctx context.Context, id, email string) (Rubric, error) {
	if email == "" {
		return Rubric{}, ErrEmailRequired
	}
	if _, err := s.roster.GetStudent(ctx, email); err != nil {
		return Rubric{}, err
	}
	r, err := s.store.GetRubric(ctx, id)
	if err != nil {
		return Rubric{}, err
	}
	if err := r.AssignStudent(email); err != nil {
		return Rubric{}, err
	}
	return s.save(ctx, r)
}

func (s *Service) Unassign(ctx context.Context, id, email string) (Rubric, bool, error) {
	r, err := s.store.GetRubric(ctx, id)
	if err != nil {
		return Rubric{}, false, err
	}
	removed := r.UnassignStudent(email)
	if !removed {
		return r, false, nil
	}
	r, err = s.save(ctx, r)
	return r, true, err
}

// AssignedStudents joins the rubric's grade records against the roster by
// email. References with no matching roster document are dropped from the
// view; the underlying grade record is left intact.
func (s *Service) AssignedStudents(ctx context.Context, id string) ([]AssignedStudent, error) {
	r, err := s.store.GetRubric(ctx, id)
	if err != nil {
		return nil, err
	}
	students, err := s.roster.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	byEmail := make(map[string]roster.Student, len(students))
	for _, st := range students {
		byEmail[st.Email] = st
	}

	out := []AssignedStudent{}
	for _, g := range r.StudentGrades {
		st, ok := byEmail[g.StudentEmail]
		if !ok {
			continue
		}
		out = append(out, AssignedStudent{
			Student:         st,
			GradeLevelLabel: roster.OrdinalGradeLevel(st.GradeLevel),
			CurrentGrade:    g.CurrentGrade,
			GradeLocations:  g.GradeLocations,
		})
	}
	return out, nil
}

func (s *Service) save(ctx context.Context, r Rubric) (Rubric, error) {
	stored, err := s.store.PutRubric(ctx, r)
	if err != nil {
		return Rubric{}, err
	}
	s.publishSaved(ctx, stored)
	return stored, nil
}

func (s *Service) publishSaved(ctx context.Context, r Rubric) {
	data, err := json.Marshal(r)
	if err != nil {
		return
	}
	if s.hub != nil {
		s.hub.Publish("rubric/"+r.ID, data)
	}
	if s.events != nil {
		_ = s.events.Append(ctx, syncx.Event{Type: syncx.EventRubricSaved, Key: r.ID, DataJSON: string(data)})
	}
}

func (s *Service) publishDeleted(ctx context.Context, id string) {
	if s.hub != nil {
		s.hub.Publish("rubric/"+id, []byte(`{"deleted":true}`))
	}
	if s.events != nil {
		_ = s.events.Append(ctx, syncx.Event{Type: syncx.EventRubricDeleted, Key: id, DataJSON: "{}"})
	}
}
