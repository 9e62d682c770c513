package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rubricboard/rubricboard/internal/config"
	"github.com/rubricboard/rubricboard/internal/roster"
	"github.com/rubricboard/rubricboard/internal/rubric"
	"github.com/rubricboard/rubricboard/internal/sharelink"
)

// GET /rubrics/{rubricID}/share?student=a@x.com — mint the read-only
// feedback URL for an assigned student.
func ShareLinkHandler(svc *rubric.Service, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := loadOwned(w, r, svc)
		if !ok {
			return
		}
		email := strings.TrimSpace(r.URL.Query().Get("student"))
		if email == "" {
			http.Error(w, "student required", http.StatusBadRequest)
			return
		}
		assigned := false
		for _, g := range doc.StudentGrades {
			if g.StudentEmail == email {
				assigned = true
				break
			}
		}
		if !assigned {
			http.Error(w, rubric.ErrNotAssigned.Error(), http.StatusBadRequest)
			return
		}
		url := sharelink.BuildURL(cfg.PublicURL, doc.ID, doc.TeacherEmail, email)
		writeJSON(w, map[string]string{"url": url})
	}
}

type feedbackStudent struct {
	Name            string `json:"name"`
	GradeLevelLabel string `json:"grade_level_label"`
}

type feedbackResp struct {
	Title           string                 `json:"title"`
	TeacherName     string                 `json:"teacher_name"`
	Student         feedbackStudent        `json:"student"`
	Lines           []rubric.Line          `json:"rubric_lines"`
	GradeLocations  []rubric.GradeLocation `json:"rubric_grades_location"`
	CurrentGrade    int                    `json:"current_grade"`
	MaxGrade        int                    `json:"max_grade"`
	GradableLineIDs []string               `json:"gradable_line_ids"`
}

// GET /feedback?id=..&student=..&teacherUid=.. — the public read-only view.
// One-shot fetch, no subscription, no writes; every unresolvable parameter
// is a user-visible error.
func FeedbackHandler(svc *rubric.Service, students roster.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := sharelink.ParseQuery(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		doc, err := svc.Get(r.Context(), p.RubricID)
		if err != nil || doc.TeacherEmail != p.TeacherUID {
			http.Error(w, rubric.ErrNotFound.Error(), http.StatusNotFound)
			return
		}
		st, err := students.GetStudent(r.Context(), p.StudentEmail)
		if err != nil {
			if errors.Is(err, roster.ErrNotFound) {
				http.Error(w, "student not found: "+p.StudentEmail, http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		resp := feedbackResp{
			Title:           doc.Header.Title,
			TeacherName:     doc.TeacherName,
			Student:         feedbackStudent{Name: st.Name, GradeLevelLabel: roster.OrdinalGradeLevel(st.GradeLevel)},
			Lines:           doc.Lines,
			GradeLocations:  []rubric.GradeLocation{},
			MaxGrade:        doc.MaxGrade(),
			GradableLineIDs: doc.GradableLineIDs(),
		}
		for _, g := range doc.StudentGrades {
			if g.StudentEmail == st.Email {
				resp.GradeLocations = g.GradeLocations
				resp.CurrentGrade = g.CurrentGrade
				break
			}
		}
		writeJSON(w, resp)
	}
}
