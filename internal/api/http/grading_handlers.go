package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rubricboard/rubricboard/internal/rubric"
)

type selectGradeReq struct {
	StudentEmail  string `json:"student_email"`
	CategoryIndex int    `json:"category_index"`
	GradingIndex  int    `json:"grading_index"`
	// Mirrors the client's edition mode; grading is disabled while editing.
	Editing bool `json:"editing,omitempty"`
}

// POST /rubrics/{rubricID}/grades — record a grade-cell click for the
// selected student. Rejections (no student, edition mode, non-gradable line)
// leave the document untouched.
func SelectGradeHandler(svc *rubric.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := loadOwned(w, r, svc)
		if !ok {
			return
		}
		var req selectGradeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		loc := rubric.GradeLocation{CategoryIndex: req.CategoryIndex, GradingIndex: req.GradingIndex}
		updated, err := svc.SelectGrade(r.Context(), doc.ID, req.StudentEmail, loc, req.Editing)
		if err != nil {
			switch {
			case errors.Is(err, rubric.ErrNoStudentSelected),
				errors.Is(err, rubric.ErrEditionMode),
				errors.Is(err, rubric.ErrLineNotGradable),
				errors.Is(err, rubric.ErrBadGradingIndex),
				errors.Is(err, rubric.ErrNotAssigned):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, updated)
	}
}
