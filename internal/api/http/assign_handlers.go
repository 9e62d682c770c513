package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rubricboard/rubricboard/internal/roster"
	"github.com/rubricboard/rubricboard/internal/rubric"
)

// GET /rubrics/{rubricID}/students — the derived assigned-students list
// (grade records joined against the roster by email).
func AssignedStudentsHandler(svc *rubric.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := loadOwned(w, r, svc)
		if !ok {
			return
		}
		list, err := svc.AssignedStudents(r.Context(), doc.ID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, list)
	}
}

// POST /rubrics/{rubricID}/students {"email": "..."} — assign a roster
// student with an empty grade record.
func AssignStudentHandler(svc *rubric.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := loadOwned(w, r, svc)
		if !ok {
			return
		}
		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		updated, err := svc.Assign(r.Context(), doc.ID, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, rubric.ErrEmailRequired), errors.Is(err, rubric.ErrAlreadyAssigned):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, roster.ErrNotFound):
				http.Error(w, err.Error(), http.StatusNotFound)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, updated)
	}
}

// DELETE /rubrics/{rubricID}/students/{email} — unassign. The response tells
// the client whether its selection should be cleared.
func UnassignStudentHandler(svc *rubric.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := loadOwned(w, r, svc)
		if !ok {
			return
		}
		email := chi.URLParam(r, "email")
		updated, removed, err := svc.Unassign(r.Context(), doc.ID, email)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if !removed {
			http.Error(w, rubric.ErrNotAssigned.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]any{"rubric": updated, "removed": email})
	}
}
