package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	authmw "github.com/rubricboard/rubricboard/internal/auth/middleware"
	"github.com/rubricboard/rubricboard/internal/rbac"
	"github.com/rubricboard/rubricboard/internal/rubric"
)

// POST /rubrics — start a new rubric for the signed-in teacher (default
// title, one blank draft line).
func CreateRubricHandler(svc *rubric.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := authmw.EmailFromContext(r.Context())
		name := authmw.NameFromContext(r.Context())
		if email == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		created, err := svc.Create(r.Context(), email, name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, created)
	}
}

// GET /rubrics — list-screen summaries for the signed-in teacher.
func ListRubricsHandler(svc *rubric.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := authmw.EmailFromContext(r.Context())
		limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
		offset := parseIntDefault(r.URL.Query().Get("offset"), 0)
		list, err := svc.List(r.Context(), email, limit, offset)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, list)
	}
}

// GET /rubrics/{rubricID}
func GetRubricHandler(svc *rubric.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := loadOwned(w, r, svc)
		if !ok {
			return
		}
		writeJSON(w, doc)
	}
}

// PUT /rubrics/{rubricID} — full-document overwrite from the edit screen.
// Owner identity is stamped from the session, never trusted from the body.
func SaveRubricHandler(svc *rubric.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := loadOwned(w, r, svc)
		if !ok {
			return
		}
		var in rubric.Rubric
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		in.ID = doc.ID
		in.CreatedAt = doc.CreatedAt
		in.TeacherEmail = authmw.EmailFromContext(r.Context())
		in.TeacherName = authmw.NameFromContext(r.Context())
		if strings.TrimSpace(in.Header.Title) == "" {
			in.Header.Title = rubric.DefaultTitle
		}
		saved, err := svc.Save(r.Context(), in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, saved)
	}
}

// DELETE /rubrics/{rubricID}
func DeleteRubricHandler(svc *rubric.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := loadOwned(w, r, svc)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), doc.ID); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// POST /rubrics/{rubricID}/lines — append a blank category.
func AddLineHandler(svc *rubric.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := loadOwned(w, r, svc)
		if !ok {
			return
		}
		updated, lineID, err := svc.AddLine(r.Context(), doc.ID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"line_id": lineID, "rubric": updated})
	}
}

type updateLineReq struct {
	Field string `json:"field"` // "category_name" | "score_text"
	Tier  int    `json:"tier,omitempty"`
	Value string `json:"value"`
}

// PATCH /rubrics/{rubricID}/lines/{lineID} — edit one field in place.
func UpdateLineHandler(svc *rubric.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := loadOwned(w, r, svc)
		if !ok {
			return
		}
		lineID := chi.URLParam(r, "lineID")
		var req updateLineReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		var updated rubric.Rubric
		var err error
		switch req.Field {
		case "category_name":
			updated, err = svc.SetCategoryName(r.Context(), doc.ID, lineID, req.Value)
		case "score_text":
			updated, err = svc.SetScoreText(r.Context(), doc.ID, lineID, req.Tier, req.Value)
		default:
			http.Error(w, "unknown field: "+req.Field, http.StatusBadRequest)
			return
		}
		if err != nil {
			if errors.Is(err, rubric.ErrLineNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, updated)
	}
}

// DELETE /rubrics/{rubricID}/lines/{lineID} — remove a category, cascading
// grade reindexing. Unknown lineIDs are a silent no-op.
func RemoveLineHandler(svc *rubric.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := loadOwned(w, r, svc)
		if !ok {
			return
		}
		updated, err := svc.RemoveLine(r.Context(), doc.ID, chi.URLParam(r, "lineID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, updated)
	}
}

// loadOwned fetches the rubric from the URL and enforces that the caller owns
// it (admins pass).
func loadOwned(w http.ResponseWriter, r *http.Request, svc *rubric.Service) (rubric.Rubric, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "rubricID"))
	if id == "" {
		http.Error(w, "rubricID required", http.StatusBadRequest)
		return rubric.Rubric{}, false
	}
	doc, err := svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, rubric.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return rubric.Rubric{}, false
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return rubric.Rubric{}, false
	}
	email := authmw.EmailFromContext(r.Context())
	if doc.TeacherEmail != email && rbac.RoleFromContext(r.Context()) != "admin" {
		http.Error(w, "forbidden", http.StatusForbidden)
		return rubric.Rubric{}, false
	}
	return doc, true
}
