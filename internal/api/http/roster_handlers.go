package http

import (
	"encoding/json"
	"net/http"

	"github.com/rubricboard/rubricboard/internal/roster"
	syncx "github.com/rubricboard/rubricboard/internal/sync"
)

// GET /students — the full shared roster (the autocomplete's data source).
func ListStudentsHandler(store roster.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListStudents(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, list)
	}
}

// POST /students/import — multipart CSV upload (file=). Bad rows are skipped
// and counted; the response reports both tallies.
func ImportStudentsCSVHandler(store roster.Store, hub *syncx.Hub, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		res, err := roster.ImportCSV(r.Context(), store, f)
		if err != nil {
			http.Error(w, "bad csv: "+err.Error(), http.StatusBadRequest)
			return
		}

		if list, err := store.ListStudents(r.Context()); err == nil {
			if data, err := json.Marshal(list); err == nil && hub != nil {
				hub.Publish("students", data)
			}
		}
		if events != nil {
			data, _ := json.Marshal(res)
			_ = events.Append(r.Context(), syncx.Event{Type: syncx.EventRosterImported, Key: "roster", DataJSON: string(data)})
		}
		writeJSON(w, res)
	}
}
