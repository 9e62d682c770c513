package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rubricboard/rubricboard/internal/roster"
	"github.com/rubricboard/rubricboard/internal/rubric"
	syncx "github.com/rubricboard/rubricboard/internal/sync"
)

// GET /rubrics/{rubricID}/watch — SSE feed of the rubric document. The
// current snapshot is sent immediately, then every save re-delivers the
// authoritative document. One subscription per open screen; torn down when
// the client disconnects.
func WatchRubricHandler(svc *rubric.Service, hub *syncx.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := loadOwned(w, r, svc)
		if !ok {
			return
		}
		snapshot, err := json.Marshal(doc)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		serveSSE(w, r, hub, "rubric/"+doc.ID, snapshot)
	}
}

// GET /students/watch — SSE feed of the shared roster.
func WatchStudentsHandler(store roster.Store, hub *syncx.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListStudents(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		snapshot, err := json.Marshal(list)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		serveSSE(w, r, hub, "students", snapshot)
	}
}

func serveSSE(w http.ResponseWriter, r *http.Request, hub *syncx.Hub, topic string, initial []byte) {
	fl, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := hub.Subscribe(topic)
	defer cancel()

	fmt.Fprintf(w, "data: %s\n\n", initial)
	fl.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case data, open := <-ch:
			if !open {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			fl.Flush()
		}
	}
}
