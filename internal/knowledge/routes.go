package knowledge

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the knowledge administration API.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/knowledge", func(r chi.Router) {
		r.Get("/{collection}", handleGetCollection(store))
		r.Put("/{collection}", handleReplaceCollection(store))
	})
}

func handleGetCollection(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "collection")
		records := store.FetchCollection(r.Context(), name)
		if records == nil {
			records = []Record{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}
}

func handleReplaceCollection(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "collection")

		var records []Record
		if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		if err := store.ReplaceCollection(r.Context(), name, records); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"collection": name, "count": len(records)})
	}
}
