package leads

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the lead API routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Get("/api/leads", handleListLeads(store))
}

func handleListLeads(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if l := r.URL.Query().Get("limit"); l != "" {
			if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
				limit = parsed
			}
		}

		leads, err := store.List(r.Context(), limit)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if leads == nil {
			leads = []Lead{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(leads)
	}
}
