package convo

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// invalidQuestionResponse is returned when the question is empty or the
// request body cannot be decoded.
const invalidQuestionResponse = "Please enter a valid question."

// RegisterRoutes mounts the conversation API.
func RegisterRoutes(r chi.Router, engine *Engine) {
	r.Post("/ask", handleAsk(engine))
	r.Get("/api/sessions/{id}/turns", handleSessionTurns(engine))
}

// askPayload accepts both the legacy "query" field and the newer
// "question" field; query wins when both are present.
type askPayload struct {
	Query     string `json:"query"`
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

func (p askPayload) question() string {
	if p.Query != "" {
		return p.Query
	}
	return p.Question
}

func handleAsk(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload askPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeResponse(w, http.StatusBadRequest, invalidQuestionResponse, "")
			return
		}

		question := strings.TrimSpace(payload.question())
		if question == "" {
			writeResponse(w, http.StatusBadRequest, invalidQuestionResponse, "")
			return
		}

		answer, err := engine.Ask(r.Context(), AskRequest{
			SessionID: payload.SessionID,
			UserID:    payload.UserID,
			Question:  question,
		})
		if err != nil {
			log.Printf("convo: ask failed: %v", err)
			writeResponse(w, http.StatusBadGateway, ApologyResponse, payload.SessionID)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(answer)
	}
}

func writeResponse(w http.ResponseWriter, status int, response, sessionID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]string{"response": response}
	if sessionID != "" {
		body["session_id"] = sessionID
	}
	json.NewEncoder(w).Encode(body)
}

func handleSessionTurns(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "id")
		turns, err := engine.Turns().TurnsBySession(r.Context(), sessionID)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if turns == nil {
			turns = []Turn{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(turns)
	}
}
