package convo

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	SessionID string `json:"session_id"` // empty for new sessions
	UserID    string `json:"user_id"`
	Content   string `json:"content"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type      string `json:"type"` // "response" or "error"
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
}

// RegisterWebsocket mounts the realtime chat endpoint.
func RegisterWebsocket(r chi.Router, engine *Engine) {
	r.Get("/ws", handleWebSocket(engine))
}

func handleWebSocket(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("convo: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("convo: websocket read: %v", err)
				}
				return
			}

			var req wsRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				sendWS(conn, wsResponse{Type: "error", Content: invalidQuestionResponse})
				continue
			}
			if req.Content == "" {
				sendWS(conn, wsResponse{Type: "error", SessionID: req.SessionID, Content: invalidQuestionResponse})
				continue
			}

			answer, err := engine.Ask(r.Context(), AskRequest{
				SessionID: req.SessionID,
				UserID:    req.UserID,
				Question:  req.Content,
			})
			if err != nil {
				log.Printf("convo: websocket ask failed: %v", err)
				sendWS(conn, wsResponse{Type: "error", SessionID: req.SessionID, Content: ApologyResponse})
				continue
			}

			sendWS(conn, wsResponse{Type: "response", SessionID: answer.SessionID, Content: answer.Response})
		}
	}
}

func sendWS(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("convo: websocket write: %v", err)
	}
}
