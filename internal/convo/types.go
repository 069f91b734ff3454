package convo

import "time"

// Turn is a persisted record of one completed exchange, immutable after
// creation. Sources lists the knowledge collections that were non-empty
// when the answer was produced.
type Turn struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Sources   []string  `json:"sources"`
	CreatedAt time.Time `json:"created_at"`
}

// AskRequest carries one inbound question through the engine.
type AskRequest struct {
	SessionID string
	UserID    string
	Question  string
}

// Answer is the engine's reply for one turn.
type Answer struct {
	SessionID string `json:"session_id"`
	Response  string `json:"response"`
}
