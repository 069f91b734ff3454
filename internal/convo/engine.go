package convo

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saanpro/saanbot/internal/knowledge"
	"github.com/saanpro/saanbot/internal/leads"
	"github.com/saanpro/saanbot/internal/llm"
	"github.com/saanpro/saanbot/internal/session"
)

// providerTimeout bounds one outbound completion call.
const providerTimeout = 30 * time.Second

// ApologyResponse is the fixed user-facing answer for every internal
// failure path. Raw errors never reach the user.
const ApologyResponse = `I'm sorry, an error occurred while trying to fetch that information. Please contact Srinivas Perur Varda at +91 9342659932 or visit www.saanpro.com.`

// Engine runs one question through the full turn pipeline: snapshot,
// assemble, complete, record, capture lead.
type Engine struct {
	kb        *knowledge.Store
	turns     *Store
	leadStore *leads.Store
	sessions  *session.Registry
	provider  llm.Provider
	model     string
}

// NewEngine creates a conversation engine.
func NewEngine(kb *knowledge.Store, turns *Store, leadStore *leads.Store, sessions *session.Registry, provider llm.Provider, model string) *Engine {
	return &Engine{
		kb:        kb,
		turns:     turns,
		leadStore: leadStore,
		sessions:  sessions,
		provider:  provider,
		model:     model,
	}
}

// Ask answers one question. It returns an error only for provider
// failures; every persistence problem is logged and swallowed so the
// user-facing response is unaffected.
func (e *Engine) Ask(ctx context.Context, req AskRequest) (*Answer, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, fmt.Errorf("question is required")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	// First sight of a session: seed its window from the durable log.
	if !e.sessions.Known(sessionID) {
		if turns, err := e.turns.RecentTurns(ctx, sessionID, session.HistoryWindow); err != nil {
			log.Printf("convo: loading history for session %s: %v", sessionID, err)
		} else if len(turns) > 0 {
			e.sessions.SeedHistory(sessionID, turns)
		}
	}

	snapshot := e.kb.Snapshot(ctx)
	blocks := knowledge.Render(snapshot)
	_, messages := Assemble(blocks, e.sessions.History(sessionID), question)

	cctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	resp, err := e.provider.Complete(cctx, llm.CompletionRequest{
		Model:       e.model,
		Messages:    messages,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}
	answer := strings.TrimSpace(resp.Content)
	if answer == "" {
		return nil, fmt.Errorf("completion response missing content")
	}

	e.sessions.AppendTurn(sessionID, question, answer)

	if _, err := e.turns.AppendTurn(ctx, Turn{
		SessionID: sessionID,
		UserID:    req.UserID,
		Question:  question,
		Answer:    answer,
		Sources:   snapshot.Sources(),
	}); err != nil {
		log.Printf("convo: persisting turn for session %s: %v", sessionID, err)
	}

	e.captureLead(ctx, sessionID, question)

	return &Answer{SessionID: sessionID, Response: answer}, nil
}

// captureLead scans the raw question for contact details and persists a
// lead the first time the session has both phone and email. The latch is
// only set after a successful write so a failed write can retry on a
// later contact change.
func (e *Engine) captureLead(ctx context.Context, sessionID, question string) {
	extracted := leads.Extract(question)
	if extracted.Empty() {
		return
	}

	merged, changed := e.sessions.MergeContact(sessionID, extracted)
	if !leads.ShouldCommit(merged, changed, e.sessions.LeadCommitted(sessionID)) {
		return
	}

	lead := leads.Lead{
		Name:    merged.Name,
		Email:   merged.Email,
		Phone:   merged.Phone,
		Message: question,
	}
	if _, err := e.leadStore.Append(ctx, lead); err != nil {
		log.Printf("convo: persisting lead for session %s: %v", sessionID, err)
		return
	}
	e.sessions.MarkLeadCommitted(sessionID)
}

// Turns exposes the chat log store for route handlers.
func (e *Engine) Turns() *Store {
	return e.turns
}
