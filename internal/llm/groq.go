package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// groqBaseURL is Groq's OpenAI-compatible chat completions endpoint.
const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider implements Provider using the Groq API (OpenAI-compatible).
type GroqProvider struct {
	client *openai.Client
	model  string
}

// NewGroqProvider creates a new Groq provider.
func NewGroqProvider(apiKey string, model string) *GroqProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	client := openai.NewClientWithConfig(cfg)
	return &GroqProvider{
		client: client,
		model:  model,
	}
}

func (p *GroqProvider) Name() string {
	return "groq"
}

func (p *GroqProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	var messages []openai.ChatCompletionMessage
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: float32(req.Temperature),
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("groq response contained no choices")
	}

	return &CompletionResponse{
		Content:      resp.Choices[0].Message.Content,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		Model:        resp.Model,
		FinishReason: string(resp.Choices[0].FinishReason),
	}, nil
}
