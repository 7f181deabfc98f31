// Package llm brokers chat completions through an OpenAI-compatible API,
// rotating across a pool of credentials.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/jembertrip/trip-engine/internal/config"
	"github.com/jembertrip/trip-engine/internal/observability"
)

// ErrNoCredentials indicates the gateway was constructed without API keys.
var ErrNoCredentials = errors.New("no llm api keys configured")

// Completer produces a model answer for a system prompt and user message.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Gateway issues chat completions against an OpenAI-compatible endpoint.
// Each call advances a round-robin cursor over the credential pool so load
// spreads evenly; the cursor moves regardless of whether the call succeeds.
type Gateway struct {
	logger      *observability.Logger
	clients     []*openai.Client
	cursor      atomic.Uint64
	model       string
	temperature float32
}

// NewGateway builds a gateway from the configured credential pool. One client
// is constructed per key up front so requests never pay setup cost.
func NewGateway(logger *observability.Logger, cfg config.LLMConfig) (*Gateway, error) {
	if len(cfg.APIKeys) == 0 {
		return nil, ErrNoCredentials
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	clients := make([]*openai.Client, 0, len(cfg.APIKeys))
	for _, key := range cfg.APIKeys {
		clientCfg := openai.DefaultConfig(key)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		clientCfg.HTTPClient = &http.Client{Timeout: timeout}
		clients = append(clients, openai.NewClientWithConfig(clientCfg))
	}

	logger.Info().
		Int("keys", len(clients)).
		Str("model", cfg.Model).
		Msg("llm gateway initialized")

	return &Gateway{
		logger:      logger,
		clients:     clients,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// Complete sends one system+user exchange and returns the model's reply.
func (g *Gateway) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	idx := g.next()
	client := g.clients[idx]

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
	})
	if err != nil {
		g.logger.Warn().Err(err).Int("key_index", idx).Msg("chat completion failed")
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: empty response")
	}

	return resp.Choices[0].Message.Content, nil
}

// next returns the index of the credential to use and advances the cursor.
func (g *Gateway) next() int {
	return int(g.cursor.Add(1)-1) % len(g.clients)
}

// KeyCount returns the size of the credential pool.
func (g *Gateway) KeyCount() int {
	return len(g.clients)
}

// MockCompleter returns canned answers for tests.
type MockCompleter struct {
	Answer string
	Err    error

	// Calls records every (system, user) pair received.
	Calls []MockCall
}

// MockCall is one recorded Complete invocation.
type MockCall struct {
	SystemPrompt string
	UserMessage  string
}

// Complete records the call and returns the configured answer.
func (m *MockCompleter) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	m.Calls = append(m.Calls, MockCall{SystemPrompt: systemPrompt, UserMessage: userMessage})
	if m.Err != nil {
		return "", m.Err
	}
	return m.Answer, nil
}

var (
	_ Completer = (*Gateway)(nil)
	_ Completer = (*MockCompleter)(nil)
)
