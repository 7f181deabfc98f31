// Package chat orchestrates the per-request answer pipeline: session
// resolution, dialect normalization, retrieval, filtering, prompt assembly,
// model completion and persistence.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jembertrip/trip-engine/internal/config"
	"github.com/jembertrip/trip-engine/internal/llm"
	"github.com/jembertrip/trip-engine/internal/observability"
	"github.com/jembertrip/trip-engine/internal/retrieval"
	"github.com/jembertrip/trip-engine/internal/storage"
)

// sessionTitleRunes caps the auto-generated session title.
const sessionTitleRunes = 30

// ErrEmptyQuestion indicates a blank question.
var ErrEmptyQuestion = errors.New("question must not be empty")

// Request is one user turn.
type Request struct {
	Question  string `json:"question"`
	SessionID int64  `json:"session_id,omitempty"`
	UserID    int64  `json:"user_id"`
	Language  string `json:"language,omitempty"`
}

// Response is the answer payload returned to the client.
type Response struct {
	Status          string                       `json:"status"`
	SessionID       int64                        `json:"session_id"`
	Answer          string                       `json:"answer"`
	Recommendations []storage.RecommendationCard `json:"recommendations"`
}

// Service runs the chat pipeline.
type Service struct {
	logger       *observability.Logger
	sessions     *storage.SessionRepository
	messages     *storage.MessageRepository
	normalizer   *retrieval.Normalizer
	guard        *retrieval.RegionGuard
	retriever    *retrieval.Retriever
	moodFilter   *retrieval.MoodFilter
	assembler    *retrieval.Assembler
	synchronizer *Synchronizer
	completer    llm.Completer
	cfg          config.ChatConfig
}

// NewService wires the pipeline components.
func NewService(
	logger *observability.Logger,
	repos *storage.Repositories,
	retriever *retrieval.Retriever,
	assembler *retrieval.Assembler,
	completer llm.Completer,
	cfg config.ChatConfig,
) *Service {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 4
	}

	return &Service{
		logger:       logger,
		sessions:     repos.Sessions,
		messages:     repos.Messages,
		normalizer:   retrieval.NewNormalizer(),
		guard:        retrieval.NewRegionGuard(),
		retriever:    retriever,
		moodFilter:   retrieval.NewMoodFilter(),
		assembler:    assembler,
		synchronizer: NewSynchronizer(cfg.MaxRecommendations),
		completer:    completer,
		cfg:          cfg,
	}
}

// Chat answers one user turn. The user and assistant messages are appended to
// the session in both the guarded and the model-answered paths, so history
// stays a faithful transcript.
func (s *Service) Chat(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, ErrEmptyQuestion
	}

	session, err := s.resolveSession(ctx, req)
	if err != nil {
		return nil, err
	}

	log := s.logger.WithSession(session.ID)

	normalized := s.normalizer.Normalize(req.Question)

	if s.guard.OutOfRegion(normalized) {
		log.Info().Str("reason", "out_of_region").Msg("question refused")
		return s.respond(ctx, session.ID, req.Question, RefusalAnswer, nil)
	}

	candidates, err := s.retriever.Retrieve(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		log.Info().Str("reason", "no_relevant_data").Msg("fallback answer")
		return s.respond(ctx, session.ID, req.Question, NoDataAnswer, nil)
	}

	intents := s.moodFilter.DetectIntents(normalized)
	filtered := s.moodFilter.Apply(candidates, intents)

	history, err := s.messages.Recent(ctx, session.ID, s.cfg.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	language := req.Language
	if language == "" {
		language = s.cfg.DefaultLanguage
	}

	prompt := BuildSystemPrompt(
		s.assembler.BuildContext(filtered),
		s.assembler.BuildHistory(history),
		language,
	)

	answer, err := s.completer.Complete(ctx, prompt, normalized)
	if err != nil {
		return nil, err
	}

	cards := s.synchronizer.Synchronize(answer, req.Question, filtered)

	log.Info().
		Int("candidates", len(candidates)).
		Int("filtered", len(filtered)).
		Int("cards", len(cards)).
		Strs("intents", intentStrings(intents)).
		Msg("chat turn answered")

	return s.respond(ctx, session.ID, req.Question, answer, cards)
}

// resolveSession loads the referenced session or creates a fresh one titled
// with the question's opening runes.
func (s *Service) resolveSession(ctx context.Context, req Request) (*storage.ChatSession, error) {
	if req.SessionID != 0 {
		session, err := s.sessions.GetByID(ctx, req.SessionID)
		if err != nil {
			return nil, fmt.Errorf("resolve session %d: %w", req.SessionID, err)
		}
		return session, nil
	}

	session := &storage.ChatSession{
		UserID: req.UserID,
		Title:  titleFromQuestion(req.Question),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// respond persists both turns and builds the response payload.
func (s *Service) respond(ctx context.Context, sessionID int64, question, answer string, cards []storage.RecommendationCard) (*Response, error) {
	userMsg := &storage.ChatMessage{
		SessionID: sessionID,
		Sender:    storage.SenderUser,
		Content:   question,
	}
	if err := s.messages.Append(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("store user message: %w", err)
	}

	assistantMsg := &storage.ChatMessage{
		SessionID:       sessionID,
		Sender:          storage.SenderAssistant,
		Content:         answer,
		Recommendations: cards,
	}
	if err := s.messages.Append(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("store assistant message: %w", err)
	}

	if cards == nil {
		cards = []storage.RecommendationCard{}
	}

	return &Response{
		Status:          "success",
		SessionID:       sessionID,
		Answer:          answer,
		Recommendations: cards,
	}, nil
}

func titleFromQuestion(question string) string {
	runes := []rune(strings.TrimSpace(question))
	if len(runes) > sessionTitleRunes {
		runes = runes[:sessionTitleRunes]
	}
	return string(runes)
}

func intentStrings(intents []retrieval.Intent) []string {
	out := make([]string, len(intents))
	for i, it := range intents {
		out[i] = string(it)
	}
	return out
}
