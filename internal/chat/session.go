package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/gauchoeats/gaucho/internal/gateway"
	"github.com/gauchoeats/gaucho/internal/models"
)

// ErrorReply is appended in place of a bot answer when the request fails
const ErrorReply = "Error fetching response."

// Recommender answers a free-text query
type Recommender interface {
	Recommend(ctx context.Context, req gateway.RecommendRequest) (string, error)
}

// Session is the chat tab: an append-only transcript and a daily query counter
type Session struct {
	recommender Recommender
	userID      int64
	logger      *slog.Logger

	mu         sync.Mutex
	transcript []models.ChatMessage
	queries    int
}

// NewSession starts an empty session for userID
func NewSession(recommender Recommender, userID int64, logger *slog.Logger) *Session {
	return &Session{
		recommender: recommender,
		userID:      userID,
		logger:      logger,
	}
}

// Send appends the user's text, asks for a recommendation and appends the reply.
// Empty input is ignored. Returns the bot message, or false when nothing was sent.
func (s *Session) Send(ctx context.Context, text string) (models.ChatMessage, bool) {
	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, false
	}

	s.mu.Lock()
	s.transcript = append(s.transcript, models.ChatMessage{Role: models.RoleUser, Text: text})
	s.queries++
	req := gateway.RecommendRequest{
		Query:            text,
		UserID:           s.userID,
		DailyQueryNumber: s.queries,
	}
	s.mu.Unlock()

	reply := models.ChatMessage{Role: models.RoleBot}
	answer, err := s.recommender.Recommend(ctx, req)
	if err != nil {
		s.logger.Error("failed to fetch recommendation", "query_number", req.DailyQueryNumber, "error", err)
		reply.Text = ErrorReply
	} else {
		reply.Text = answer
	}

	s.mu.Lock()
	s.transcript = append(s.transcript, reply)
	s.mu.Unlock()

	return reply, true
}

// Transcript returns a copy of every message so far, oldest first
func (s *Session) Transcript() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.transcript...)
}

// QueryCount returns how many queries this session has sent
func (s *Session) QueryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries
}
