package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/alphadiscovery/alpha/internal/client"
	"github.com/alphadiscovery/alpha/internal/domain"
	"github.com/alphadiscovery/alpha/internal/events"
	"github.com/alphadiscovery/alpha/internal/repository"
	"github.com/alphadiscovery/alpha/internal/stream"
)

// ChatService ties conversation history to the backend chat stream: it sends
// the thread's messages, forwards decoded chunks to the caller, and persists
// both sides of the exchange.
type ChatService struct {
	threadRepo repository.ThreadRepository
	backend    *client.Client
}

func NewChatService(repo repository.ThreadRepository, backend *client.Client) *ChatService {
	return &ChatService{
		threadRepo: repo,
		backend:    backend,
	}
}

func (s *ChatService) NewThread(ctx context.Context) (*domain.Thread, error) {
	thread := &domain.Thread{}
	return thread, s.threadRepo.Create(ctx, thread)
}

func (s *ChatService) GetActiveThread(ctx context.Context) (*domain.Thread, error) {
	thread, err := s.threadRepo.GetMostRecent(ctx)
	if err != nil {
		if domain.IsNoThreadError(err) {
			return s.NewThread(ctx)
		}
		return nil, fmt.Errorf("failed to get most recent thread: %w", err)
	}
	return thread, nil
}

func (s *ChatService) ListThreads(ctx context.Context, limit int) ([]*domain.Thread, error) {
	return s.threadRepo.List(ctx, limit)
}

func (s *ChatService) GetThread(ctx context.Context, partialID string) (*domain.Thread, error) {
	return s.threadRepo.FindByPartialID(ctx, partialID)
}

func (s *ChatService) GetMessages(ctx context.Context, threadID uuid.UUID) ([]domain.Message, error) {
	return s.threadRepo.GetMessages(ctx, threadID)
}

// SendMessageStream sends content on the thread and streams the reply into
// handler. The user message is stored up front; the assistant reply (with any
// finalized tool calls) and tool results are stored as they complete.
func (s *ChatService) SendMessageStream(ctx context.Context, threadID uuid.UUID, content string, handler stream.Handler) error {
	history, err := s.threadRepo.GetMessages(ctx, threadID)
	if err != nil {
		return fmt.Errorf("failed to get conversation history: %w", err)
	}

	userMsg := &domain.Message{
		Role:    domain.RoleHuman,
		Content: content,
	}
	if err := s.threadRepo.AddMessage(ctx, threadID, userMsg); err != nil {
		return fmt.Errorf("failed to store user message: %w", err)
	}

	messages := buildHistory(history)
	messages = append(messages, client.Message{Role: "user", Content: content})

	persisting := &persistingHandler{
		inner:    handler,
		repo:     s.threadRepo,
		ctx:      ctx,
		threadID: threadID,
	}
	return s.backend.ChatStream(ctx, messages, persisting)
}

func buildHistory(messages []domain.Message) []client.Message {
	var history []client.Message
	for _, msg := range messages {
		switch msg.Role {
		case domain.RoleAssistant:
			history = append(history, client.Message{Role: "assistant", Content: msg.Content})
		case domain.RoleHuman:
			history = append(history, client.Message{Role: "user", Content: msg.Content})
		}
		// Tool messages are display records; the backend rebuilds tool
		// context itself and rejects a bare tool role without call IDs.
	}
	return history
}

// persistingHandler records the assistant's side of the exchange while
// forwarding every event to the consumer unchanged.
type persistingHandler struct {
	inner    stream.Handler
	repo     repository.ThreadRepository
	ctx      context.Context
	threadID uuid.UUID
	calls    []domain.ToolCall
}

func (h *persistingHandler) OnChunk(chunk events.Chunk) {
	switch c := chunk.(type) {
	case stream.ToolCallChunk:
		args, err := json.Marshal(c.Arguments)
		if err == nil {
			h.calls = append(h.calls, domain.ToolCall{Name: c.Name, Arguments: args})
		}
	case stream.ToolResultChunk:
		result, err := json.Marshal(c.Result)
		if err == nil {
			toolMsg := &domain.Message{
				Role:    domain.RoleTool,
				Content: string(result),
			}
			if err := h.repo.AddMessage(h.ctx, h.threadID, toolMsg); err != nil {
				slog.Error("failed to store tool result", "tool", c.Name, "error", err)
			}
		}
	}
	h.inner.OnChunk(chunk)
}

func (h *persistingHandler) OnComplete(fullText string) {
	msg := &domain.Message{
		Role:    domain.RoleAssistant,
		Content: fullText,
	}
	if len(h.calls) > 0 {
		if encoded, err := json.Marshal(h.calls); err == nil {
			msg.ToolCalls = string(encoded)
		}
	}
	if err := h.repo.AddMessage(h.ctx, h.threadID, msg); err != nil {
		slog.Error("failed to store assistant message", "thread", h.threadID, "error", err)
	}
	h.inner.OnComplete(fullText)
}

func (h *persistingHandler) OnError(message string) {
	h.inner.OnError(message)
}
