package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphadiscovery/alpha/internal/client"
	"github.com/alphadiscovery/alpha/internal/domain"
	"github.com/alphadiscovery/alpha/internal/events"
	"github.com/alphadiscovery/alpha/internal/stream"
)

// memoryRepo is an in-memory ThreadRepository for tests.
type memoryRepo struct {
	threads  map[uuid.UUID]*domain.Thread
	messages map[uuid.UUID][]domain.Message
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		threads:  make(map[uuid.UUID]*domain.Thread),
		messages: make(map[uuid.UUID][]domain.Message),
	}
}

func (r *memoryRepo) Create(ctx context.Context, thread *domain.Thread) error {
	if thread.ID == uuid.Nil {
		thread.ID = uuid.New()
	}
	r.threads[thread.ID] = thread
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
	thread, ok := r.threads[id]
	if !ok {
		return nil, domain.NoThreadError{}
	}
	return thread, nil
}

func (r *memoryRepo) List(ctx context.Context, limit int) ([]*domain.Thread, error) {
	var out []*domain.Thread
	for _, t := range r.threads {
		out = append(out, t)
	}
	return out, nil
}

func (r *memoryRepo) GetMostRecent(ctx context.Context) (*domain.Thread, error) {
	for _, t := range r.threads {
		return t, nil
	}
	return nil, domain.NoThreadError{}
}

func (r *memoryRepo) FindByPartialID(ctx context.Context, partialID string) (*domain.Thread, error) {
	for id, t := range r.threads {
		if len(partialID) <= len(id.String()) && id.String()[:len(partialID)] == partialID {
			return t, nil
		}
	}
	return nil, domain.NoThreadError{}
}

func (r *memoryRepo) AddMessage(ctx context.Context, threadID uuid.UUID, msg *domain.Message) error {
	msg.ThreadID = threadID
	r.messages[threadID] = append(r.messages[threadID], *msg)
	return nil
}

func (r *memoryRepo) GetMessages(ctx context.Context, threadID uuid.UUID) ([]domain.Message, error) {
	return r.messages[threadID], nil
}

func streamBackend(lines []string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, line := range lines {
			_, _ = w.Write([]byte(line + "\n\n"))
		}
	}))
}

func TestSendMessageStreamPersistsExchange(t *testing.T) {
	srv := streamBackend([]string{
		`data: {"choices":[{"delta":{"tool_calls":[{"index":0,"function":{"name":"get_stock_quote","arguments":"{\"symbol\":\"AAPL\"}"}}]},"finish_reason":"tool_calls"}]}`,
		`data: {"type":"tool_result","name":"get_stock_quote","result":{"price":231.1}}`,
		`data: {"type":"text","content":"AAPL trades at $231.10."}`,
		`data: {"type":"done","content":""}`,
	})
	defer srv.Close()

	repo := newMemoryRepo()
	svc := NewChatService(repo, client.New(srv.URL, "", true))

	thread, err := svc.NewThread(context.Background())
	require.NoError(t, err)

	var completed []string
	handler := stream.HandlerFuncs{
		Complete: func(fullText string) { completed = append(completed, fullText) },
	}
	require.NoError(t, svc.SendMessageStream(context.Background(), thread.ID, "quote AAPL", handler))
	assert.Equal(t, []string{"AAPL trades at $231.10."}, completed)

	msgs, err := svc.GetMessages(context.Background(), thread.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	assert.Equal(t, domain.RoleHuman, msgs[0].Role)
	assert.Equal(t, "quote AAPL", msgs[0].Content)

	assert.Equal(t, domain.RoleTool, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "231.1")

	assert.Equal(t, domain.RoleAssistant, msgs[2].Role)
	assert.Equal(t, "AAPL trades at $231.10.", msgs[2].Content)
	assert.Contains(t, msgs[2].ToolCalls, "get_stock_quote")
}

func TestSendMessageStreamSendsHistory(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 4096)
		n, _ := r.Body.Read(buf)
		gotBody = buf[:n]
		_, _ = w.Write([]byte("data: {\"type\":\"done\",\"content\":\"\"}\n"))
	}))
	defer srv.Close()

	repo := newMemoryRepo()
	svc := NewChatService(repo, client.New(srv.URL, "", true))

	thread, err := svc.NewThread(context.Background())
	require.NoError(t, err)

	require.NoError(t, repo.AddMessage(context.Background(), thread.ID, &domain.Message{
		Role: domain.RoleHuman, Content: "earlier question",
	}))
	require.NoError(t, repo.AddMessage(context.Background(), thread.ID, &domain.Message{
		Role: domain.RoleAssistant, Content: "earlier answer",
	}))

	require.NoError(t, svc.SendMessageStream(context.Background(), thread.ID, "follow-up", stream.HandlerFuncs{}))

	body := string(gotBody)
	assert.Contains(t, body, "earlier question")
	assert.Contains(t, body, "earlier answer")
	assert.Contains(t, body, "follow-up")
}

func TestSendMessageStreamForwardsErrors(t *testing.T) {
	srv := streamBackend([]string{
		`data: {"type":"error","content":"API key not configured"}`,
	})
	defer srv.Close()

	repo := newMemoryRepo()
	svc := NewChatService(repo, client.New(srv.URL, "", true))

	thread, err := svc.NewThread(context.Background())
	require.NoError(t, err)

	var errored []string
	var chunks []events.Chunk
	handler := stream.HandlerFuncs{
		Chunk: func(c events.Chunk) { chunks = append(chunks, c) },
		Error: func(message string) { errored = append(errored, message) },
	}
	require.NoError(t, svc.SendMessageStream(context.Background(), thread.ID, "hi", handler))

	assert.Equal(t, []string{"API key not configured"}, errored)
	assert.Empty(t, chunks)

	// The user message is still recorded; no assistant message is.
	msgs, err := svc.GetMessages(context.Background(), thread.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.RoleHuman, msgs[0].Role)
}

func TestGetActiveThreadCreatesWhenEmpty(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewChatService(repo, client.New("http://localhost:0", "", true))

	thread, err := svc.GetActiveThread(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, thread.ID)

	again, err := svc.GetActiveThread(context.Background())
	require.NoError(t, err)
	assert.Equal(t, thread.ID, again.ID)
}
