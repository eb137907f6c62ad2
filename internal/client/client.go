package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/alphadiscovery/alpha/internal/events"
	"github.com/alphadiscovery/alpha/internal/stream"
)

const streamPath = "/api/chat/stream"

// readBufferSize is the transport read granularity; the decoder reassembles
// lines regardless of where reads land.
const readBufferSize = 4096

// Message is one conversation turn sent to the backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
	UseTools bool      `json:"use_tools"`
}

// Client talks to the Alpha Discovery chat backend. One Client may serve many
// sequential or concurrent streams; each stream gets its own decoder.
type Client struct {
	baseURL  string
	apiKey   string
	useTools bool
	http     *http.Client
}

// New creates a backend client. No request timeout is set: chat streams stay
// open for as long as the model generates, so deadlines belong on the caller's
// context.
func New(baseURL, apiKey string, useTools bool) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		useTools: useTools,
		http:     &http.Client{},
	}
}

// ChatStream sends the conversation and decodes the backend's response stream
// into the handler. Terminal outcomes (done, upstream error, transport
// failure) always reach the handler exactly once; the returned error reports
// transport problems to callers that also want them as values.
func (c *Client) ChatStream(ctx context.Context, messages []Message, handler stream.Handler) error {
	d := stream.NewDecoder(handler)

	body, err := json.Marshal(chatRequest{
		Messages: messages,
		Stream:   true,
		UseTools: c.useTools,
	})
	if err != nil {
		d.Fail(err.Error())
		return errors.Wrap(err, "failed to encode chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+streamPath, bytes.NewReader(body))
	if err != nil {
		d.Fail(err.Error())
		return errors.Wrap(err, "failed to build chat request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		d.Fail(err.Error())
		return errors.Wrap(err, "chat request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("backend returned %s", resp.Status)
		d.Fail(msg)
		return errors.New(msg)
	}

	buf := make([]byte, readBufferSize)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			d.Feed(string(buf[:n]))
		}
		if err == io.EOF {
			if !d.State().Terminal() {
				// The backend closed without a done or error event.
				d.Fail("stream ended before completion")
				return errors.New("stream ended before completion")
			}
			return nil
		}
		if err != nil {
			if d.State().Terminal() {
				// Already finished; whatever trailed the terminal event
				// doesn't matter.
				return nil
			}
			d.Fail(err.Error())
			return errors.Wrap(err, "reading chat stream")
		}
		if d.State().Terminal() {
			return nil
		}
	}
}

// SyncResult is the outcome of a non-streaming chat call.
type SyncResult struct {
	Response  string
	ToolsUsed []string
}

// ChatSync runs a chat turn over the streaming endpoint and collects the
// result, for callers that don't need incremental delivery.
func (c *Client) ChatSync(ctx context.Context, messages []Message) (*SyncResult, error) {
	var result SyncResult
	var streamErr error

	handler := stream.HandlerFuncs{
		Chunk: func(chunk events.Chunk) {
			if call, ok := chunk.(stream.ToolCallChunk); ok {
				result.ToolsUsed = append(result.ToolsUsed, call.Name)
			}
		},
		Complete: func(fullText string) {
			result.Response = fullText
		},
		Error: func(message string) {
			streamErr = errors.New(message)
		},
	}

	if err := c.ChatStream(ctx, messages, handler); err != nil {
		return nil, err
	}
	if streamErr != nil {
		return nil, streamErr
	}
	return &result, nil
}
