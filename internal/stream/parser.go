package stream

import (
	"encoding/json"
	"log/slog"
	"strings"
)

const (
	dataPrefix = "data:"

	// doneSentinel is the legacy all-caps terminator some backend versions
	// still send instead of a typed done event.
	doneSentinel = "[DONE]"
)

// Event type tags carried in the wire payload's "type" field.
const (
	eventText       = "text"
	eventThinking   = "thinking"
	eventToolCall   = "tool_call"
	eventToolResult = "tool_result"
	eventDone       = "done"
	eventError      = "error"
)

// finishReasonToolCalls is the upstream marker that the current tool-call
// batch is complete and no further fragments will arrive for it.
const finishReasonToolCalls = "tool_calls"

// rawEvent is one decoded payload line. Typed events use Type plus the flat
// fields; untyped upstream deltas carry their fragments under Choices.
type rawEvent struct {
	Type      string          `json:"type"`
	Content   string          `json:"content"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
	Result    json.RawMessage `json:"result"`
	Choices   []choiceDelta   `json:"choices"`
}

type choiceDelta struct {
	Delta        messageDelta `json:"delta"`
	FinishReason string       `json:"finish_reason"`
}

type messageDelta struct {
	Content   string          `json:"content"`
	ToolCalls []toolCallDelta `json:"tool_calls"`
}

// toolCallDelta is one fragment of a tool call. Index keys accumulation;
// Name and Arguments each may be present in any subset of fragments.
type toolCallDelta struct {
	Index    int               `json:"index"`
	ID       string            `json:"id"`
	Function functionCallDelta `json:"function"`
}

type functionCallDelta struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// parseLine turns one complete line into a raw event. Lines without the data
// prefix and lines whose payload fails to decode are discarded; neither is a
// stream failure.
func parseLine(line string, logger *slog.Logger) (*rawEvent, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, dataPrefix) {
		return nil, false
	}

	payload := strings.TrimSpace(strings.TrimPrefix(line, dataPrefix))
	if payload == "" {
		return nil, false
	}
	if payload == doneSentinel {
		return &rawEvent{Type: eventDone}, true
	}

	var ev rawEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		logger.Debug("discarding unparsable stream line", "error", err)
		return nil, false
	}
	return &ev, true
}
