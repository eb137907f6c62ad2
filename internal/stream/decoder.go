package stream

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// State is the lifecycle of one decoding session
type State int

const (
	StateInit State = iota
	StateStreaming
	StateComplete
	StateErrored
)

// Terminal reports whether the session has finished. Terminal states are
// absorbing: once entered, no further callback fires.
func (s State) Terminal() bool {
	return s == StateComplete || s == StateErrored
}

// Decoder turns raw transport fragments into decoded chunks for a Handler.
// One Decoder serves exactly one response stream; it owns the line buffer,
// the tool-call accumulator, and the running text accumulator, so concurrent
// sessions must each construct their own. Not safe for concurrent use.
type Decoder struct {
	handler  Handler
	lines    lineBuffer
	calls    *toolCallAccumulator
	fullText strings.Builder
	state    State
	logger   *slog.Logger
}

func NewDecoder(handler Handler) *Decoder {
	logger := slog.Default()
	return &Decoder{
		handler: handler,
		calls:   newToolCallAccumulator(logger),
		logger:  logger,
	}
}

// State returns the session's current lifecycle state.
func (d *Decoder) State() State {
	return d.state
}

// Feed consumes one transport fragment. Fragments may split lines, events,
// and tool-call arguments at any byte boundary. Fragments fed after a
// terminal state are dropped.
func (d *Decoder) Feed(fragment string) {
	if d.state.Terminal() {
		return
	}
	d.state = StateStreaming

	for _, line := range d.lines.feed(fragment) {
		d.handleLine(line)
		if d.state.Terminal() {
			d.release()
			return
		}
	}
}

// Fail reports a transport-level failure on behalf of the caller, e.g. the
// fragment source closing before a done event was seen. It is a no-op once
// the session is terminal.
func (d *Decoder) Fail(message string) {
	if d.state.Terminal() {
		return
	}
	d.state = StateErrored
	d.release()
	d.handler.OnError(message)
}

func (d *Decoder) handleLine(line string) {
	ev, ok := parseLine(line, d.logger)
	if !ok {
		return
	}

	// No type tag means an upstream tool-call-only delta; it feeds the
	// accumulator and only surfaces chunks at finalization.
	if ev.Type == "" {
		for _, chunk := range d.calls.absorb(ev) {
			d.handler.OnChunk(chunk)
		}
		return
	}

	switch ev.Type {
	case eventText:
		d.fullText.WriteString(ev.Content)
		d.handler.OnChunk(TextChunk{Content: ev.Content})
	case eventThinking:
		d.handler.OnChunk(ThinkingChunk{Content: ev.Content})
	case eventToolCall:
		// Backends that assemble tool calls themselves send them complete.
		// They get the same validation as accumulated ones.
		args, argsOK := parseArgumentObject(string(ev.Arguments))
		if ev.Name == "" || !argsOK {
			d.logger.Debug("discarding malformed tool_call event", "name", ev.Name)
			return
		}
		d.handler.OnChunk(ToolCallChunk{Name: ev.Name, Arguments: args})
	case eventToolResult:
		var result any
		if len(ev.Result) > 0 {
			if err := json.Unmarshal(ev.Result, &result); err != nil {
				d.logger.Debug("discarding tool_result with unparsable result", "name", ev.Name, "error", err)
				return
			}
		}
		d.handler.OnChunk(ToolResultChunk{Name: ev.Name, Result: result})
	case eventDone:
		// The full text is the running concatenation of emitted text chunks,
		// not whatever the done payload carried.
		d.state = StateComplete
		d.handler.OnComplete(d.fullText.String())
	case eventError:
		d.state = StateErrored
		d.handler.OnError(ev.Content)
	default:
		d.logger.Debug("discarding event with unknown type", "type", ev.Type)
	}
}

// release drops the session's buffers once a terminal state is reached.
func (d *Decoder) release() {
	d.lines.reset()
	d.calls.reset()
}
