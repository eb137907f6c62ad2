package stream

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	"github.com/alphadiscovery/alpha/internal/events"
)

// pendingToolCall is one tool call under assembly. The name is written once;
// argument fragments are concatenated verbatim in arrival order and only
// parsed as a whole at finalization.
type pendingToolCall struct {
	name string
	args strings.Builder
}

// toolCallAccumulator merges multi-frame tool-call fragments, keyed by the
// positional index assigned upstream. Fragments for different indices may
// interleave arbitrarily; finalization always emits in ascending index order.
type toolCallAccumulator struct {
	pending map[int]*pendingToolCall
	logger  *slog.Logger
}

func newToolCallAccumulator(logger *slog.Logger) *toolCallAccumulator {
	return &toolCallAccumulator{
		pending: make(map[int]*pendingToolCall),
		logger:  logger,
	}
}

// absorb merges one upstream delta. Intermediate fragments produce nothing;
// a frame carrying the tool-call finish reason returns the finalized calls.
func (a *toolCallAccumulator) absorb(ev *rawEvent) []events.Chunk {
	var out []events.Chunk
	for _, choice := range ev.Choices {
		for _, tc := range choice.Delta.ToolCalls {
			if tc.Index < 0 {
				a.logger.Debug("discarding tool-call fragment with negative index", "index", tc.Index)
				continue
			}
			entry, ok := a.pending[tc.Index]
			if !ok {
				entry = &pendingToolCall{}
				a.pending[tc.Index] = entry
			}
			if name := tc.Function.Name; name != "" {
				// First name wins. Upstream sends the name once; a later
				// conflicting fragment is ignored rather than trusted.
				if entry.name == "" {
					entry.name = name
				} else if entry.name != name {
					a.logger.Debug("ignoring conflicting tool name fragment",
						"index", tc.Index, "have", entry.name, "got", name)
				}
			}
			entry.args.WriteString(tc.Function.Arguments)
		}
		if choice.FinishReason == finishReasonToolCalls {
			out = append(out, a.finalize()...)
		}
	}
	return out
}

// finalize validates and emits every pending entry in ascending index order,
// then clears the map so a later tool-call round starts clean. Entries that
// never received a name, or whose argument buffer does not parse to a JSON
// object, are dropped rather than surfaced half-formed.
func (a *toolCallAccumulator) finalize() []events.Chunk {
	indices := make([]int, 0, len(a.pending))
	for i := range a.pending {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	chunks := make([]events.Chunk, 0, len(indices))
	for _, i := range indices {
		entry := a.pending[i]
		if entry.name == "" {
			a.logger.Debug("dropping tool call that never received a name", "index", i)
			continue
		}
		args, ok := parseArgumentObject(entry.args.String())
		if !ok {
			a.logger.Debug("dropping tool call with non-object arguments",
				"index", i, "name", entry.name)
			continue
		}
		chunks = append(chunks, ToolCallChunk{Name: entry.name, Arguments: args})
	}

	clear(a.pending)
	return chunks
}

func (a *toolCallAccumulator) reset() {
	a.pending = make(map[int]*pendingToolCall)
}

// parseArgumentObject reports whether raw is a JSON object, and returns it
// decoded. Scalars, arrays, and null all fail: a tool call with anything but
// an object for arguments is malformed.
func parseArgumentObject(raw string) (map[string]any, bool) {
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, false
	}
	if args == nil {
		return nil, false
	}
	return args, true
}
