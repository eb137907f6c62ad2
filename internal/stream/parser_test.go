package stream

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineDiscardsUnprefixedLines(t *testing.T) {
	for _, line := range []string{
		"",
		"   ",
		": keep-alive comment",
		`{"type":"text","content":"no prefix"}`,
		"event: message",
	} {
		ev, ok := parseLine(line, slog.Default())
		assert.False(t, ok, "line %q should be discarded", line)
		assert.Nil(t, ev)
	}
}

func TestParseLineDiscardsMalformedJSON(t *testing.T) {
	ev, ok := parseLine(`data: {"type":"text",`, slog.Default())
	assert.False(t, ok)
	assert.Nil(t, ev)
}

func TestParseLineLegacyDoneSentinel(t *testing.T) {
	ev, ok := parseLine("data: [DONE]", slog.Default())
	require.True(t, ok)
	assert.Equal(t, eventDone, ev.Type)
}

func TestParseLineTypedEvent(t *testing.T) {
	ev, ok := parseLine(`data: {"type":"text","content":"hello"}`, slog.Default())
	require.True(t, ok)
	assert.Equal(t, eventText, ev.Type)
	assert.Equal(t, "hello", ev.Content)
}

func TestParseLineUntypedDelta(t *testing.T) {
	line := `data: {"choices":[{"delta":{"tool_calls":[{"index":0,"id":"call_1","function":{"name":"get_stock_quote","arguments":"{\"sy"}}]},"finish_reason":null}]}`
	ev, ok := parseLine(line, slog.Default())
	require.True(t, ok)
	assert.Empty(t, ev.Type)
	require.Len(t, ev.Choices, 1)
	require.Len(t, ev.Choices[0].Delta.ToolCalls, 1)

	tc := ev.Choices[0].Delta.ToolCalls[0]
	assert.Equal(t, 0, tc.Index)
	assert.Equal(t, "get_stock_quote", tc.Function.Name)
	assert.Equal(t, `{"sy`, tc.Function.Arguments)
}

func TestParseLineTrimsWhitespace(t *testing.T) {
	ev, ok := parseLine("  data: {\"type\":\"done\",\"content\":\"\"}\r", slog.Default())
	require.True(t, ok)
	assert.Equal(t, eventDone, ev.Type)
}
