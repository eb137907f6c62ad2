package stream

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fragmentEvent(fragments ...toolCallDelta) *rawEvent {
	return &rawEvent{
		Choices: []choiceDelta{{Delta: messageDelta{ToolCalls: fragments}}},
	}
}

func finishEvent() *rawEvent {
	return &rawEvent{Choices: []choiceDelta{{FinishReason: finishReasonToolCalls}}}
}

func fragment(index int, name, args string) toolCallDelta {
	return toolCallDelta{
		Index:    index,
		Function: functionCallDelta{Name: name, Arguments: args},
	}
}

func TestAccumulatorAssemblesSplitArguments(t *testing.T) {
	a := newToolCallAccumulator(slog.Default())

	assert.Empty(t, a.absorb(fragmentEvent(fragment(0, "get_stock_quote", ""))))
	assert.Empty(t, a.absorb(fragmentEvent(fragment(0, "", `{"symbol":`))))
	assert.Empty(t, a.absorb(fragmentEvent(fragment(0, "", `"AAPL"}`))))

	chunks := a.absorb(finishEvent())
	require.Len(t, chunks, 1)

	call, ok := chunks[0].(ToolCallChunk)
	require.True(t, ok)
	assert.Equal(t, "get_stock_quote", call.Name)
	assert.Equal(t, map[string]any{"symbol": "AAPL"}, call.Arguments)
}

func TestAccumulatorInterleavedIndices(t *testing.T) {
	// Fragments for two calls interleave; index 1 even arrives first.
	frames := [][]toolCallDelta{
		{fragment(1, "get_stock_news", "")},
		{fragment(0, "get_stock_quote", `{"symbol"`)},
		{fragment(1, "", `{"symbol":"TSLA",`)},
		{fragment(0, "", `:"NVDA"}`)},
		{fragment(1, "", `"limit":5}`)},
	}

	a := newToolCallAccumulator(slog.Default())
	for _, frame := range frames {
		assert.Empty(t, a.absorb(fragmentEvent(frame...)))
	}

	chunks := a.absorb(finishEvent())
	require.Len(t, chunks, 2)

	first := chunks[0].(ToolCallChunk)
	assert.Equal(t, "get_stock_quote", first.Name)
	assert.Equal(t, map[string]any{"symbol": "NVDA"}, first.Arguments)

	second := chunks[1].(ToolCallChunk)
	assert.Equal(t, "get_stock_news", second.Name)
	assert.Equal(t, map[string]any{"symbol": "TSLA", "limit": float64(5)}, second.Arguments)
}

func TestAccumulatorDropsNamelessEntry(t *testing.T) {
	a := newToolCallAccumulator(slog.Default())
	a.absorb(fragmentEvent(fragment(0, "", `{"symbol":"AAPL"}`)))

	assert.Empty(t, a.absorb(finishEvent()))
}

func TestAccumulatorDropsNonObjectArguments(t *testing.T) {
	// Regression for the half-formed {name: null, arguments: 10} chunk the
	// old decoder surfaced to consumers.
	cases := map[string]string{
		"number": "10",
		"string": `"ten"`,
		"array":  `[1,2]`,
		"null":   "null",
		"empty":  "",
		"junk":   `{"symbol":`,
	}
	for label, args := range cases {
		t.Run(label, func(t *testing.T) {
			a := newToolCallAccumulator(slog.Default())
			a.absorb(fragmentEvent(fragment(0, "get_stock_quote", args)))
			assert.Empty(t, a.absorb(finishEvent()))
		})
	}
}

func TestAccumulatorFirstNameWins(t *testing.T) {
	a := newToolCallAccumulator(slog.Default())
	a.absorb(fragmentEvent(fragment(0, "get_stock_quote", "")))
	a.absorb(fragmentEvent(fragment(0, "get_market_news", `{}`)))

	chunks := a.absorb(finishEvent())
	require.Len(t, chunks, 1)
	assert.Equal(t, "get_stock_quote", chunks[0].(ToolCallChunk).Name)
}

func TestAccumulatorClearsBetweenRounds(t *testing.T) {
	a := newToolCallAccumulator(slog.Default())

	a.absorb(fragmentEvent(fragment(0, "get_stock_quote", `{"symbol":"AAPL"}`)))
	require.Len(t, a.absorb(finishEvent()), 1)

	// A second round in the same session must not see the first round's entry.
	a.absorb(fragmentEvent(fragment(0, "get_options_flow", `{"symbol":"SPY"}`)))
	chunks := a.absorb(finishEvent())
	require.Len(t, chunks, 1)
	assert.Equal(t, "get_options_flow", chunks[0].(ToolCallChunk).Name)
}

func TestAccumulatorSingleFrameCompleteCall(t *testing.T) {
	// Non-streaming responses deliver the whole call and the finish reason
	// in one frame.
	ev := &rawEvent{Choices: []choiceDelta{{
		Delta:        messageDelta{ToolCalls: []toolCallDelta{fragment(0, "get_market_news", `{"category":"tech"}`)}},
		FinishReason: finishReasonToolCalls,
	}}}

	a := newToolCallAccumulator(slog.Default())
	chunks := a.absorb(ev)
	require.Len(t, chunks, 1)

	call := chunks[0].(ToolCallChunk)
	assert.Equal(t, "get_market_news", call.Name)
	assert.Equal(t, map[string]any{"category": "tech"}, call.Arguments)
}

func TestAccumulatorMixedValidity(t *testing.T) {
	a := newToolCallAccumulator(slog.Default())
	a.absorb(fragmentEvent(
		fragment(0, "", `{"ok":true}`),                     // no name: dropped
		fragment(1, "get_stock_quote", `{"symbol":"AMD"}`), // fine
		fragment(2, "get_stock_news", `7`),                 // non-object: dropped
	))

	chunks := a.absorb(finishEvent())
	require.Len(t, chunks, 1)
	assert.Equal(t, "get_stock_quote", chunks[0].(ToolCallChunk).Name)
}
