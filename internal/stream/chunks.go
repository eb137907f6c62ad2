package stream

import "github.com/alphadiscovery/alpha/internal/events"

// TextChunk is a delta of assistant text
type TextChunk struct {
	Content string
}

func (c TextChunk) Type() events.ChunkType {
	return events.ChunkTypeText
}

// ThinkingChunk is a delta of model reasoning, shown separately from text
type ThinkingChunk struct {
	Content string
}

func (c ThinkingChunk) Type() events.ChunkType {
	return events.ChunkTypeThinking
}

// ToolCallChunk is a complete, validated tool invocation. Name is never empty
// and Arguments is always a JSON object by the time a consumer sees it.
type ToolCallChunk struct {
	Name      string
	Arguments map[string]any
}

func (c ToolCallChunk) Type() events.ChunkType {
	return events.ChunkTypeToolCall
}

// ToolResultChunk carries the backend's result for an executed tool
type ToolResultChunk struct {
	Name   string
	Result any
}

func (c ToolResultChunk) Type() events.ChunkType {
	return events.ChunkTypeToolResult
}

// Handler receives everything a decoding session produces. OnComplete and
// OnError are terminal: at most one of them fires, exactly once, and no
// OnChunk call follows it.
type Handler interface {
	OnChunk(chunk events.Chunk)
	OnComplete(fullText string)
	OnError(message string)
}

// HandlerFuncs adapts plain functions to the Handler interface. Nil fields
// are skipped.
type HandlerFuncs struct {
	Chunk    func(chunk events.Chunk)
	Complete func(fullText string)
	Error    func(message string)
}

func (h HandlerFuncs) OnChunk(chunk events.Chunk) {
	if h.Chunk != nil {
		h.Chunk(chunk)
	}
}

func (h HandlerFuncs) OnComplete(fullText string) {
	if h.Complete != nil {
		h.Complete(fullText)
	}
}

func (h HandlerFuncs) OnError(message string) {
	if h.Error != nil {
		h.Error(message)
	}
}
