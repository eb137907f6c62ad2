package events

// ChunkType defines the type of a decoded stream chunk
type ChunkType int

const (
	ChunkTypeText ChunkType = iota
	ChunkTypeThinking
	ChunkTypeToolCall
	ChunkTypeToolResult
)

// Chunk is the interface for all consumer-facing stream chunks. The set of
// implementations is closed: text, thinking, tool call, and tool result.
// Completion and errors are terminal and travel through the decoder's
// OnComplete and OnError callbacks instead.
type Chunk interface {
	Type() ChunkType
}
