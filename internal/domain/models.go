package domain

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

type Thread struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Summary  string
	Messages []Message
	gorm.Model
}

func (t *Thread) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type Message struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ThreadID uuid.UUID `gorm:"type:uuid"`
	Role     Role      `gorm:"type:text"`
	Content  string
	// ToolCalls holds the JSON-encoded tool calls an assistant message
	// requested, empty for plain text replies.
	ToolCalls string
	ModelName string
	gorm.Model
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ToolCall is one finalized tool invocation as recorded on a message.
type ToolCall struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}
