package components

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alphadiscovery/alpha/internal/domain"
	"github.com/alphadiscovery/alpha/internal/events"
	"github.com/alphadiscovery/alpha/internal/service"
	"github.com/alphadiscovery/alpha/internal/stream"
	"github.com/alphadiscovery/alpha/internal/tui/styles"
)

type ChatView struct {
	thread    *domain.Thread
	viewport  viewport.Model
	textarea  textarea.Model
	chat      *service.ChatService
	messages  []displayLine
	partial   strings.Builder
	streamCh  chan tea.Msg
	streaming bool
	ready     bool
}

// displayLine is one rendered row of the transcript.
type displayLine struct {
	prefix string
	body   string
	style  lipgloss.Style
}

func NewChatView(thread *domain.Thread, chat *service.ChatService) *ChatView {
	ta := textarea.New()
	ta.Placeholder = "Ask about a ticker..."
	ta.Focus()

	ta.Prompt = "┃ "
	ta.CharLimit = 280
	ta.SetWidth(30)
	ta.SetHeight(3)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	vp := viewport.New(30, 30)
	vp.SetContent("")

	return &ChatView{
		thread:   thread,
		textarea: ta,
		viewport: vp,
		chat:     chat,
	}
}

func (m *ChatView) Init() tea.Cmd {
	return tea.Batch(
		m.loadMessages(),
		textarea.Blink,
	)
}

type messagesLoadedMsg struct {
	messages []domain.Message
}

type chatChunkMsg struct {
	chunk events.Chunk
}

type chatDoneMsg struct {
	fullText string
}

type chatErrMsg struct {
	message string
}

func (m *ChatView) loadMessages() tea.Cmd {
	return func() tea.Msg {
		messages, err := m.chat.GetMessages(context.Background(), m.thread.ID)
		if err != nil {
			return chatErrMsg{message: err.Error()}
		}
		return messagesLoadedMsg{messages}
	}
}

func (m *ChatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-m.textarea.Height()-4)
			m.textarea.SetWidth(msg.Width)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - m.textarea.Height() - 4
			m.textarea.SetWidth(msg.Width)
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.streaming {
				return m, nil
			}
			content := strings.TrimSpace(m.textarea.Value())
			if content == "" {
				return m, nil
			}
			m.textarea.Reset()
			m.messages = append(m.messages, displayLine{
				prefix: "You: ", body: content, style: styles.HighlightStyle,
			})
			m.refresh()
			return m, m.sendMessage(content)
		}

	case messagesLoadedMsg:
		m.messages = renderHistory(msg.messages)
		m.refresh()

	case chatChunkMsg:
		m.applyChunk(msg.chunk)
		m.refresh()
		return m, m.waitForStream()

	case chatDoneMsg:
		m.streaming = false
		m.flushPartial()
		m.refresh()

	case chatErrMsg:
		m.streaming = false
		m.flushPartial()
		m.messages = append(m.messages, displayLine{
			prefix: "error: ", body: msg.message, style: styles.ErrorStyle,
		})
		m.refresh()
	}

	if !m.streaming {
		m.textarea, tiCmd = m.textarea.Update(msg)
	}
	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

func (m *ChatView) View() string {
	return fmt.Sprintf(
		"%s\n%s",
		m.viewport.View(),
		m.textarea.View(),
	)
}

// sendMessage starts the backend stream and begins pumping its chunks into
// the update loop.
func (m *ChatView) sendMessage(content string) tea.Cmd {
	ch := make(chan tea.Msg, 16)
	m.streamCh = ch
	m.streaming = true

	handler := stream.HandlerFuncs{
		Chunk:    func(c events.Chunk) { ch <- chatChunkMsg{chunk: c} },
		Complete: func(fullText string) { ch <- chatDoneMsg{fullText: fullText} },
		Error:    func(message string) { ch <- chatErrMsg{message: message} },
	}

	go func() {
		defer close(ch)
		// Terminal outcomes reach the handler; the returned error would
		// duplicate them.
		_ = m.chat.SendMessageStream(context.Background(), m.thread.ID, content, handler)
	}()

	return m.waitForStream()
}

func (m *ChatView) waitForStream() tea.Cmd {
	ch := m.streamCh
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *ChatView) applyChunk(chunk events.Chunk) {
	switch c := chunk.(type) {
	case stream.TextChunk:
		m.partial.WriteString(c.Content)
	case stream.ThinkingChunk:
		// Reasoning is transient; show nothing in the transcript.
	case stream.ToolCallChunk:
		m.flushPartial()
		m.messages = append(m.messages, displayLine{
			prefix: "⏺ ", body: c.Name, style: styles.ToolStyle,
		})
	case stream.ToolResultChunk:
		m.messages = append(m.messages, displayLine{
			prefix: "  ⎿ ", body: c.Name + " done", style: styles.ToolStyle,
		})
	}
}

// flushPartial promotes accumulated streaming text to a transcript line.
func (m *ChatView) flushPartial() {
	if m.partial.Len() == 0 {
		return
	}
	m.messages = append(m.messages, displayLine{
		prefix: "Alpha: ", body: m.partial.String(), style: styles.HighlightStyle,
	})
	m.partial.Reset()
}

func (m *ChatView) refresh() {
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

func (m *ChatView) renderMessages() string {
	var b strings.Builder
	for _, line := range m.messages {
		b.WriteString(line.style.Render(line.prefix))
		b.WriteString(line.body)
		b.WriteString("\n\n")
	}
	if m.partial.Len() > 0 {
		b.WriteString(styles.HighlightStyle.Render("Alpha: "))
		b.WriteString(m.partial.String())
		b.WriteString("\n")
	}
	return b.String()
}

func renderHistory(messages []domain.Message) []displayLine {
	var lines []displayLine
	for _, msg := range messages {
		switch msg.Role {
		case domain.RoleHuman:
			lines = append(lines, displayLine{prefix: "You: ", body: msg.Content, style: styles.HighlightStyle})
		case domain.RoleAssistant:
			lines = append(lines, displayLine{prefix: "Alpha: ", body: msg.Content, style: styles.HighlightStyle})
		case domain.RoleTool:
			lines = append(lines, displayLine{prefix: "  ⎿ ", body: "tool result", style: styles.ToolStyle})
		}
	}
	return lines
}
