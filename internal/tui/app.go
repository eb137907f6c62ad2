package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/alphadiscovery/alpha/internal/domain"
	"github.com/alphadiscovery/alpha/internal/service"
	"github.com/alphadiscovery/alpha/internal/tui/components"
)

type AppState int

const (
	StateThreadList AppState = iota
	StateChat
)

type Model struct {
	state        AppState
	threadCh     chan domain.Thread
	chat         *service.ChatService
	currentModel tea.Model
}

func NewModel(chat *service.ChatService) Model {
	ch := make(chan domain.Thread, 1)
	list := components.NewThreadList(chat, ch)

	return Model{
		state:        StateThreadList,
		threadCh:     ch,
		chat:         chat,
		currentModel: list,
	}
}

func (m Model) Init() tea.Cmd {
	return m.currentModel.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle thread selection
	select {
	case thread := <-m.threadCh:
		if thread.ID == uuid.Nil {
			created, err := m.chat.NewThread(context.Background())
			if err != nil {
				return m, tea.Quit
			}
			thread = *created
		}
		m.state = StateChat
		m.currentModel = components.NewChatView(&thread, m.chat)
		return m, m.currentModel.Init()
	default:
	}

	// Update current model
	var newModel tea.Model
	newModel, cmd = m.currentModel.Update(msg)
	m.currentModel = newModel
	return m, cmd
}

func (m Model) View() string {
	return m.currentModel.View()
}
