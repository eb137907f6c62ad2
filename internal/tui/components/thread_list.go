package components

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alphadiscovery/alpha/internal/domain"
	"github.com/alphadiscovery/alpha/internal/service"
	"github.com/alphadiscovery/alpha/internal/tui/styles"
)

const threadListLimit = 50

type ThreadItem struct {
	thread domain.Thread
	title  string
}

func (i ThreadItem) Title() string       { return i.title }
func (i ThreadItem) Description() string { return i.thread.CreatedAt.Format(time.DateTime) }
func (i ThreadItem) FilterValue() string { return i.title }

type ThreadList struct {
	list     list.Model
	chat     *service.ChatService
	selected chan domain.Thread
}

func NewThreadList(chat *service.ChatService, selected chan domain.Thread) *ThreadList {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Threads"
	l.Styles.Title = styles.ListTitleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return &ThreadList{
		list:     l,
		chat:     chat,
		selected: selected,
	}
}

func (m *ThreadList) Init() tea.Cmd {
	return m.loadThreads
}

func (m *ThreadList) loadThreads() tea.Msg {
	threads, err := m.chat.ListThreads(context.Background(), threadListLimit)
	if err != nil {
		return threadsLoadedMsg{}
	}

	items := make([]list.Item, len(threads))
	for i, thread := range threads {
		title := thread.Summary
		if title == "" {
			title = thread.ID.String()[:8]
		}
		items[i] = ThreadItem{
			thread: *thread,
			title:  title,
		}
	}
	return threadsLoadedMsg{items}
}

type threadsLoadedMsg struct {
	items []list.Item
}

func (m *ThreadList) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Handle key presses before passing to list
		switch msg.String() {
		case "n":
			// An empty thread signals new thread creation
			m.selected <- domain.Thread{}
			return m, nil
		case "enter":
			if i, ok := m.list.SelectedItem().(ThreadItem); ok {
				m.selected <- i.thread
				return m, nil
			}
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case threadsLoadedMsg:
		m.list.SetItems(msg.items)
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m ThreadList) View() string {
	return styles.DocStyle.Render(
		m.list.View() + "\n\nPress 'n' to start a new thread",
	)
}
