package chat

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alphadiscovery/alpha/internal/shared"
	"github.com/alphadiscovery/alpha/internal/tui"
)

var ChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long:  `Start or resume interactive analysis sessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		chatService, err := shared.InitializeChatService()
		if err != nil {
			return err
		}

		p := tea.NewProgram(tui.NewModel(chatService),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion())
		_, err = p.Run()
		return err
	},
}
