package msg

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/alphadiscovery/alpha/internal/domain"
	"github.com/alphadiscovery/alpha/internal/events"
	"github.com/alphadiscovery/alpha/internal/shared"
	"github.com/alphadiscovery/alpha/internal/stream"
	"github.com/alphadiscovery/alpha/internal/tui/styles"
)

var newThreadFlag bool

var sendCmd = &cobra.Command{
	Use:   "send [message]",
	Short: "Send a single message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chatService, err := shared.InitializeChatService()
		if err != nil {
			return err
		}

		var thread *domain.Thread
		if newThreadFlag {
			thread, err = chatService.NewThread(cmd.Context())
		} else {
			thread, err = chatService.GetActiveThread(cmd.Context())
		}
		if err != nil {
			return errors.Wrap(err, "failed to resolve thread")
		}

		fmt.Printf("You: %s\n", args[0])
		fmt.Print("Alpha: ")

		var streamErr error
		handler := stream.HandlerFuncs{
			Chunk: func(chunk events.Chunk) {
				switch c := chunk.(type) {
				case stream.TextChunk:
					fmt.Print(c.Content)
				case stream.ThinkingChunk:
					fmt.Print(styles.ThinkingStyle.Render(c.Content))
				case stream.ToolCallChunk:
					fmt.Printf("\n%s %s\n", styles.ToolStyle.Render("⏺"), c.Name)
				case stream.ToolResultChunk:
					fmt.Printf("%s %s done\n", styles.ToolStyle.Render("  ⎿"), c.Name)
				}
			},
			Error: func(message string) {
				streamErr = errors.New(message)
			},
		}

		if err := chatService.SendMessageStream(cmd.Context(), thread.ID, args[0], handler); err != nil {
			return errors.Wrap(err, "chat failed")
		}
		if streamErr != nil {
			return errors.Wrap(streamErr, "chat failed")
		}
		fmt.Println()
		return nil
	},
}

func init() {
	sendCmd.Flags().BoolVarP(&newThreadFlag, "new", "n", false, "Start a new thread instead of continuing the most recent one")
}
