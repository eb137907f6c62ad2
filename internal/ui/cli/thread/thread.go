package thread

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/alphadiscovery/alpha/internal/domain"
	"github.com/alphadiscovery/alpha/internal/shared"
)

var limitFlag int

var ThreadCmd = &cobra.Command{
	Use:   "thread",
	Short: "Manage conversation threads",
}

var listCmd = &cobra.Command{
	Use:   "ls",
	Short: "List conversation threads",
	RunE: func(cmd *cobra.Command, args []string) error {
		chatService, err := shared.InitializeChatService()
		if err != nil {
			return err
		}

		threads, err := chatService.ListThreads(cmd.Context(), limitFlag)
		if err != nil {
			return fmt.Errorf("failed to list threads: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCreated\tMessages\tPreview")

		for _, thread := range threads {
			messages, err := chatService.GetMessages(cmd.Context(), thread.ID)
			if err != nil {
				return fmt.Errorf("failed to load thread messages: %w", err)
			}

			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
				thread.ID.String()[:8],
				thread.CreatedAt.Format(time.RFC822),
				len(messages),
				preview(messages),
			)
		}
		w.Flush()

		return nil
	},
}

var viewCmd = &cobra.Command{
	Use:   "view [thread_id]",
	Short: "View messages in a thread",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chatService, err := shared.InitializeChatService()
		if err != nil {
			return err
		}

		thread, err := chatService.GetThread(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to find thread: %w", err)
		}

		messages, err := chatService.GetMessages(cmd.Context(), thread.ID)
		if err != nil {
			return fmt.Errorf("failed to load thread messages: %w", err)
		}

		printThread(thread, messages, limitFlag)
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&limitFlag, "limit", "n", 0, "Limit the number of threads to show (0 for all)")
	viewCmd.Flags().IntVarP(&limitFlag, "limit", "n", 0, "Limit the number of messages to show (0 for all)")

	ThreadCmd.AddCommand(listCmd, viewCmd)
}

func preview(messages []domain.Message) string {
	const maxPreview = 60

	for _, msg := range messages {
		if msg.Role != domain.RoleHuman {
			continue
		}
		if len(msg.Content) > maxPreview {
			return msg.Content[:maxPreview] + "..."
		}
		return msg.Content
	}
	return ""
}

func printThread(thread *domain.Thread, messages []domain.Message, limit int) {
	fmt.Printf("Thread %s (created %s)\n\n",
		thread.ID.String()[:8],
		thread.CreatedAt.Format(time.RFC822),
	)

	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	for _, msg := range messages {
		roleStr := "You"
		switch msg.Role {
		case domain.RoleAssistant:
			roleStr = "Alpha"
		case domain.RoleTool:
			roleStr = "Tool"
		}
		fmt.Printf("%s: %s\n", roleStr, msg.Content)

		// Blank line between messages for readability
		fmt.Println()
	}
}
