package msg

import (
	"github.com/spf13/cobra"
)

var MsgCmd = &cobra.Command{
	Use:   "msg",
	Short: "Send messages",
	Long:  `Send messages to the analysis backend.`,
}

func init() {
	MsgCmd.AddCommand(sendCmd)
}
