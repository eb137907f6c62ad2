package config

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alphadiscovery/alpha/internal/appState"
)

var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appState.Get().Config

		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}

		fmt.Println(string(out))
		return nil
	},
}
