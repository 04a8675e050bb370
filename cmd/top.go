package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janakan-45/banana-brain-blitz/internal/api"
	"github.com/janakan-45/banana-brain-blitz/internal/logging"
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Print the leaderboard without starting the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, logging.Nop())
		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := client.Leaderboard(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("fetch leaderboard: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No scores yet.")
			return nil
		}
		for i, e := range entries {
			fmt.Printf("%2d. %-20s %8d\n", i+1, e.Username, e.Score)
		}
		return nil
	},
}

func init() {
	topCmd.Flags().Int("limit", 10, "Number of entries to show")
}
