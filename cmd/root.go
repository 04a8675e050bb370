package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "blitz",
	Short: "Banana puzzle quiz game",
	Long:  "Banana Brain Blitz — a terminal quiz game of banana number puzzles with streaks, power-ups, and a global leaderboard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BANANA_DB env var)")
	rootCmd.PersistentFlags().String("api-url", "", "Game API base URL (overrides BANANA_API_URL env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(versionCmd)
}
