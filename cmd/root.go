package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arjunv/praktis/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "praktis",
	Short: "Terminal client for adaptive practice",
	Long:  "Praktis — a terminal client for an adaptive practice service: fetch items, answer, track accuracy.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "Base URL of the practice service (overrides PRAKTIS_BASE_URL)")
	rootCmd.PersistentFlags().String("db", "", "Path to the local history database (overrides PRAKTIS_DB)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then PRAKTIS_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
