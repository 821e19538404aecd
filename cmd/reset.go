package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arjunv/praktis/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the local answer history",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.EventRepo().Purge(cmd.Context()); err != nil {
			return fmt.Errorf("purge history: %w", err)
		}
		fmt.Println("Local history cleared.")
		return nil
	},
}
