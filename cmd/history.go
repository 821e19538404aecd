package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arjunv/praktis/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print recently recorded answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		records, err := st.EventRepo().RecentAnswers(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No answers recorded yet.")
			return nil
		}

		for _, rec := range records {
			verdict := "incorrect"
			if rec.Correct {
				verdict = "correct"
			}
			fmt.Printf("%s  %-9s  %-16s %s (%s)\n",
				rec.CreatedAt.Format("2006-01-02 15:04"), verdict, rec.ItemType, rec.ItemID, rec.StepID)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of answers to print")
}
