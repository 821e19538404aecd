package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/arjunv/praktis/internal/api"
	"github.com/arjunv/praktis/internal/logging"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the current session accuracy snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := logging.New(cfg.LogFile)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		client, err := api.NewClient(cfg.BaseURL, cfg.HTTPTimeout, log)
		if err != nil {
			return err
		}

		snap, err := client.Progress(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch progress: %w", err)
		}

		fmt.Printf("Overall: %d/%d correct (%.0f%%)\n",
			snap.Overall.Correct, snap.Overall.Attempts, snap.Overall.Accuracy*100)

		if len(snap.ByType) == 0 {
			return nil
		}
		kinds := make([]string, 0, len(snap.ByType))
		for k := range snap.ByType {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			st := snap.ByType[k]
			fmt.Printf("  %-20s %d/%d (%.0f%%)\n", k, st.Correct, st.Attempts, st.Accuracy*100)
		}
		return nil
	},
}
