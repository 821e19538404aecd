package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arjunv/praktis/internal/api"
	"github.com/arjunv/praktis/internal/logging"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the item types the service offers",
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

		types, err := client.AvailableTypes(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch types: %w", err)
		}
		if len(types) == 0 {
			fmt.Println("No item types available.")
			return nil
		}
		for _, t := range types {
			fmt.Println(t)
		}
		return nil
	},
}
