package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/commitharvest/config"
)

// ConfigCmd returns the config command.
func ConfigCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the effective configuration, or save it with --output",
		Flags: harvestFlags(),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			if path := stringFlag(c, "output"); path != "" {
				if err := config.SaveConfig(cfg, path); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
				fmt.Fprintf(c.App.Writer, "Configuration written to %s\n", path)
				return nil
			}

			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, string(data))
			return nil
		},
	}
}
