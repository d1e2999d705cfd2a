package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidefit/pkg/config"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect slidefit settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path(c.configPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.loadedFrom != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), StyleTitle.Render("# "+c.loadedFrom))
			}
			return c.Config.Write(cmd.OutOrStdout())
		},
	})

	return cmd
}
