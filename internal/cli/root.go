package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidefit/pkg/buildinfo"
)

// RootCommand returns the slidefit command tree.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   appName,
		Short: "slidefit fits markdown slide decks to the screen and the printed page",
		Long: `slidefit lays out a markdown slide deck, scales figures until every slide
fits its viewport, and reports what still overflows.

Screen fitting sizes slides for a presentation viewport. Print fitting
paginates one slide per page and shrinks media to the page.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "log debug output, one line per fitted slide")
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/slidefit/config.toml)")

	root.AddCommand(
		c.fitCommand(),
		c.printCommand(),
		c.watchCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.configCommand(),
		c.completionCommand(),
	)
	return root
}
