// Package cmd defines and implements the CLI commands for the siteatlas executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "siteatlas",
		Short: "Machine-readable documentation and crawler analytics for web applications.",
		Long: `siteatlas serves auto-generated documentation artifacts (llms.txt,
page.json, architecture.txt), SEO surfaces (robots.txt, sitemap.xml, static
HTML fallbacks), and visit analytics that distinguish AI training bots,
AI search bots, and traditional search crawlers from human traffic.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is env-only configuration)")

	cmd.AddCommand(newServeCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "command execution failed: %v\n", err)
		os.Exit(1)
	}
}
