package commands

import (
	"github.com/spf13/cobra"

	"github.com/jembertrip/trip-engine/cmd/trip-cli/ui"
)

var (
	cfgFile string
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "trip-cli",
	Short: "TripEngine CLI - catalog ingestion and retrieval tooling",
	Long: `TripEngine CLI loads the destination catalog and PDF knowledge base
into the vector index and lets you test retrieval queries against it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.InitUI(noColor)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
