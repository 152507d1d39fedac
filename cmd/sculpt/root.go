package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version will be set during the build process using ldflags
var Version = "(dev) v0.0.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "sculpt",
	Short: "Programmatic TypeScript source manipulation",
	Long: `sculpt navigates and rewrites TypeScript source files through a
text-synchronized object model: declarations, members, initializers and
decorators are added, changed and removed structurally instead of by
hand-editing text.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sculpt version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sculpt %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a JSON config file")
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(versionCmd)
}
