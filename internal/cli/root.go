// Package cli implements the isomer command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	quiet bool
)

// rootCmd is the root command for isomer.
var rootCmd = &cobra.Command{
	Use:     "isomer",
	Version: "dev",
	Short:   "Template-based ISO generator",
	Long: `isomer builds bootable ISO images from a source tree and a declarative
"flavor" configuration.

A flavor describes how to customize the source: paths to exclude, paths to
override or inject via symlinks, an optional kickstart file, and an optional
grub boot menu template. isomer stages a symlink-based working tree from
those rules and hands it to xorrisofs.

A flavor is evaluated in the following order:
  1. As a file path
  2. As a .cfg file in the current directory
  3. As a .cfg file in the configuration directory ($ISOMER_CFG_DIR, default /etc/isomer)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(validateCmd)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
