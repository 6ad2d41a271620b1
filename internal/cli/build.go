package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/isomer/internal/fsops"
	"github.com/danieljhkim/isomer/internal/iso"
	"github.com/danieljhkim/isomer/internal/overlay"
)

var (
	buildFlavor   string
	buildSource   string
	buildOutfile  string
	buildWorking  string
	buildVolumeID string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Stage a working tree from a flavor and master it into an ISO",
	Long: `Build an ISO image from a source directory and a flavor configuration.

The source tree is staged into a working directory as symlinks, with the
flavor's exclude patterns and include overrides applied, then handed to
xorrisofs. Unless --working is given, an ephemeral working directory is
created and removed when the build finishes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		spec, _, err := loadSpec(buildFlavor, buildVolumeID, log)
		if err != nil {
			return err
		}

		outDir := filepath.Dir(buildOutfile)
		if !dirExists(outDir) {
			return fmt.Errorf("destination directory does not exist: %s", outDir)
		}

		fsys := fsops.NewRealFS()

		tree, err := openTree(fsys, buildWorking)
		if err != nil {
			return err
		}
		defer func() {
			_ = tree.Close()
		}()
		log.Info().Str("path", tree.Path()).Msg("using work directory")

		engine := overlay.New(fsys, log)
		if err := engine.Populate(tree, spec, buildSource); err != nil {
			return err
		}

		ctx := context.Background()
		builder := iso.NewBuilder(iso.NewExecRunner(), log, quiet)
		if err := builder.Build(ctx, tree.Path(), buildOutfile, spec); err != nil {
			// No point implanting a checksum into a failed image.
			return err
		}

		if spec.Checksum {
			if err := builder.ImplantChecksum(ctx, buildOutfile); err != nil {
				// The image itself is fine; report and keep it.
				PrintWarning(fmt.Sprintf("checksum not implanted: %v", err))
			}
		}

		PrintSuccess(fmt.Sprintf("Created %s", buildOutfile))
		return nil
	},
}

// openTree returns the caller-supplied working tree when set, otherwise
// an ephemeral one removed on Close.
func openTree(fsys fsops.FS, working string) (*overlay.WorkTree, error) {
	if working != "" {
		return overlay.OpenWorkTree(fsys, working)
	}
	return overlay.NewEphemeralWorkTree(fsys)
}

func init() {
	buildCmd.Flags().StringVarP(&buildFlavor, "flavor", "f", "", "Flavor name or path to flavor file")
	buildCmd.Flags().StringVarP(&buildSource, "source", "s", "", "Source directory")
	buildCmd.Flags().StringVarP(&buildOutfile, "outfile", "o", "", "Output ISO file")
	buildCmd.Flags().StringVarP(&buildWorking, "working", "w", "", "Working directory, contents overwritten")
	buildCmd.Flags().StringVarP(&buildVolumeID, "volume-id", "V", "", "Override the flavor's volume id")
	_ = buildCmd.MarkFlagRequired("flavor")
	_ = buildCmd.MarkFlagRequired("source")
	_ = buildCmd.MarkFlagRequired("outfile")
}
