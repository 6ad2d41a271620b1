// Package iso drives the external mastering and checksum tools.
//
// The heavy lifting happens in xorrisofs and implantisomd5; this package
// only assembles their argument lists from a flavor spec and reports
// failures. Both tools must be present on PATH.
package iso

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/danieljhkim/isomer/internal/flavor"
)

const (
	xorrisofsCmd  = "xorrisofs"
	implantMD5Cmd = "implantisomd5"
)

// Builder invokes the ISO-mastering and checksum-implanting tools against
// a populated working tree.
type Builder struct {
	runner Runner
	log    zerolog.Logger
	quiet  bool
}

// NewBuilder creates a Builder. When quiet is set, tool stdout is
// discarded instead of streamed.
func NewBuilder(runner Runner, log zerolog.Logger, quiet bool) *Builder {
	return &Builder{runner: runner, log: log, quiet: quiet}
}

func (b *Builder) stdout() io.Writer {
	if b.quiet {
		return io.Discard
	}
	return os.Stdout
}

// Build masters treePath into an ISO at outFile using the volume id and
// boot flags from spec.
func (b *Builder) Build(ctx context.Context, treePath, outFile string, spec *flavor.Spec) error {
	args := []string{
		"-v",            // verbose
		"-follow-links", // resolve the staging symlinks into real content

		// Recommended file options
		"-J",           // Joliet records for Windows
		"-joliet-long", // Joliet names up to 103 characters
		"-r",           // sane file ownership and modes
		"-U",           // relaxed filenames

		"-V", spec.VolumeID,
	}

	if spec.BIOSBoot {
		args = append(args,
			"-b", "isolinux/isolinux.bin", // BIOS boot image
			"-c", "isolinux/boot.cat", // El Torito boot catalog
			"-no-emul-boot",
			"-boot-load-size", "4",
			"-boot-info-table",
			"-eltorito-alt-boot", // finalize this entry, start the next
		)
	}

	if spec.EFIBoot {
		args = append(args,
			"-e", "images/efiboot.img", // EFI boot image
			"-no-emul-boot",
		)
	}

	args = append(args, "-o", outFile, treePath)

	b.log.Info().Str("command", xorrisofsCmd).Strs("args", args).Msg("running command")
	if err := b.runner.Run(ctx, b.stdout(), xorrisofsCmd, args...); err != nil {
		return fmt.Errorf("failed to generate ISO: %w", err)
	}
	return nil
}

// ImplantChecksum embeds a checksum into the finished ISO so installers
// can verify the medium.
func (b *Builder) ImplantChecksum(ctx context.Context, outFile string) error {
	b.log.Info().Str("command", implantMD5Cmd).Str("file", outFile).Msg("running command")
	if err := b.runner.Run(ctx, b.stdout(), implantMD5Cmd, outFile); err != nil {
		return fmt.Errorf("failed to implant checksum: %w", err)
	}
	return nil
}
