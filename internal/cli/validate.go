package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var validateFlavor string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse and validate a flavor without building anything",
	Long: `Validate a flavor configuration: resolve it, parse it (following
includes), and run the same validation a build would, then print a summary
of the resulting settings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		spec, cfgPath, err := loadSpec(validateFlavor, "", log)
		if err != nil {
			return err
		}

		PrintSection("Flavor")
		PrintLabelValue("Config", cfgPath)
		PrintLabelValue("Volume ID", spec.VolumeID)
		PrintLabelValue("Checksum", fmt.Sprintf("%t", spec.Checksum))
		PrintLabelValue("BIOS boot", fmt.Sprintf("%t", spec.BIOSBoot))
		PrintLabelValue("EFI boot", fmt.Sprintf("%t", spec.EFIBoot))
		PrintLabelValue("Boot menu", fmt.Sprintf("%t", spec.GrubTemplate != ""))

		if len(spec.Exclude) > 0 {
			PrintSection("Excludes")
			PrintList(spec.Exclude)
		}

		if len(spec.Include) > 0 {
			PrintSection("Includes")
			keys := make([]string, 0, len(spec.Include))
			for k := range spec.Include {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			items := make([]string, 0, len(keys))
			for _, k := range keys {
				items = append(items, fmt.Sprintf("%s -> %s", k, spec.Include[k]))
			}
			PrintList(items)
		}

		PrintSuccess(fmt.Sprintf("Flavor %q is valid", validateFlavor))
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateFlavor, "flavor", "f", "", "Flavor name or path to flavor file")
	_ = validateCmd.MarkFlagRequired("flavor")
}
