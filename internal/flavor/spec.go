package flavor

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/danieljhkim/isomer/internal/fsops"
)

const (
	// KickstartRelPath is where a kickstart file lands in the working tree.
	KickstartRelPath = "ks.cfg"

	// GrubRelPath is where a rendered grub template lands in the working tree.
	GrubRelPath = "EFI/BOOT/grub.cfg"
)

var whitespaceRE = regexp.MustCompile(`\s`)

// Spec is a validated flavor configuration. It is immutable once built;
// the overlay engine copies what it needs to consume.
type Spec struct {
	// VolumeID is the label embedded in the produced filesystem image.
	VolumeID string

	// Exclude holds glob patterns matched against source-relative paths.
	Exclude []string

	// Include maps working-tree-relative paths to symlink targets.
	Include map[string]string

	// GrubTemplate is an optional boot menu template with {field}
	// placeholders. Empty means no boot menu is generated.
	GrubTemplate string

	// Checksum controls whether a checksum is implanted after mastering.
	Checksum bool

	// BIOSBoot and EFIBoot select the boot flag groups passed to the
	// mastering tool.
	BIOSBoot bool
	EFIBoot  bool

	// Fields holds the substitution values available to the template.
	// Always contains volume_id; contains ks_path when a kickstart is set.
	Fields map[string]string
}

// NewSpec validates and normalizes a parsed config mapping into a Spec.
// volumeID, if non-empty, overrides any volume_id in the mapping. Keys are
// consumed from cfg as they are extracted; anything left over is reported
// as a non-fatal warning through log.
func NewSpec(cfg *Map, volumeID string, log zerolog.Logger) (*Spec, error) {
	spec := &Spec{
		Include: make(map[string]string),
		Fields:  make(map[string]string),
	}

	// Volume ID label. Joliet complains above 16 characters but still works.
	raw, ok := cfg.Pop("volume_id")
	if !ok && volumeID == "" {
		return nil, fmt.Errorf("%w: volume_id", ErrMissingField)
	}
	if ok {
		s, isStr := raw.(string)
		if !isStr {
			return nil, fmt.Errorf("%w: volume_id must be a string: %v", ErrTypeMismatch, raw)
		}
		spec.VolumeID = s
	}
	if volumeID != "" {
		spec.VolumeID = volumeID
	}

	// The installer rejects whitespace in labels even when quoted.
	if spec.VolumeID == "" {
		return nil, fmt.Errorf("%w: volume_id is empty", ErrValidation)
	}
	if whitespaceRE.MatchString(spec.VolumeID) {
		return nil, fmt.Errorf("%w: volume_id contains whitespace: %q", ErrValidation, spec.VolumeID)
	}
	spec.Fields["volume_id"] = spec.VolumeID

	exclude, err := popExclude(cfg)
	if err != nil {
		return nil, err
	}
	spec.Exclude = exclude

	if err := popInclude(cfg, spec.Include); err != nil {
		return nil, err
	}

	// Kickstart is placed at a fixed path in the tree root and exposed to
	// the template as an absolute-in-tree path.
	if raw, ok := cfg.Pop("kickstart"); ok && raw != nil {
		ks, isStr := raw.(string)
		if !isStr {
			return nil, fmt.Errorf("%w: kickstart must be a string: %v", ErrTypeMismatch, raw)
		}
		info, err := os.Stat(ks)
		if err != nil || !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%w: unable to find kickstart file: %s", ErrValidation, ks)
		}
		spec.Include[KickstartRelPath] = ks
		spec.Fields["ks_path"] = "/" + KickstartRelPath
	}

	if raw, ok := cfg.Pop("grub_template"); ok && raw != nil {
		tmpl, isStr := raw.(string)
		if !isStr {
			return nil, fmt.Errorf("%w: grub_template must be a string: %v", ErrTypeMismatch, raw)
		}
		spec.GrubTemplate = tmpl
		if tmpl != "" {
			// The rendered file replaces whatever the source tree has at
			// this path, so keep the plain copy phase away from it.
			spec.Exclude = append(spec.Exclude, GrubRelPath)
		}
	}

	spec.Checksum, err = popBool(cfg, "checksum", true)
	if err != nil {
		return nil, err
	}
	spec.BIOSBoot, err = popBool(cfg, "bios_boot", false)
	if err != nil {
		return nil, err
	}
	spec.EFIBoot, err = popBool(cfg, "efi_boot", true)
	if err != nil {
		return nil, err
	}

	if raw, ok := cfg.Pop("extra_fields"); ok && raw != nil {
		extra, isMap := raw.(*Map)
		if !isMap {
			return nil, fmt.Errorf("%w: extra_fields must be a mapping: %v", ErrTypeMismatch, raw)
		}
		for _, k := range extra.Keys() {
			v, _ := extra.Get(k)
			spec.Fields[k] = FormatValue(v)
		}
	}

	if cfg.Len() > 0 {
		log.Warn().
			Str("fields", strings.Join(cfg.Keys(), ", ")).
			Msg("ignoring unsupported fields in flavor configuration")
	}

	return spec, nil
}

func popExclude(cfg *Map) ([]string, error) {
	raw, ok := cfg.Pop("exclude")
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, isStr := e.(string)
			if !isStr {
				return nil, fmt.Errorf("%w: exclude patterns must be strings: %v", ErrTypeMismatch, e)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: exclude must be a string or sequence: %v", ErrTypeMismatch, raw)
	}
}

func popInclude(cfg *Map, dst map[string]string) error {
	raw, ok := cfg.Pop("include")
	if !ok || raw == nil {
		return nil
	}
	m, isMap := raw.(*Map)
	if !isMap {
		return fmt.Errorf("%w: include must be a mapping: %v", ErrTypeMismatch, raw)
	}
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		target, isStr := v.(string)
		if !isStr {
			return fmt.Errorf("%w: include target for %q must be a string: %v", ErrTypeMismatch, k, v)
		}
		if err := fsops.ValidateRelPath(k); err != nil {
			return fmt.Errorf("%w: include path %q: %v", ErrValidation, k, err)
		}
		dst[k] = target
	}
	return nil
}

func popBool(cfg *Map, key string, def bool) (bool, error) {
	raw, ok := cfg.Pop(key)
	if !ok || raw == nil {
		return def, nil
	}
	b, isBool := raw.(bool)
	if !isBool {
		return false, fmt.Errorf("%w: %s must be a boolean: %v", ErrTypeMismatch, key, raw)
	}
	return b, nil
}
