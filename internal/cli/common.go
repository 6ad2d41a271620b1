package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/danieljhkim/isomer/internal/config"
	"github.com/danieljhkim/isomer/internal/flavor"
)

// newLogger builds the diagnostic logger injected into the engine and
// builder. Progress messages go to stderr; --quiet raises the level so
// only warnings and errors surface.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if quiet {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// loadSpec locates the flavor config, parses it, and validates it into a
// Spec. volumeID, if non-empty, overrides the config's volume_id.
func loadSpec(flavorArg, volumeID string, log zerolog.Logger) (*flavor.Spec, string, error) {
	cfgPath, err := config.LocateFlavor(flavorArg)
	if err != nil {
		return nil, "", err
	}
	log.Info().Str("path", cfgPath).Msg("using configuration file")

	cfg, err := flavor.ParseFile(cfgPath)
	if err != nil {
		return nil, cfgPath, err
	}

	spec, err := flavor.NewSpec(cfg, volumeID, log)
	if err != nil {
		return nil, cfgPath, fmt.Errorf("invalid flavor %s: %w", cfgPath, err)
	}
	return spec, cfgPath, nil
}
