package cmd

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the optional yaml configuration schema. Values seed the
// corresponding flags' defaults; flags set on the command line win.
type FileConfig struct {
	// Images controls whether image markup survives conversion.
	// A pointer distinguishes "not set" from an explicit false.
	Images  *bool  `yaml:"images"`
	Output  string `yaml:"output"`
	Verbose bool   `yaml:"verbose"`
}

// loadConfig reads and parses a yaml config file.
func loadConfig(path string) (FileConfig, error) {
	var cfg FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// applyConfig overlays file values onto flags the user did not set
// explicitly on the command line.
func applyConfig(cfg FileConfig, imagesSet, outSet, verboseSet bool) {
	if cfg.Images != nil && !imagesSet {
		flagImages = *cfg.Images
	}
	if cfg.Output != "" && !outSet {
		flagOut = cfg.Output
	}
	if cfg.Verbose && !verboseSet {
		flagVerbose = true
	}
}
