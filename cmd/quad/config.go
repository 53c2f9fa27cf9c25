package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// config holds the settings a user can persist in quad/config.toml.
// Command-line flags override it field by field.
type config struct {
	Theme       string `toml:"theme"`
	FPS         int    `toml:"fps"`
	DebugRender string `toml:"debug_render"`
	LogFile     string `toml:"log_file"`
}

// loadConfig reads the TOML config from path, or from the default
// location when path is empty. A missing file is not an error.
func loadConfig(path string) (config, error) {
	var cfg config

	explicit := path != ""
	if !explicit {
		dir, err := os.UserConfigDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "quad", "config.toml")
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return config{}, nil
		}
		return cfg, errors.Wrapf(err, "load config %s", path)
	}
	return cfg, nil
}
