package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
)

// DefaultLocal is the local config file read when --config isn't given.
const DefaultLocal = "config.toml"

// layerSuffix is appended to every XDG config directory.
var layerSuffix = filepath.Join("confluence_poster", "config.toml")

// Loaded is the outcome of reading all config layers.
type Loaded struct {
	Config Config

	// Files that contributed to Config, lowest precedence first.
	Files []string
}

// LayerPaths lists every location a config layer may live at, lowest precedence first: each of
// $XDG_CONFIG_DIRS from the least important one, then $XDG_CONFIG_HOME, then the local file.
func LayerPaths(local string) ([]string, error) {
	paths := []string{}

	dirs := os.Getenv("XDG_CONFIG_DIRS")
	if dirs == "" {
		dirs = "/etc/xdg"
	}
	system := filepath.SplitList(dirs)
	// XDG_CONFIG_DIRS is ordered most important first.
	for i := len(system) - 1; i >= 0; i-- {
		if system[i] == "" {
			continue
		}
		paths = append(paths, filepath.Join(system[i], layerSuffix))
	}

	home := os.Getenv("XDG_CONFIG_HOME")
	if home == "" {
		h, err := homedir.Expand("~/.config")
		if err != nil {
			return nil, fmt.Errorf("config: unable to expand homedir: %w", err)
		}
		home = h
	}
	paths = append(paths, filepath.Join(home, layerSuffix))

	if local == "" {
		local = DefaultLocal
	}
	local, err := homedir.Expand(local)
	if err != nil {
		return nil, fmt.Errorf("config: unable to expand homedir: %w", err)
	}
	paths = append(paths, local)

	return paths, nil
}

// Load reads and merges all layers.  Missing layers are skipped, except for a local file the user
// asked for explicitly.
func Load(local string, explicit bool) (*Loaded, error) {
	paths, err := LayerPaths(local)
	if err != nil {
		return nil, err
	}

	layers := []map[string]any{}
	files := []string{}
	for i, path := range paths {
		layer, err := readLayer(path)
		if errors.Is(err, os.ErrNotExist) {
			if explicit && i == len(paths)-1 {
				return nil, fmt.Errorf("config: specified config file does not exist: %w", err)
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
		files = append(files, path)
	}

	if len(layers) == 0 {
		return nil, fmt.Errorf("config: no config file found, looked in: %s", strings.Join(paths, ", "))
	}

	merged, err := MergeAll(layers...)
	if err != nil {
		return nil, err
	}

	cfg, err := Decode(merged)
	if err != nil {
		return nil, err
	}

	return &Loaded{Config: *cfg, Files: files}, nil
}

func readLayer(path string) (map[string]any, error) {
	layer := map[string]any{}
	if _, err := toml.DecodeFile(path, &layer); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("config: couldn't parse %s: %w", path, err)
	}
	return layer, nil
}

// Decode turns a merged document into a Config, refusing keys it doesn't know about.
func Decode(merged map[string]any) (*Config, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(merged); err != nil {
		return nil, fmt.Errorf("config: couldn't re-encode merged config: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(buf.String(), &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: couldn't decode merged config: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("config: unknown keys in config: %s", strings.Join(keys, ", "))
	}

	return &cfg, nil
}
