// Package iofs prepares directories and files roomdb keeps in the user's
// home directory.
package iofs

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/gnames/roomdb/pkg/config"
	"gopkg.in/yaml.v3"
)

// ConfigYAML is the documented default configuration file.
//
//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config file unless it exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// ValidateConfigFile checks that the file at path is a YAML document
// matching the configuration structure.
func ValidateConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return ReadFileError(path, err)
	}

	var cfg config.Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(&cfg); err != nil {
		return ReadFileError(path, fmt.Errorf("invalid config: %w", err))
	}
	return nil
}
