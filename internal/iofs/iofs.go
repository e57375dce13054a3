// Package iofs prepares the file system for wikialias and opens the
// possibly compressed input files.
package iofs

import (
	"os"

	"github.com/gnames/gnsys"
	"github.com/gnames/wikialias/pkg/config"
	"gopkg.in/yaml.v3"
)

const configHeader = `# wikialias configuration.
#
# Values here are overridden by WIKIALIAS_* environment variables
# (for example WIKIALIAS_JOBS_NUMBER=8) and by command line flags.
#
# store.format: gob, json, sqlite or postgres. The database section is
# used only by the postgres format.
# log.destination: file, stderr or stdout.

`

// ConfigYAML returns the content of a default configuration file.
func ConfigYAML() (string, error) {
	bs, err := yaml.Marshal(config.New())
	if err != nil {
		return "", err
	}
	return configHeader + string(bs), nil
}

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
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

	if err := gnsys.MakeDir(dir); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes a default config.yaml unless it already exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	content, err := ConfigYAML()
	if err != nil {
		return ConfigFileError(configPath, err)
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return ConfigFileError(configPath, err)
	}

	return nil
}
