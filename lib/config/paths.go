package config

import (
	"fmt"
	"os"
	"path/filepath"

	yaml "github.com/goccy/go-yaml"
)

type CfgPath string

// UnmarshalBase is the directory relative paths are resolved against.
// Parse sets it to the directory of the config file being read.
var UnmarshalBase string

func (c *CfgPath) UnmarshalYAML(b []byte) error {
	var path string

	err := yaml.Unmarshal(b, &path)
	if err != nil {
		return err
	}

	if path == "" || filepath.IsAbs(path) {
		*c = CfgPath(path)
	} else {
		*c = CfgPath(filepath.Join(UnmarshalBase, path))
	}
	return nil
}

func (c CfgPath) Read() (string, error) {
	b, err := os.ReadFile(string(c))
	if err != nil {
		return "", fmt.Errorf("could not read %s: %w", string(c), err)
	}
	return string(b), nil
}
