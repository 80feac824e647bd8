package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// ParseFile loads a File from disk. The file extension is used to determine
// the configuration format (JSON, YAML or TOML).
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return ParseJSON(data)
	case ".yml", ".yaml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// ParseYAML loads a File from YAML. Unknown fields are rejected.
func ParseYAML(data []byte) (*File, error) {
	var file File
	if err := yaml.UnmarshalWithOptions(data, &file, yaml.Strict()); err != nil {
		return nil, err
	}
	return &file, nil
}

// ParseJSON loads a File from JSON
func ParseJSON(data []byte) (*File, error) {
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// ParseTOML loads a File from TOML. Unknown keys are rejected.
func ParseTOML(data []byte) (*File, error) {
	var file File
	meta, err := toml.Decode(string(data), &file)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown configuration keys: %v", undecoded)
	}
	return &file, nil
}

func isConfigFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yml", ".yaml", ".toml":
		return true
	}
	return false
}
