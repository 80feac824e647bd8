package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LoadDirectory loads all configuration files from a directory and combines
// them into a single File. Files are loaded in lexicographical order.
// Later files can override values from earlier files.
func LoadDirectory(dirPath string) (*File, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var configFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && isConfigFile(entry.Name()) {
			configFiles = append(configFiles, filepath.Join(dirPath, entry.Name()))
		}
	}
	sort.Strings(configFiles)

	if len(configFiles) == 0 {
		return nil, fmt.Errorf("no configuration files found in directory: %s", dirPath)
	}

	var merged *File
	for _, path := range configFiles {
		file, err := ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
		}
		if merged == nil {
			merged = file
		} else {
			merged = Merge(merged, file)
		}
	}
	return merged, nil
}

// Load reads a configuration file, or every configuration file in a
// directory.
func Load(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return LoadDirectory(path)
	}
	return ParseFile(path)
}
