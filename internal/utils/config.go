package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

// GetLaisConfigDir returns the path to the lais configuration directory.
// The directory is located inside the user's configuration directory
// as <UserConfigDir>/.lais, unless overridden by LAIS_CONFIG_DIR.
func GetLaisConfigDir() (string, error) {
	if laisConfigDir := os.Getenv("LAIS_CONFIG_DIR"); laisConfigDir != "" {
		return laisConfigDir, nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return path.Join(cfg, ".lais"), nil
}

// LoadConfigFromFile reads configFileName inside configDirPath, creating
// the directory and a default config file from dflt on first run.
func LoadConfigFromFile[T any](configDirPath, configFileName string, dflt *T) (T, error) {
	var conf T
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("attempting to load file: '%v'\n", path.Join(configDirPath, configFileName)))
	}
	if err := os.MkdirAll(configDirPath, os.ModePerm); err != nil {
		return conf, fmt.Errorf("failed to create config directory: %w", err)
	}
	configFilePath := filepath.Join(configDirPath, configFileName)
	if _, err := os.Stat(configFilePath); errors.Is(err, fs.ErrNotExist) {
		if err := CreateFile(configFilePath, dflt); err != nil {
			return conf, fmt.Errorf("failed to write default config: '%v', error: %w", configFileName, err)
		}
		ancli.PrintOK(fmt.Sprintf("created default config file: '%v'\n", configFilePath))
	}
	if err := ReadAndUnmarshal(configFilePath, &conf); err != nil {
		return conf, fmt.Errorf("failed to unmarshal config '%v', error: %w", configFileName, err)
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("found config: %+v\n", conf))
	}
	return conf, nil
}

func CreateFile[T any](path string, toCreate *T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()
	b, err := json.MarshalIndent(toCreate, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if _, err := file.Write(b); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ReturnNonDefault errors when both a and b deviate from defaultVal,
// used to merge mutually exclusive short/long flag pairs.
func ReturnNonDefault[T comparable](a, b, defaultVal T) (T, error) {
	if a != defaultVal && b != defaultVal {
		return defaultVal, fmt.Errorf("values are mutually exclusive")
	}
	if a != defaultVal {
		return a, nil
	}
	if b != defaultVal {
		return b, nil
	}
	return defaultVal, nil
}

// ReadAndUnmarshal by first finding the file, then attempting to read + unmarshal to T
func ReadAndUnmarshal[T any](filePath string, config *T) error {
	if _, err := os.Stat(filePath); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to find file: %w", err)
	}
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	err = json.Unmarshal(fileBytes, config)
	if err != nil {
		return fmt.Errorf("failed to unmarshal file: %w", err)
	}
	return nil
}
