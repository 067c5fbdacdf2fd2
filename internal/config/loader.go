package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	envFileVar    = "ENV_FILE"
	configPathVar = "CONFIG_PATH"

	defaultEnvFile    = ".env"
	defaultConfigFile = "config.yaml"
)

// Load builds the service configuration in three layers: variables from the
// .env file (never overriding the real environment), then the YAML file,
// then the environment, which wins over both. Missing optional files are
// skipped; a file named explicitly through ENV_FILE or CONFIG_PATH must exist.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	path, err := configFile()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if path == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(path, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", describe(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() error {
	path, explicit := lookup(envFileVar, defaultEnvFile)
	err := godotenv.Load(path)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return nil
	default:
		return fmt.Errorf("config: env file %s: %w", path, err)
	}
}

// configFile returns the YAML path to read, or "" for environment only.
func configFile() (string, error) {
	path, explicit := lookup(configPathVar, defaultConfigFile)
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return path, nil
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return "", nil
	default:
		return "", fmt.Errorf("config: file %s: %w", path, err)
	}
}

func lookup(key, fallback string) (string, bool) {
	if v := os.Getenv(key); v != "" {
		return v, true
	}
	return fallback, false
}

func describe(path string) string {
	if path == "" {
		return "environment"
	}
	return path
}
