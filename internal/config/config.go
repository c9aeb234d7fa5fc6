package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sihproto/verifyboard/internal/preferences"
)

const (
	configFileName = "verifyboard.conf"

	defaultLanguage      = "en"
	defaultCollation     = "en"
	defaultPageSize      = 10
	defaultLogFormat     = "console"
	defaultAddress       = "127.0.0.1"
	defaultBroadcastPort = 32497
	defaultHealthPort    = 9444
)

type Config struct {
	Language  string
	Collation string
	PageSize  int

	Debug     bool
	LogFormat string

	BroadcastAddress string
	BroadcastPort    int
	HealthAddress    string
	HealthPort       int

	// Dir is the directory the file was read from; preferences live next to it.
	Dir string
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		Language:         defaultLanguage,
		Collation:        defaultCollation,
		PageSize:         defaultPageSize,
		LogFormat:        defaultLogFormat,
		BroadcastAddress: defaultAddress,
		BroadcastPort:    defaultBroadcastPort,
		HealthAddress:    defaultAddress,
		HealthPort:       defaultHealthPort,
	}
}

// NewConfig reads verifyboard.conf from the dashboard directory, falling back to the
// defaults when the file does not exist.
func NewConfig() (*Config, error) {
	dir, err := preferences.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard directory: %w", err)
	}
	return Load(filepath.Join(dir, configFileName))
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := Defaults()
	config.Dir = filepath.Dir(path)

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "language":
			config.Language = value
		case "collation":
			config.Collation = value
		case "page_size":
			config.PageSize, err = strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid page size value: %w", err)
			}
		case "debug":
			config.Debug = value == "true"
		case "log_format":
			config.LogFormat = value
		case "broadcast_address":
			config.BroadcastAddress = value
		case "broadcast_port":
			config.BroadcastPort, err = strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid broadcast port value: %w", err)
			}
		case "health_address":
			config.HealthAddress = value
		case "health_port":
			config.HealthPort, err = strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid health port value: %w", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Language == "" {
		errGrp = append(errGrp, errors.New("language cannot be empty"))
	}
	if c.PageSize <= 0 {
		errGrp = append(errGrp, fmt.Errorf("page size must be greater than 0, got %d", c.PageSize))
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		errGrp = append(errGrp, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	return errors.Join(errGrp...)
}
