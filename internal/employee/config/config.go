// Package config loads the employee service configuration from a YAML
// file, with environment variables of the same name taking precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// PathEnv names the variable that points at the YAML file.
const PathEnv = "EMPLOYEE_CONFIG"

// DefaultPath is used when PathEnv is unset.
var DefaultPath = filepath.Join("internal", "employee", "config", "config.yaml")

// Config struct for YAML configuration
type Config struct {
	GRPCPort       int      `yaml:"GRPC_PORT"`
	HTTPPort       int      `yaml:"HTTP_PORT"`
	DBDriver       string   `yaml:"DB_DRIVER"`
	DBHost         string   `yaml:"DB_HOST"`
	DBPort         int      `yaml:"DB_PORT"`
	DBUser         string   `yaml:"DB_USER"`
	DBPassword     string   `yaml:"DB_PASSWORD"`
	DBName         string   `yaml:"DB_NAME"`
	DBSSLMode      string   `yaml:"DB_SSLMODE"`
	DBPath         string   `yaml:"DB_PATH"`
	KafkaBrokers   []string `yaml:"KAFKA_BROKERS"`
	Topic          string   `yaml:"TOPIC"`
	SeedOnStart    bool     `yaml:"SEED_ON_START"`
	ResetOnStart   bool     `yaml:"RESET_ON_START"`
	StrictNotFound bool     `yaml:"STRICT_NOT_FOUND"`
}

// Default returns the settings used for keys missing from both file and env.
func Default() Config {
	return Config{
		GRPCPort:    50051,
		HTTPPort:    8080,
		DBDriver:    "postgres",
		DBHost:      "localhost",
		DBPort:      5432,
		DBSSLMode:   "disable",
		Topic:       "employee_events",
		SeedOnStart: true,
	}
}

// Load reads the file named by EMPLOYEE_CONFIG (or DefaultPath) and applies
// environment overrides. A missing file is only an error when
// EMPLOYEE_CONFIG was set explicitly.
func Load() (*Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (*Config, error) {
	path, explicit := lookup(PathEnv)
	if !explicit {
		path = DefaultPath
	}

	cfg := Default()
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// defaults and environment only
	default:
		return nil, err
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides cfg with every key present in the environment.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"DB_DRIVER":   &cfg.DBDriver,
		"DB_HOST":     &cfg.DBHost,
		"DB_USER":     &cfg.DBUser,
		"DB_PASSWORD": &cfg.DBPassword,
		"DB_NAME":     &cfg.DBName,
		"DB_SSLMODE":  &cfg.DBSSLMode,
		"DB_PATH":     &cfg.DBPath,
		"TOPIC":       &cfg.Topic,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"GRPC_PORT": &cfg.GRPCPort,
		"HTTP_PORT": &cfg.HTTPPort,
		"DB_PORT":   &cfg.DBPort,
	}
	for key, dst := range ints {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}

	bools := map[string]*bool{
		"SEED_ON_START":    &cfg.SeedOnStart,
		"RESET_ON_START":   &cfg.ResetOnStart,
		"STRICT_NOT_FOUND": &cfg.StrictNotFound,
	}
	for key, dst := range bools {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
	}

	if v, ok := lookup("KAFKA_BROKERS"); ok {
		cfg.KafkaBrokers = splitList(v)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
