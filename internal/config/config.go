package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Output formats for decoded payloads.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config is the statsctl configuration.
type Config struct {
	// FamilyID is the TASKSTATS id assigned by the running kernel, as returned
	// by a controller lookup. 0 leaves decoded envelopes unresolved.
	FamilyID   uint16
	ListenAddr string
	Workers    int
	Output     string
	LogLevel   string
}

type fileConfig struct {
	FamilyID   uint16 `toml:"family_id"`
	ListenAddr string `toml:"listen_addr"`
	Workers    int    `toml:"workers"`
	Output     string `toml:"output"`
	LogLevel   string `toml:"log_level"`
}

func Default() Config {
	return Config{
		ListenAddr: "127.0.0.1:9410",
		Workers:    4,
		Output:     OutputJSON,
		LogLevel:   "info",
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load statsctl config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load statsctl config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("family_id") {
		cfg.FamilyID = raw.FamilyID
	}
	if meta.IsDefined("listen_addr") {
		cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
	}
	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.ToLower(strings.TrimSpace(raw.Output))
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return fmt.Errorf("statsctl config missing listen_addr")
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("statsctl config workers must be >= 1, got %d", cfg.Workers)
	}
	switch cfg.Output {
	case OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("statsctl config output %q: want %s or %s", cfg.Output, OutputJSON, OutputYAML)
	}
	return nil
}
