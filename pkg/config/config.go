/*
Package config manages TOML config for wordgram.

A missing file is created with defaults, a malformed one is parsed section by section
and anything still unusable falls back to the builtin defaults. Loading never fails
because of bad values; it logs a warning and repairs them.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordgram/internal/utils"
	"github.com/bastiangx/wordgram/pkg/ngram"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Model  ModelConfig  `toml:"model"`
	Server ServerConfig `toml:"server"`
	Corpus CorpusConfig `toml:"corpus"`
	CLI    CliConfig    `toml:"cli"`
}

// ModelConfig has the n-gram order and prediction search bounds.
type ModelConfig struct {
	N                   int     `toml:"n"`
	MaxRounds           int     `toml:"max_rounds"`
	MinProbability      float64 `toml:"min_probability"`
	FallbackProbability float64 `toml:"fallback_probability"`
	PartialFallback     bool    `toml:"partial_fallback"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit     int  `toml:"max_limit"`
	MinPrefix    int  `toml:"min_prefix"`
	MaxPrefix    int  `toml:"max_prefix"`
	EnableFilter bool `toml:"enable_filter"`
}

// CorpusConfig holds where training text is read from.
type CorpusConfig struct {
	Path string `toml:"path"`
}

// CliConfig holds one-shot query options.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/wordgram
// 2. ~/Library/Application Support/wordgram (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "wordgram")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "wordgram")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/wordgram/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			N:                   ngram.DefaultN,
			MaxRounds:           ngram.DefaultMaxRounds,
			MinProbability:      ngram.DefaultMinProbability,
			FallbackProbability: ngram.DefaultFallbackProbability,
			PartialFallback:     true,
		},
		Server: ServerConfig{
			MaxLimit:     64,
			MinPrefix:    1,
			MaxPrefix:    60,
			EnableFilter: true,
		},
		Corpus: CorpusConfig{
			Path: "corpus/",
		},
		CLI: CliConfig{
			DefaultLimit: 10,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.Validate()
	return config, nil
}

// tryPartialParse recovers the sections of a TOML file that decode as generic values
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "model"); ok {
		extractModelConfig(section, &config.Model)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "corpus"); ok {
		extractCorpusConfig(section, &config.Corpus)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	config.Validate()
	return config, nil
}

func extractModelConfig(data map[string]any, model *ModelConfig) {
	if val, ok := utils.ExtractInt64(data, "n"); ok {
		model.N = val
	}
	if val, ok := utils.ExtractInt64(data, "max_rounds"); ok {
		model.MaxRounds = val
	}
	if val, ok := utils.ExtractFloat64(data, "min_probability"); ok {
		model.MinProbability = val
	}
	if val, ok := utils.ExtractFloat64(data, "fallback_probability"); ok {
		model.FallbackProbability = val
	}
	if val, ok := utils.ExtractBool(data, "partial_fallback"); ok {
		model.PartialFallback = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.ExtractBool(data, "enable_filter"); ok {
		server.EnableFilter = val
	}
}

func extractCorpusConfig(data map[string]any, corpus *CorpusConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		corpus.Path = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
}

// Validate resets out-of-range values to their defaults.
func (c *Config) Validate() {
	def := DefaultConfig()

	if c.Model.N < 1 {
		log.Warnf("Invalid model.n %d, using %d", c.Model.N, def.Model.N)
		c.Model.N = def.Model.N
	}
	if c.Model.MaxRounds < 1 {
		log.Warnf("Invalid model.max_rounds %d, using %d", c.Model.MaxRounds, def.Model.MaxRounds)
		c.Model.MaxRounds = def.Model.MaxRounds
	}
	if c.Model.MinProbability <= 0 || c.Model.MinProbability > 1 {
		log.Warnf("Invalid model.min_probability %g, using %g", c.Model.MinProbability, def.Model.MinProbability)
		c.Model.MinProbability = def.Model.MinProbability
	}
	if c.Model.FallbackProbability <= 0 || c.Model.FallbackProbability > 1 {
		log.Warnf("Invalid model.fallback_probability %g, using %g", c.Model.FallbackProbability, def.Model.FallbackProbability)
		c.Model.FallbackProbability = def.Model.FallbackProbability
	}
	if c.Server.MaxLimit < 1 {
		log.Warnf("Invalid server.max_limit %d, using %d", c.Server.MaxLimit, def.Server.MaxLimit)
		c.Server.MaxLimit = def.Server.MaxLimit
	}
	if c.Server.MinPrefix < 1 {
		c.Server.MinPrefix = def.Server.MinPrefix
	}
	if c.Server.MaxPrefix < c.Server.MinPrefix {
		log.Warnf("server.max_prefix %d is below min_prefix %d, using %d", c.Server.MaxPrefix, c.Server.MinPrefix, def.Server.MaxPrefix)
		c.Server.MaxPrefix = max(def.Server.MaxPrefix, c.Server.MinPrefix)
	}
	if c.CLI.DefaultLimit < 1 {
		c.CLI.DefaultLimit = def.CLI.DefaultLimit
	}
}

// ModelOptions maps the [model] section to ngram options.
func (c *Config) ModelOptions() ngram.Options {
	return ngram.Options{
		N:                   c.Model.N,
		MaxRounds:           c.Model.MaxRounds,
		MinProbability:      c.Model.MinProbability,
		FallbackProbability: c.Model.FallbackProbability,
		DropPartial:         !c.Model.PartialFallback,
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the server limits and saves to file
func (c *Config) Update(configPath string, maxLimit, minPrefix, maxPrefix *int, enableFilter *bool) error {
	server := &c.Server
	if maxLimit != nil {
		server.MaxLimit = *maxLimit
	}
	if minPrefix != nil {
		server.MinPrefix = *minPrefix
	}
	if maxPrefix != nil {
		server.MaxPrefix = *maxPrefix
	}
	if enableFilter != nil {
		server.EnableFilter = *enableFilter
	}
	c.Validate()
	return SaveConfig(c, configPath)
}
