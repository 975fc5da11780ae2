package commitmsg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the name of the configuration file.
const DefaultConfigFile = ".commit-msg-emoji.yml"

const defaultMainRef = "main"

// Config represents the complete configuration of the hook.
type Config struct {
	Settings Settings `yaml:"settings,omitempty"`
}

// Settings contains global configuration options.
type Settings struct {
	// Mode overrides the annotation mode chosen from the input source.
	Mode             Mode     `yaml:"mode,omitempty"`
	FailFast         bool     `yaml:"fail_fast,omitempty"`
	SkipMergeCommits *bool    `yaml:"skip_merge_commits,omitempty"`
	SkipPatterns     []string `yaml:"skip_patterns,omitempty"`
	SkipAuthors      []string `yaml:"skip_authors,omitempty"`
	RequireEmoji     bool     `yaml:"require_emoji,omitempty"`
	MainRef          string   `yaml:"main_ref,omitempty"`

	// compiled patterns (cached, not in YAML)
	skipPatterns []*regexp.Regexp
	skipAuthors  []*regexp.Regexp
}

// skipMerge defaults to true if skip_merge_commits is not set.
func (s Settings) skipMerge() bool {
	return s.SkipMergeCommits == nil || *s.SkipMergeCommits
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			MainRef: defaultMainRef,
		},
	}
}

// LoadConfig loads and validates configuration from the specified directory.
// A missing config file yields the defaults.
func LoadConfig(repoPath string) (*Config, error) {
	configPath := filepath.Join(repoPath, DefaultConfigFile)

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Validate and compile patterns
	err = validateConfig(&config)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func validateConfig(config *Config) error {
	settings := &config.Settings

	if settings.Mode != "" {
		_, err := ParseMode(string(settings.Mode))
		if err != nil {
			return err
		}
	}

	if settings.MainRef == "" {
		settings.MainRef = defaultMainRef
	}

	var err error

	settings.skipPatterns, err = compilePatterns("skip_patterns", settings.SkipPatterns)
	if err != nil {
		return err
	}

	settings.skipAuthors, err = compilePatterns("skip_authors", settings.SkipAuthors)
	if err != nil {
		return err
	}

	return nil
}

func compilePatterns(field string, patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for i, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: invalid regex pattern %q: %w", field, i, pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}
