// Package config handles loading and managing nmtui configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the nmtui configuration.
type Config struct {
	Notmuch NotmuchConfig `toml:"notmuch"`
	Search  SearchConfig  `toml:"search"`

	// Computed paths (not from config file)
	HomeDir string `toml:"-"`
}

// NotmuchConfig locates the external index tool.
type NotmuchConfig struct {
	Bin string `toml:"bin"` // notmuch binary (default: "notmuch" from PATH)
}

// SearchConfig holds query defaults.
type SearchConfig struct {
	DefaultQuery string   `toml:"default_query"` // Query when no terms given
	ExcludeTags  []string `toml:"exclude_tags"`  // Tags filtered out of the default query
	ResultLimit  int      `toml:"result_limit"`  // Initial result window size
}

// DefaultHome returns the default nmtui home directory.
// Respects the NMTUI_HOME environment variable.
func DefaultHome() string {
	if h := os.Getenv("NMTUI_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nmtui"
	}
	return filepath.Join(home, ".config", "nmtui")
}

// Load reads the configuration from the specified file.
// If path is empty, uses the default location (~/.config/nmtui/config.toml).
// A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	homeDir := DefaultHome()
	if path == "" {
		path = filepath.Join(homeDir, "config.toml")
	}

	cfg := &Config{
		HomeDir: homeDir,
		Notmuch: NotmuchConfig{
			Bin: "notmuch",
		},
		Search: SearchConfig{
			DefaultQuery: "tag:inbox",
			ExcludeTags:  []string{"spam", "deleted"},
			ResultLimit:  50,
		},
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultSearchQuery builds the query used when the user supplies no terms:
// the configured default with excluded tags appended as NOT clauses.
func (c *Config) DefaultSearchQuery() string {
	var sb strings.Builder
	sb.WriteString(c.Search.DefaultQuery)
	for _, tag := range c.Search.ExcludeTags {
		if tag == "" {
			continue
		}
		fmt.Fprintf(&sb, " AND NOT tag:%s", tag)
	}
	return sb.String()
}
