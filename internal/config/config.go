package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Log      LogConfig
	Contacts ContactsConfig
	UI       UIConfig
}

// LogConfig controls the log file. An empty Path disables logging.
type LogConfig struct {
	Path  string
	Level string
}

// ContactsConfig holds list defaults.
type ContactsConfig struct {
	Seed                []string
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	AltScreen bool   `mapstructure:"alt_screen"`
	StartTab  string `mapstructure:"start_tab"`
}

var (
	validLevels = []string{"debug", "info", "warn", "error"}
	validTabs   = []string{"contacts", "profile", "fruits"}
)

// Load reads configuration from file and env. Env var overrides use prefix CONTACTS_.
// path, when non-empty, wins over CONTACTS_CONFIG and the default location.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "contacts", "contacts.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("contacts.seed", []string{"Blob", "Blob Jr", "Blob Sr"})
	v.SetDefault("contacts.similarity_threshold", 0.8)
	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("ui.start_tab", "contacts")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("CONTACTS_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "contacts"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CONTACTS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.UI.StartTab = strings.ToLower(strings.TrimSpace(c.UI.StartTab))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the program cannot act on.
func (c Config) Validate() error {
	if !contains(validLevels, c.Log.Level) {
		return fmt.Errorf("log.level %q: must be one of %v", c.Log.Level, validLevels)
	}
	if !contains(validTabs, c.UI.StartTab) {
		return fmt.Errorf("ui.start_tab %q: must be one of %v", c.UI.StartTab, validTabs)
	}
	if t := c.Contacts.SimilarityThreshold; t < 0 || t > 1 {
		return fmt.Errorf("contacts.similarity_threshold %v: must be within [0,1]", t)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
