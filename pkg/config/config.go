package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/matt-steen/todo-client/pkg/api"
	"github.com/spf13/viper"
)

// These constants are the configuration keys. Each is also a command line flag and can be set
// through the environment as TODO_CLIENT_<KEY>, e.g. TODO_CLIENT_BASE_URL.
const (
	KeyBaseURL = "base-url"
	KeyLogFile = "log-file"
	KeyDebug   = "debug"
	KeyAddr    = "addr"
	KeyDB      = "db"
)

const envPrefix = "TODO_CLIENT"

// Config holds the settings of the client and the stand-in service.
type Config struct {
	BaseURL string
	LogFile string
	Debug   bool

	// Addr and DBFile are only used by the stand-in service.
	Addr   string
	DBFile string
}

// NewViper returns a viper instance with defaults and environment binding set up.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyBaseURL, api.DefaultBaseURL)
	v.SetDefault(KeyLogFile, filepath.Join(os.TempDir(), "todo-client.log"))
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyAddr, "127.0.0.1:8080")
	v.SetDefault(KeyDB, "todo-fake.sqlite")

	return v
}

// Load reads the configuration from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		BaseURL: strings.TrimSpace(v.GetString(KeyBaseURL)),
		LogFile: v.GetString(KeyLogFile),
		Debug:   v.GetBool(KeyDebug),
		Addr:    v.GetString(KeyAddr),
		DBFile:  v.GetString(KeyDB),
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", KeyBaseURL, cfg.BaseURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid %s %q: scheme must be http or https", KeyBaseURL, cfg.BaseURL)
	}

	if cfg.LogFile == "" {
		return nil, fmt.Errorf("%s must not be empty", KeyLogFile)
	}

	return cfg, nil
}
