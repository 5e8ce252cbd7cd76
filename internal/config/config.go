// Package config loads runtime options from defaults, an optional YAML
// file, the environment and command-line flags, in increasing priority.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/naka-gawa/issue-report/internal/gateway"
	"github.com/naka-gawa/issue-report/internal/render"
	"github.com/naka-gawa/issue-report/internal/usecase"
)

// Keys shared by viper, the config file and the cobra flags.
const (
	KeyToken        = "token"
	KeyBaseURL      = "base-url"
	KeyAPI          = "api"
	KeySnapshot     = "snapshot"
	KeyState        = "state"
	KeyIncludePulls = "include-pulls"
	KeyFormat       = "format"
	KeySummary      = "summary"
	KeyConcurrency  = "concurrency"
)

// Supported issue APIs.
const (
	APIREST    = "rest"
	APIGraphQL = "graphql"
)

const envPrefix = "ISSUE_REPORT"

// Config holds every option the report command needs.
type Config struct {
	Token        string
	BaseURL      string
	API          string
	Snapshot     string
	State        string
	IncludePulls bool
	Format       string
	Summary      bool
	Concurrency  int
}

// New returns a viper instance with defaults and environment bindings.
// ISSUE_REPORT_<KEY> overrides any key; GITHUB_TOKEN and GITHUB_API_URL are
// honored as well.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyAPI, APIREST)
	v.SetDefault(KeyState, gateway.StateOpen)
	v.SetDefault(KeyFormat, render.FormatJSON)
	v.SetDefault(KeyConcurrency, usecase.DefaultConcurrency)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyToken, envPrefix+"_TOKEN", "GITHUB_TOKEN")
	_ = v.BindEnv(KeyBaseURL, envPrefix+"_BASE_URL", "GITHUB_API_URL")
	return v
}

// ReadFile merges a YAML config file into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// Load builds a validated Config from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Token:        v.GetString(KeyToken),
		BaseURL:      v.GetString(KeyBaseURL),
		API:          strings.ToLower(v.GetString(KeyAPI)),
		Snapshot:     v.GetString(KeySnapshot),
		State:        strings.ToLower(v.GetString(KeyState)),
		IncludePulls: v.GetBool(KeyIncludePulls),
		Format:       strings.ToLower(v.GetString(KeyFormat)),
		Summary:      v.GetBool(KeySummary),
		Concurrency:  v.GetInt(KeyConcurrency),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown enumerations and non-positive concurrency.
func (c *Config) Validate() error {
	switch c.API {
	case APIREST, APIGraphQL:
	default:
		return fmt.Errorf("invalid api %q: must be %s or %s", c.API, APIREST, APIGraphQL)
	}
	switch c.State {
	case gateway.StateOpen, gateway.StateClosed, gateway.StateAll:
	default:
		return fmt.Errorf("invalid state %q: must be open, closed or all", c.State)
	}
	switch c.Format {
	case render.FormatJSON, render.FormatYAML:
	default:
		return fmt.Errorf("invalid format %q: must be %s or %s", c.Format, render.FormatJSON, render.FormatYAML)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency %d: must be at least 1", c.Concurrency)
	}
	return nil
}

// GatewayOptions returns the options passed to the GitHub gateways.
func (c *Config) GatewayOptions() gateway.Options {
	return gateway.Options{State: c.State, IncludePulls: c.IncludePulls}
}
