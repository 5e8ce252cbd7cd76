package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/issue-report/internal/gateway"
	"github.com/naka-gawa/issue-report/internal/usecase"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GITHUB_API_URL", "")

	cfg, err := Load(New())

	require.NoError(t, err)
	assert.Equal(t, &Config{
		API:         APIREST,
		State:       "open",
		Format:      "json",
		Concurrency: usecase.DefaultConcurrency,
	}, cfg)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "gh-token")
	t.Setenv("GITHUB_API_URL", "https://ghe.example.com/api/v3/")
	t.Setenv("ISSUE_REPORT_API", "GraphQL")
	t.Setenv("ISSUE_REPORT_STATE", "all")
	t.Setenv("ISSUE_REPORT_INCLUDE_PULLS", "true")
	t.Setenv("ISSUE_REPORT_CONCURRENCY", "8")

	cfg, err := Load(New())

	require.NoError(t, err)
	assert.Equal(t, "gh-token", cfg.Token)
	assert.Equal(t, "https://ghe.example.com/api/v3/", cfg.BaseURL)
	assert.Equal(t, APIGraphQL, cfg.API)
	assert.Equal(t, gateway.Options{State: "all", IncludePulls: true}, cfg.GatewayOptions())
	assert.Equal(t, 8, cfg.Concurrency)
}

func TestLoad_PrefixedTokenWins(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "gh-token")
	t.Setenv("ISSUE_REPORT_TOKEN", "report-token")

	cfg, err := Load(New())

	require.NoError(t, err)
	assert.Equal(t, "report-token", cfg.Token)
}

func TestReadFile(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: yaml\nsummary: true\nstate: closed\n"), 0o600))

	v := New()
	require.NoError(t, ReadFile(v, path))
	cfg, err := Load(v)

	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
	assert.True(t, cfg.Summary)
	assert.Equal(t, "closed", cfg.State)

	assert.NoError(t, ReadFile(New(), ""))
	assert.ErrorContains(t, ReadFile(New(), filepath.Join(t.TempDir(), "missing.yaml")), "failed to read config file")
}

func TestValidate(t *testing.T) {
	valid := Config{API: APIREST, State: "open", Format: "json", Concurrency: 1}
	require.NoError(t, valid.Validate())

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		errText string
	}{
		{name: "unknown api", mutate: func(c *Config) { c.API = "soap" }, errText: "invalid api"},
		{name: "unknown state", mutate: func(c *Config) { c.State = "merged" }, errText: "invalid state"},
		{name: "unknown format", mutate: func(c *Config) { c.Format = "xml" }, errText: "invalid format"},
		{name: "zero concurrency", mutate: func(c *Config) { c.Concurrency = 0 }, errText: "invalid concurrency"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.errText)
		})
	}
}
