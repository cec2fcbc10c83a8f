package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "private-users", "Jose", "proyectos", "lista-compra-app"), cfg.RootPath)
	assert.Len(t, cfg.Rules.RequiredFiles, 5)
	assert.Len(t, cfg.Rules.Dependencies, 4)
	assert.Len(t, cfg.Rules.UIFiles, 2)
	assert.Equal(t, DefaultMaxSourceFiles, cfg.Rules.MaxSourceFiles)
	assert.Equal(t, ".kt", cfg.Rules.SourceExtension)
	assert.Equal(t, "text", cfg.Reports.Format)
	assert.False(t, cfg.Advisor.Enabled)
	assert.False(t, cfg.Email.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Rules, cfg.Rules)
}

func TestLoadMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
root_path: /tmp/myapp
rules:
  max_source_files: 3
  dependencies:
    - keyword: hilt
      name: Hilt
reports:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/myapp", cfg.RootPath)
	assert.Equal(t, 3, cfg.Rules.MaxSourceFiles)
	assert.Equal(t, []Dependency{{Keyword: "hilt", Name: "Hilt"}}, cfg.Rules.Dependencies)
	assert.Equal(t, "json", cfg.Reports.Format)
	// Untouched tables keep their defaults
	assert.Equal(t, DefaultRules().RequiredFiles, cfg.Rules.RequiredFiles)
	assert.Equal(t, "@Entity", cfg.Rules.EntityMarker)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: [unclosed"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "proj"), ExpandPath("~/proj"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, "rel", ExpandPath("rel"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"empty root", func(c *Config) { c.RootPath = "" }, "root_path is required"},
		{"zero max files", func(c *Config) { c.Rules.MaxSourceFiles = 0 }, "max_source_files"},
		{"no extension", func(c *Config) { c.Rules.SourceExtension = "" }, "source_extension"},
		{"absolute required file", func(c *Config) {
			c.Rules.RequiredFiles = []RequiredFile{{Path: "/etc/passwd", Description: "x"}}
		}, "must be relative"},
		{"blank dependency keyword", func(c *Config) {
			c.Rules.Dependencies = []Dependency{{Keyword: " ", Name: "x"}}
		}, "keyword is required"},
		{"bad format", func(c *Config) { c.Reports.Format = "xml" }, "unsupported report format"},
		{"email without host", func(c *Config) {
			c.Email.Enabled = true
			c.Email.ToAddress = "dev@example.com"
		}, "smtp_host"},
		{"email without recipient", func(c *Config) {
			c.Email.Enabled = true
			c.Email.SMTPHost = "smtp.example.com"
		}, "to_address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateLeavesAdvisorKeyToProvider(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")

	cfg := DefaultConfig()
	cfg.Advisor.Enabled = true
	cfg.Advisor.Provider = "openai"

	require.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.Advisor.APIKey)
}
