package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	RootPath string        `yaml:"root_path"`
	Rules    RulesConfig   `yaml:"rules"`
	Reports  ReportsConfig `yaml:"reports"`
	Advisor  AdvisorConfig `yaml:"advisor"`
	Email    EmailConfig   `yaml:"email"`
	Verbose  bool          `yaml:"-"` // Set via CLI only
}

// RequiredFile is a project file that must exist before compiling
type RequiredFile struct {
	Path        string `yaml:"path"`
	Description string `yaml:"description"`
}

// Dependency is a library that must be declared in the build file
type Dependency struct {
	Keyword string `yaml:"keyword"`
	Name    string `yaml:"name"`
}

// RulesConfig holds the declarative tables the checks run against
type RulesConfig struct {
	RequiredFiles []RequiredFile `yaml:"required_files"`

	SourceDir       string `yaml:"source_dir"`
	SourceExtension string `yaml:"source_extension"`
	MaxSourceFiles  int    `yaml:"max_source_files"`

	SchemaFile     string `yaml:"schema_file"`
	EntityMarker   string `yaml:"entity_marker"`
	DaoMarker      string `yaml:"dao_marker"`
	ContainerClass string `yaml:"container_class"`

	BuildFile    string       `yaml:"build_file"`
	Dependencies []Dependency `yaml:"dependencies"`

	UIFiles      []string `yaml:"ui_files"`
	LegacyMarker string   `yaml:"legacy_marker"`
	ModernMarker string   `yaml:"modern_marker"`
}

// ReportsConfig holds report storage settings
type ReportsConfig struct {
	Format    string `yaml:"format"`     // text, markdown, json, sarif
	OutputDir string `yaml:"output_dir"` // empty disables saving
}

// AdvisorConfig holds the optional LLM advisor settings
type AdvisorConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Provider string `yaml:"provider"` // openai, googleai
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"` // Custom OpenAI-compatible endpoint
}

// EmailConfig holds email delivery settings
type EmailConfig struct {
	Enabled      bool   `yaml:"enabled"`
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromAddress  string `yaml:"from_address"`
	FromName     string `yaml:"from_name"`
	ToAddress    string `yaml:"to_address"`
}

const packageDir = "app/src/main/java/com/jose/listacompra"

// DefaultMaxSourceFiles bounds how many source files the syntax scan inspects
const DefaultMaxSourceFiles = 10

// DefaultRules returns the rule tables for the Lista Compra Android project
func DefaultRules() RulesConfig {
	return RulesConfig{
		RequiredFiles: []RequiredFile{
			{Path: "app/build.gradle.kts", Description: "build.gradle"},
			{Path: "app/src/main/AndroidManifest.xml", Description: "AndroidManifest"},
			{Path: packageDir + "/ui/MainActivity.kt", Description: "MainActivity"},
			{Path: packageDir + "/data/local/Database.kt", Description: "Database"},
			{Path: packageDir + "/domain/model/Product.kt", Description: "Product model"},
		},
		SourceDir:       "app/src/main/java",
		SourceExtension: ".kt",
		MaxSourceFiles:  DefaultMaxSourceFiles,
		SchemaFile:      packageDir + "/data/local/Database.kt",
		EntityMarker:    "@Entity",
		DaoMarker:       "@Dao",
		ContainerClass:  "ShoppingListDatabase",
		BuildFile:       "app/build.gradle.kts",
		Dependencies: []Dependency{
			{Keyword: "room", Name: "Room Database"},
			{Keyword: "compose", Name: "Jetpack Compose"},
			{Keyword: "navigation", Name: "Navigation"},
			{Keyword: "gson", Name: "Gson JSON"},
		},
		UIFiles: []string{
			packageDir + "/ui/screens/MainScreen.kt",
			packageDir + "/ui/viewmodel/ShoppingListViewModel.kt",
		},
		LegacyMarker: "MaterialTheme",
		ModernMarker: "androidx.compose.material3",
	}
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		RootPath: filepath.Join(homeDir, "private-users", "Jose", "proyectos", "lista-compra-app"),
		Rules:    DefaultRules(),
		Reports: ReportsConfig{
			Format: "text",
		},
		Advisor: AdvisorConfig{
			Provider: "googleai",
			Model:    "gemini-2.0-flash",
		},
		Email: EmailConfig{
			SMTPPort: 587,
			FromName: "App Verify",
		},
	}
}

// DefaultPath returns the config file location used when none is given
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "appverify", "config.yaml")
}

// Load reads configuration from file and merges with defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath()
		if path == "" {
			return cfg, nil // Use defaults if can't find home
		}
	}

	path = ExpandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if file doesn't exist
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.RootPath = ExpandPath(cfg.RootPath)
	cfg.Reports.OutputDir = ExpandPath(cfg.Reports.OutputDir)

	return cfg, nil
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.RootPath == "" {
		return fmt.Errorf("root_path is required")
	}

	if c.Rules.MaxSourceFiles <= 0 {
		return fmt.Errorf("rules.max_source_files must be positive, got %d", c.Rules.MaxSourceFiles)
	}
	if c.Rules.SourceExtension == "" {
		return fmt.Errorf("rules.source_extension is required")
	}
	for i, f := range c.Rules.RequiredFiles {
		if f.Path == "" {
			return fmt.Errorf("rules.required_files[%d]: path is required", i)
		}
		if filepath.IsAbs(f.Path) {
			return fmt.Errorf("rules.required_files[%d]: path must be relative: %s", i, f.Path)
		}
	}
	for i, d := range c.Rules.Dependencies {
		if strings.TrimSpace(d.Keyword) == "" {
			return fmt.Errorf("rules.dependencies[%d]: keyword is required", i)
		}
	}

	switch c.Reports.Format {
	case "", "text", "markdown", "json", "sarif":
	default:
		return fmt.Errorf("unsupported report format: %s", c.Reports.Format)
	}

	if c.Email.Enabled {
		if c.Email.SMTPHost == "" {
			return fmt.Errorf("smtp_host is required when email is enabled")
		}
		if c.Email.ToAddress == "" {
			return fmt.Errorf("to_address is required when email is enabled")
		}
	}

	return nil
}
