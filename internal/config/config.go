// Package config loads the type generator's settings.
//
// There are no command-line flags. Settings come, lowest precedence first,
// from built-in defaults, an optional type-generator.yaml in the working
// directory, a .env file, and TYPEGEN_* environment variables. Nested keys map
// to variables with "." replaced by "_", e.g. graph.uri is TYPEGEN_GRAPH_URI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"type-generator/internal/metadata"
	"type-generator/internal/moduleio"
)

const (
	// AppName is the application name.
	AppName = "type-generator"
	// ConfigFileName is the name of the optional settings file.
	ConfigFileName = AppName + ".yaml"
	// EnvFileName is the name of the optional dotenv file.
	EnvFileName = ".env"
	// EnvPrefix prefixes every environment variable.
	EnvPrefix = "TYPEGEN"
)

// Default locations, relative to the working directory.
const (
	DefaultInput  = "Managed/Assembly-CSharp-cleaned-remapped-stripped.dll.yaml"
	DefaultOutput = "Managed/Assembly-CSharp-eft.dll.yaml"
)

// Config holds the resolved settings.
type Config struct {
	Input             string      `mapstructure:"input"`
	Output            string      `mapstructure:"output"`
	SearchDirs        []string    `mapstructure:"search_dirs"`
	CoreLibrary       string      `mapstructure:"core_library"`
	ResolverCacheSize int         `mapstructure:"resolver_cache_size"`
	LogLevel          string      `mapstructure:"log_level"`
	Graph             GraphConfig `mapstructure:"graph"`
}

// GraphConfig configures the optional Neo4j export.
type GraphConfig struct {
	URI      string `mapstructure:"uri"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Clean    bool   `mapstructure:"clean"`
}

// Enabled reports whether an export target is configured.
func (g GraphConfig) Enabled() bool {
	return g.URI != ""
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Input:             DefaultInput,
		Output:            DefaultOutput,
		CoreLibrary:       metadata.DefaultCoreLibrary,
		ResolverCacheSize: moduleio.DefaultCacheSize,
		LogLevel:          log.InfoLevel.String(),
		Graph: GraphConfig{
			User: "neo4j",
		},
	}
}

// Load reads the settings for working directory dir. Relative paths in the
// result are resolved against dir.
func Load(dir string) (*Config, error) {
	if err := loadEnvFile(filepath.Join(dir, EnvFileName)); err != nil {
		return nil, err
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("input", defaults.Input)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("search_dirs", []string{})
	v.SetDefault("core_library", defaults.CoreLibrary)
	v.SetDefault("resolver_cache_size", defaults.ResolverCacheSize)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("graph.uri", defaults.Graph.URI)
	v.SetDefault("graph.user", defaults.Graph.User)
	v.SetDefault("graph.password", defaults.Graph.Password)
	v.SetDefault("graph.clean", defaults.Graph.Clean)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := filepath.Join(dir, ConfigFileName)
	if fileExists(path) {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.resolvePaths(dir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadEnvFile exports the variables of a dotenv file that are not already set.
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("failed to load %s: %w", path, err)
}

func (c *Config) resolvePaths(dir string) {
	c.Input = absPath(dir, c.Input)
	c.Output = absPath(dir, c.Output)

	if len(c.SearchDirs) == 0 && c.Output != "" {
		c.SearchDirs = []string{filepath.Dir(c.Output)}
	}

	for i, d := range c.SearchDirs {
		c.SearchDirs[i] = absPath(dir, d)
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return errors.New("input path is empty")
	}

	if strings.TrimSpace(c.Output) == "" {
		return errors.New("output path is empty")
	}

	if filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		return fmt.Errorf("input and output are the same file: %s", c.Input)
	}

	if c.ResolverCacheSize <= 0 {
		return fmt.Errorf("resolver_cache_size must be positive, got %d", c.ResolverCacheSize)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level returns the configured log level.
func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}

	return level, nil
}

func absPath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(dir, p)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
