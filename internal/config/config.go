// Package config provides configuration management for the stimgen agent.
// Configuration is loaded from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// Default values
	DefaultPort     = 8790
	DefaultLogLevel = "info"
	DefaultDataDir  = ".stimgen"

	// Environment variable names
	EnvPort          = "STIMGEN_PORT"
	EnvLogLevel      = "STIMGEN_LOG_LEVEL"
	EnvDataDir       = "STIMGEN_DATA_DIR"
	EnvAssetsDir     = "STIMGEN_ASSETS_DIR"
	EnvRendererURL   = "STIMGEN_RENDERER_URL"
	EnvRendererToken = "STIMGEN_RENDERER_TOKEN"

	// Database filename
	DBFilename = "stimgen.db"

	// Renderer defaults
	DefaultRendererTimeout = 300 // seconds; one scene render round-trip
)

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	DataDir() string
	DBPath() string
	AssetsDir() string
	RendererURL() string
	RendererToken() string
	RendererTimeout() time.Duration
}

// EnvConfig reads configuration from environment variables
type EnvConfig struct {
	port     int
	logLevel string
	dataDir  string

	assetsDir     string
	rendererURL   string
	rendererToken string
}

// New creates a new EnvConfig with defaults and environment variable overrides
func New() (*EnvConfig, error) {
	cfg := &EnvConfig{
		port:     DefaultPort,
		logLevel: DefaultLogLevel,
		dataDir:  defaultDataDir(),
	}

	// Override port from environment
	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid %s: port must be between 1 and 65535", EnvPort)
		}
		cfg.port = port
	}

	// Override log level from environment
	if ll := os.Getenv(EnvLogLevel); ll != "" {
		cfg.logLevel = ll
	}

	// Override data directory from environment
	if dd := os.Getenv(EnvDataDir); dd != "" {
		cfg.dataDir = dd
	}

	if ad := os.Getenv(EnvAssetsDir); ad != "" {
		cfg.assetsDir = ad
	}

	cfg.rendererURL = os.Getenv(EnvRendererURL)
	cfg.rendererToken = os.Getenv(EnvRendererToken)

	return cfg, nil
}

// Port returns the HTTP server port
func (c *EnvConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// DataDir returns the data directory path
func (c *EnvConfig) DataDir() string {
	return c.dataDir
}

// DBPath returns the full path to the SQLite database file
func (c *EnvConfig) DBPath() string {
	return filepath.Join(c.dataDir, DBFilename)
}

// AssetsDir returns the directory holding asset manifests and texture images
func (c *EnvConfig) AssetsDir() string {
	if c.assetsDir != "" {
		return c.assetsDir
	}
	return filepath.Join(c.dataDir, "assets")
}

// RendererURL returns the base URL of the render collaborator, or "" when
// no renderer is configured
func (c *EnvConfig) RendererURL() string {
	return c.rendererURL
}

// RendererToken returns the bearer token for the render collaborator
func (c *EnvConfig) RendererToken() string {
	return c.rendererToken
}

// RendererTimeout returns the per-scene render request timeout
func (c *EnvConfig) RendererTimeout() time.Duration {
	return time.Duration(DefaultRendererTimeout) * time.Second
}

// defaultDataDir returns the default data directory path
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
