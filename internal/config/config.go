package config

import (
	"bytes"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/chatbot-dev/chatbot/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "chatbot.toml"

	// DefaultOutputName is the base name of the client bundle.
	DefaultOutputName = "chatbot"

	// DefaultSiteAddr is the default bind address.
	DefaultSiteAddr = "127.0.0.1:3000"

	// DefaultSiteRoot is the default directory holding built site files.
	DefaultSiteRoot = "target/site"

	// DefaultSitePkgDir is the default bundle directory below the site root.
	DefaultSitePkgDir = "pkg"

	// DefaultReloadPort is the default live reload port used in development.
	DefaultReloadPort = 3001

	// DefaultShutdownTimeout is how long in-flight requests get on shutdown.
	DefaultShutdownTimeout = "30s"

	// DefaultMetricsPath is where Prometheus metrics are exposed.
	DefaultMetricsPath = "/metrics"
)

// Environment names.
const (
	EnvDev  = "DEV"
	EnvProd = "PROD"
)

// Config represents the complete runtime options record.
type Config struct {
	// OutputName is the base name of the compiled client bundle
	// (<OutputName>.js, <OutputName>.wasm).
	OutputName string `toml:"output-name" json:"outputName,omitempty"`

	// SiteAddr is the host:port the server binds to.
	SiteAddr string `toml:"site-addr" json:"siteAddr,omitempty"`

	// SiteRoot is the directory holding static assets and the favicon.
	// Relative paths are resolved against the configuration file directory.
	SiteRoot string `toml:"site-root" json:"siteRoot,omitempty"`

	// SitePkgDir is the directory below SiteRoot holding the client bundle.
	// It is also the URL prefix the bundle is served under.
	SitePkgDir string `toml:"site-pkg-dir" json:"sitePkgDir,omitempty"`

	// Env is DEV or PROD.
	Env string `toml:"env" json:"env,omitempty"`

	// ReloadPort is the live reload websocket port (DEV only, 0 disables).
	ReloadPort int `toml:"reload-port" json:"reloadPort,omitempty"`

	// ShutdownTimeout is a duration string (e.g. "30s").
	ShutdownTimeout string `toml:"shutdown-timeout" json:"shutdownTimeout,omitempty"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `toml:"metrics" json:"metrics"`

	// Assets configures an optional S3 bucket backing /assets.
	Assets AssetsConfig `toml:"assets" json:"assets"`

	configPath string
	shutdown   time.Duration
}

// MetricsConfig contains Prometheus endpoint settings.
type MetricsConfig struct {
	// Enabled exposes metrics and instruments requests.
	Enabled bool `toml:"enabled" json:"enabled"`

	// Path is the URL path of the metrics endpoint.
	Path string `toml:"path" json:"path,omitempty"`
}

// AssetsConfig contains settings for serving /assets from S3.
type AssetsConfig struct {
	// Bucket is the S3 bucket name. Empty means assets are served from SiteRoot.
	Bucket string `toml:"bucket" json:"bucket,omitempty"`

	// Prefix is prepended to every object key.
	Prefix string `toml:"prefix" json:"prefix,omitempty"`

	// Region overrides the AWS region from the environment.
	Region string `toml:"region" json:"region,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		OutputName:      DefaultOutputName,
		SiteAddr:        DefaultSiteAddr,
		SiteRoot:        DefaultSiteRoot,
		SitePkgDir:      DefaultSitePkgDir,
		Env:             EnvDev,
		ReloadPort:      DefaultReloadPort,
		ShutdownTimeout: DefaultShutdownTimeout,
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
	}
}

// Load reads configuration from the specified file path, applies .env and
// CHATBOT_* overrides, fills defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E101").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or pass --config").
				Wrap(err)
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := New()
	if err := decode(path, data, cfg); err != nil {
		return nil, errors.New("E102").
			WithDetail("Failed to parse " + filepath.Base(path)).
			WithSuggestion("Check the file syntax").
			Wrap(err)
	}
	cfg.configPath = path

	if err := LoadDotEnv(filepath.Dir(path)); err != nil {
		return nil, errors.New("E102").
			WithDetail("Failed to parse .env").
			Wrap(err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Unmarshal(data, cfg)
	}
	return toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.OutputName == "" {
		c.OutputName = DefaultOutputName
	}
	if c.SiteAddr == "" {
		c.SiteAddr = DefaultSiteAddr
	}
	if c.SiteRoot == "" {
		c.SiteRoot = DefaultSiteRoot
	}
	if c.SitePkgDir == "" {
		c.SitePkgDir = DefaultSitePkgDir
	}
	c.SitePkgDir = strings.Trim(c.SitePkgDir, "/")
	if c.Env == "" {
		c.Env = EnvDev
	}
	c.Env = normalizeEnv(c.Env)
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		c.Metrics.Path = "/" + c.Metrics.Path
	}
}

func normalizeEnv(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development":
		return EnvDev
	case "prod", "production":
		return EnvProd
	default:
		return env
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	_, port, err := net.SplitHostPort(c.SiteAddr)
	if err != nil {
		return errors.New("E103").
			WithDetail("site-addr must be host:port, got " + strconv.Quote(c.SiteAddr)).
			Wrap(err)
	}
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return errors.New("E103").
			WithDetail("site-addr port must be between 0 and 65535")
	}

	if c.Env != EnvDev && c.Env != EnvProd {
		return errors.New("E103").
			WithDetail("env must be DEV or PROD, got " + strconv.Quote(c.Env))
	}

	if c.ReloadPort < 0 || c.ReloadPort > 65535 {
		return errors.New("E103").
			WithDetail("reload-port must be between 0 and 65535")
	}

	if strings.Contains(c.SitePkgDir, "..") {
		return errors.New("E103").
			WithDetail("site-pkg-dir must stay inside site-root")
	}

	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil || d < 0 {
		return errors.New("E103").
			WithDetail("shutdown-timeout must be a duration such as \"30s\"").
			Wrap(err)
	}
	c.shutdown = d

	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// IsDev reports whether the server runs in development mode.
func (c *Config) IsDev() bool {
	return c.Env == EnvDev
}

// SiteRootPath returns the site root, resolved against the config directory.
func (c *Config) SiteRootPath() string {
	if filepath.IsAbs(c.SiteRoot) {
		return c.SiteRoot
	}
	return filepath.Join(c.Dir(), c.SiteRoot)
}

// PkgRoot returns the directory holding the compiled client bundle.
func (c *Config) PkgRoot() string {
	return filepath.Join(c.SiteRootPath(), filepath.FromSlash(c.SitePkgDir))
}

// PkgPrefix returns the URL prefix of the client bundle (e.g. "/pkg").
func (c *Config) PkgPrefix() string {
	return "/" + c.SitePkgDir
}

// FaviconPath returns the filesystem path of the favicon.
func (c *Config) FaviconPath() string {
	return filepath.Join(c.SiteRootPath(), "favicon.ico")
}

// BundleJS returns the bundle loader file name.
func (c *Config) BundleJS() string {
	return c.OutputName + ".js"
}

// BundleWasm returns the WebAssembly module file name.
func (c *Config) BundleWasm() string {
	return c.OutputName + ".wasm"
}

// ReloadAddr returns the live reload listen address, or "" when disabled.
func (c *Config) ReloadAddr() string {
	if !c.IsDev() || c.ReloadPort == 0 {
		return ""
	}
	host, _, err := net.SplitHostPort(c.SiteAddr)
	if err != nil || host == "" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, strconv.Itoa(c.ReloadPort))
}

// Shutdown returns the parsed shutdown timeout.
func (c *Config) Shutdown() time.Duration {
	if c.shutdown == 0 {
		if d, err := time.ParseDuration(c.ShutdownTimeout); err == nil {
			return d
		}
	}
	return c.shutdown
}
