package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/chatbot-dev/chatbot/internal/errors"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "CHATBOT_"

// LoadDotEnv loads .env files from the given directories and the current
// directory. Existing environment variables are NOT overwritten and missing
// files are ignored.
func LoadDotEnv(dirs ...string) error {
	seen := make(map[string]bool)
	for _, dir := range append(dirs, ".") {
		path, err := filepath.Abs(filepath.Join(dir, ".env"))
		if err != nil || seen[path] {
			continue
		}
		seen[path] = true

		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return err
		}
		slog.Debug("loaded environment file", "path", path)
	}
	return nil
}

// ApplyEnv overlays CHATBOT_* variables onto the configuration. Empty values
// are treated as unset.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("OUTPUT_NAME"); ok {
		c.OutputName = v
	}
	if v, ok := get("SITE_ADDR"); ok {
		c.SiteAddr = v
	}
	if v, ok := get("SITE_ROOT"); ok {
		c.SiteRoot = v
	}
	if v, ok := get("SITE_PKG_DIR"); ok {
		c.SitePkgDir = v
	}
	if v, ok := get("ENV"); ok {
		c.Env = v
	}
	if v, ok := get("RELOAD_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("E103").
				WithDetail(EnvPrefix + "RELOAD_PORT must be a number, got " + strconv.Quote(v)).
				Wrap(err)
		}
		c.ReloadPort = port
	}
	if v, ok := get("SHUTDOWN_TIMEOUT"); ok {
		c.ShutdownTimeout = v
	}
	if v, ok := get("METRICS_PATH"); ok {
		c.Metrics.Path = v
	}
	if v, ok := get("METRICS_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("E103").
				WithDetail(EnvPrefix + "METRICS_ENABLED must be a boolean").
				Wrap(err)
		}
		c.Metrics.Enabled = enabled
	}
	if v, ok := get("ASSETS_BUCKET"); ok {
		c.Assets.Bucket = v
	}
	if v, ok := get("ASSETS_PREFIX"); ok {
		c.Assets.Prefix = v
	}
	if v, ok := get("ASSETS_REGION"); ok {
		c.Assets.Region = v
	}
	return nil
}
