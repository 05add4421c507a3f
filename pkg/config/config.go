// Package config provides process-wide configuration for hubkit.
//
// Configuration is stored as a TOML file in the user config directory
// (~/.config/hubkit/config.toml by default, honoring XDG_CONFIG_HOME).
// All values have working defaults so a missing file is not an error.
//
// The configuration is loaded once at startup and passed by reference to
// the components that need it. Values are read-only after loading; the
// only mutation path is `hubkit config set`, which rewrites the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/hubkit-cli/hubkit/pkg/errors"
)

// appName is used for the config directory name.
const appName = "hubkit"

// Config holds all process-wide settings.
type Config struct {
	// APIBaseURL is the root of the REST API. Fragments passed to the
	// request executor are resolved relative to this URL.
	APIBaseURL string `toml:"api_base_url"`

	// DefaultOwner and DefaultRepo are used when a command does not
	// specify a repository explicitly.
	DefaultOwner string `toml:"default_owner"`
	DefaultRepo  string `toml:"default_repo"`

	// WebTimeoutSeconds is the HTTP timeout applied to every request,
	// inline or detached.
	WebTimeoutSeconds int `toml:"web_timeout_seconds"`

	// RetryDelaySeconds is the sleep before retrying a GET that returned
	// 202 (result not ready). Zero disables the automatic retry.
	RetryDelaySeconds int `toml:"retry_delay_seconds"`

	// LogRequestBody includes request bodies in debug logging. Off by
	// default since bodies may contain sensitive text.
	LogRequestBody bool `toml:"log_request_body"`

	// DisableTypeCoercion skips the response normalizer, leaving payloads
	// exactly as decoded from JSON (date strings stay strings).
	DisableTypeCoercion bool `toml:"disable_type_coercion"`

	// NoStatus suppresses the progress animation even on a terminal.
	NoStatus bool `toml:"no_status"`

	// SessionBackend selects the token store: "file" (default) or "redis".
	SessionBackend string `toml:"session_backend"`

	// RedisAddr is the address of the redis session store, when enabled.
	RedisAddr string `toml:"redis_addr"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		APIBaseURL:        "https://api.github.com",
		WebTimeoutSeconds: 30,
		RetryDelaySeconds: 30,
		SessionBackend:    "file",
		RedisAddr:         "localhost:6379",
	}
}

// Timeout returns the web request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.WebTimeoutSeconds) * time.Second
}

// RetryDelay returns the 202-retry delay as a duration.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}

// DefaultPath returns the config file path using the XDG standard
// (~/.config/hubkit/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path, or the default path if path is empty.
// A missing file yields the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config file %s", path)
	}
	return cfg, nil
}

// Save writes the config to path, or the default path if path is empty.
// The parent directory is created if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

// keys lists the settable config keys in display order.
var keys = []string{
	"api_base_url",
	"default_owner",
	"default_repo",
	"web_timeout_seconds",
	"retry_delay_seconds",
	"log_request_body",
	"disable_type_coercion",
	"no_status",
	"session_backend",
	"redis_addr",
}

// Keys returns the names of all settable config keys.
func Keys() []string {
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Value returns the string form of the named setting.
func (c *Config) Value(key string) (string, error) {
	switch key {
	case "api_base_url":
		return c.APIBaseURL, nil
	case "default_owner":
		return c.DefaultOwner, nil
	case "default_repo":
		return c.DefaultRepo, nil
	case "web_timeout_seconds":
		return strconv.Itoa(c.WebTimeoutSeconds), nil
	case "retry_delay_seconds":
		return strconv.Itoa(c.RetryDelaySeconds), nil
	case "log_request_body":
		return strconv.FormatBool(c.LogRequestBody), nil
	case "disable_type_coercion":
		return strconv.FormatBool(c.DisableTypeCoercion), nil
	case "no_status":
		return strconv.FormatBool(c.NoStatus), nil
	case "session_backend":
		return c.SessionBackend, nil
	case "redis_addr":
		return c.RedisAddr, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown config key: %s", key)
}

// SetValue parses value and assigns it to the named setting.
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "api_base_url":
		c.APIBaseURL = value
	case "default_owner":
		c.DefaultOwner = value
	case "default_repo":
		c.DefaultRepo = value
	case "web_timeout_seconds":
		return setInt(&c.WebTimeoutSeconds, key, value)
	case "retry_delay_seconds":
		return setInt(&c.RetryDelaySeconds, key, value)
	case "log_request_body":
		return setBool(&c.LogRequestBody, key, value)
	case "disable_type_coercion":
		return setBool(&c.DisableTypeCoercion, key, value)
	case "no_status":
		return setBool(&c.NoStatus, key, value)
	case "session_backend":
		if value != "file" && value != "redis" {
			return errors.New(errors.ErrCodeInvalidInput, "session_backend must be file or redis, got %q", value)
		}
		c.SessionBackend = value
	case "redis_addr":
		c.RedisAddr = value
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown config key: %s", key)
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s must be a non-negative integer, got %q", key, value)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "%s must be true or false, got %q", key, value)
	}
	*dst = b
	return nil
}

// String renders the config as "key = value" lines for display.
func (c *Config) String() string {
	out := ""
	for _, k := range keys {
		v, _ := c.Value(k)
		out += fmt.Sprintf("%s = %s\n", k, v)
	}
	return out
}
