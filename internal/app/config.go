package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ctstone/libsignal/internal/chat"
	"github.com/ctstone/libsignal/internal/params"
)

const (
	ClientServiceName = "profilecred"
	IssuerServiceName = "issuer"
	ConfigExtension   = ".toml"
)

// ClientConfig configures the profilecred CLI.
type ClientConfig struct {
	LogLevel string        `toml:"log_level" conf:"default:info"`
	Timeout  time.Duration `toml:"timeout" conf:"default:30s"`
	Retry    RetryConfig   `toml:"retry"`

	// Environments overrides the built-in chat URL and parameters per
	// environment, keyed by environment name.
	Environments map[string]params.Entry `toml:"environments" conf:"-"`
}

// RetryConfig bounds retries of chat requests.
type RetryConfig struct {
	MaxAttempts     uint64        `toml:"max_attempts" conf:"default:4"`
	InitialInterval time.Duration `toml:"initial_interval" conf:"default:250ms"`
	MaxInterval     time.Duration `toml:"max_interval" conf:"default:5s"`
}

// Policy converts the config into a chat.RetryPolicy.
func (r RetryConfig) Policy() chat.RetryPolicy {
	return chat.RetryPolicy{
		MaxAttempts:     r.MaxAttempts,
		InitialInterval: r.InitialInterval,
		MaxInterval:     r.MaxInterval,
	}
}

// IssuerConfig configures the development issuer.
type IssuerConfig struct {
	Server IssuerServerConfig `toml:"server"`
	Issuer IssuerKeyConfig    `toml:"issuer"`
}

// IssuerServerConfig represents configurable properties for the HTTP server.
type IssuerServerConfig struct {
	APIHost         string        `toml:"api_host" conf:"default:127.0.0.1:8080"`
	ReadTimeout     time.Duration `toml:"read_timeout" conf:"default:5s"`
	WriteTimeout    time.Duration `toml:"write_timeout" conf:"default:5s"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" conf:"default:5s"`
	LogLevel        string        `toml:"log_level" conf:"default:info"`
}

// IssuerKeyConfig says which key to issue with and where profiles live.
type IssuerKeyConfig struct {
	Environment  string `toml:"environment" conf:"default:staging"`
	KeyDir       string `toml:"key_dir" conf:"default:issuer-keys"`
	Passphrase   string `toml:"passphrase" conf:"noprint"`
	ProfileStore string `toml:"profile_store" conf:"default:memory"`
	ProfileDir   string `toml:"profile_dir" conf:"default:issuer-data"`
}

// LoadClientConfig applies defaults and PROFILECRED_* environment variables,
// then the TOML file at path if one is given.
func LoadClientConfig(path string) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := load(path, ClientServiceName, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadIssuerConfig applies defaults and ISSUER_* environment variables,
// then the TOML file at path if one is given.
func LoadIssuerConfig(path string) (*IssuerConfig, error) {
	var cfg IssuerConfig
	if err := load(path, IssuerServiceName, &cfg); err != nil {
		return nil, err
	}
	switch cfg.Issuer.ProfileStore {
	case "memory", "file":
	default:
		return nil, errors.Errorf("profile_store must be memory or file, got %q", cfg.Issuer.ProfileStore)
	}
	return &cfg, nil
}

// load never hands conf the process arguments; cobra owns the command line.
func load(path, namespace string, cfg any) error {
	if path != "" && filepath.Ext(path) != ConfigExtension {
		return errors.Errorf("path<%s> did not match the expected TOML format", path)
	}
	if err := conf.Parse(nil, namespace, cfg); err != nil {
		return errors.Wrap(err, "parsing config")
	}
	if path == "" {
		logrus.Debug("no config path provided, using defaults")
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(err, "could not load config: %s", path)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return errors.Wrapf(err, "could not load config: %s", path)
	}
	return nil
}

// ConfigureLogging sets the standard logrus logger's level and formatter.
// An unparsable level falls back to info.
func ConfigureLogging(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.SetLevel(logrus.InfoLevel)
		log.WithError(err).Errorf("could not parse log level %q, using info", level)
		return log
	}
	log.SetLevel(lvl)
	return log
}
