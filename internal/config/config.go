// Package config loads the server configuration.
package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"code.cloudfoundry.org/lager"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 5555
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 10
)

type Config struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// TemplatesDir and StaticDir replace the embedded assets when set.
	TemplatesDir string `yaml:"templates_dir"`
	StaticDir    string `yaml:"static_dir"`
	// Debug re-parses templates on every request.
	Debug    bool   `yaml:"debug"`
	LogLevel string `yaml:"log_level"`
	// ShutdownTimeout is in seconds.
	ShutdownTimeout int `yaml:"shutdown_timeout"`
}

func Default() Config {
	return Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		LogLevel:        DefaultLogLevel,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Load reads the YAML file at path over the defaults. An empty path yields
// the defaults.
func Load(path string) (Config, error) {
	conf := Default()
	if path == "" {
		return conf, nil
	}

	fileBytes, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config file")
	}
	if err := yaml.UnmarshalStrict(fileBytes, &conf); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal yaml")
	}
	return conf, conf.Validate()
}

func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.Errorf("invalid port %d", c.Port)
	}
	if _, err := c.LagerLevel(); err != nil {
		return err
	}
	if c.ShutdownTimeout < 0 {
		return errors.Errorf("invalid shutdown timeout %d", c.ShutdownTimeout)
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) ShutdownGrace() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// LagerLevel maps LogLevel to a lager level. Debug mode always logs at debug
// level, whether it was set in the file or on the command line.
func (c Config) LagerLevel() (lager.LogLevel, error) {
	level, err := c.logLevel()
	if err == nil && c.Debug {
		level = lager.DEBUG
	}
	return level, err
}

func (c Config) logLevel() (lager.LogLevel, error) {
	switch c.LogLevel {
	case "debug":
		return lager.DEBUG, nil
	case "info", "":
		return lager.INFO, nil
	case "error":
		return lager.ERROR, nil
	case "fatal":
		return lager.FATAL, nil
	}
	return lager.INFO, errors.Errorf("unknown log level %q", c.LogLevel)
}
