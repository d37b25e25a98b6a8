package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Server configures the SSH game server. Values come from defaults, then an
// optional YAML file, then environment variables.
type Server struct {
	Host           string        `yaml:"host"`
	Port           string        `yaml:"port"`
	HostKeyPath    string        `yaml:"host_key_path"`
	LogLevel       string        `yaml:"log_level"`
	MaxSessions    int           `yaml:"max_sessions"`    // 0 means unlimited
	IdleWarn       time.Duration `yaml:"idle_warn"`       // 0 disables the warning
	IdleDisconnect time.Duration `yaml:"idle_disconnect"` // 0 disables the disconnect
	ShutdownGrace  time.Duration `yaml:"shutdown_grace"`
}

// Environment variables that override file values.
const (
	EnvConfigPath     = "SNAKE_CONFIG"
	EnvHost           = "SSH_HOST"
	EnvPort           = "SSH_PORT"
	EnvHostKey        = "SSH_HOST_KEY"
	EnvLogLevel       = "LOG_LEVEL"
	EnvMaxSessions    = "SNAKE_MAX_SESSIONS"
	EnvIdleWarn       = "SNAKE_IDLE_WARN"
	EnvIdleDisconnect = "SNAKE_IDLE_DISCONNECT"
)

// DefaultServer returns the built-in server configuration.
func DefaultServer() Server {
	return Server{
		Host:           "::",
		Port:           "2222",
		HostKeyPath:    "/app/keys/host_key",
		LogLevel:       "info",
		MaxSessions:    0,
		IdleWarn:       90 * time.Second,
		IdleDisconnect: 120 * time.Second,
		ShutdownGrace:  15 * time.Second,
	}
}

// LoadServer reads the server configuration. An empty path skips the file.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("server config: %w", err)
	}
	return cfg, nil
}

func (c *Server) applyEnv() {
	c.Host = GetEnv(EnvHost, c.Host)
	c.Port = GetEnv(EnvPort, c.Port)
	c.HostKeyPath = GetEnv(EnvHostKey, c.HostKeyPath)
	c.LogLevel = GetEnv(EnvLogLevel, c.LogLevel)
	c.MaxSessions = GetEnvInt(EnvMaxSessions, c.MaxSessions)
	c.IdleWarn = GetEnvDuration(EnvIdleWarn, c.IdleWarn)
	c.IdleDisconnect = GetEnvDuration(EnvIdleDisconnect, c.IdleDisconnect)
}

// Normalize trims strings and fills blanks with defaults.
func (c *Server) Normalize() {
	def := DefaultServer()
	c.Host = strings.TrimSpace(c.Host)
	c.Port = strings.TrimSpace(c.Port)
	c.HostKeyPath = strings.TrimSpace(c.HostKeyPath)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.Host == "" {
		c.Host = def.Host
	}
	if c.Port == "" {
		c.Port = def.Port
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.ShutdownGrace <= 0 {
		c.ShutdownGrace = def.ShutdownGrace
	}
}

// Validate reports the first invalid field.
func (c Server) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("port %q must be a number in [1, 65535]", c.Port)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	if c.MaxSessions < 0 {
		return errors.New("max_sessions must be >= 0")
	}
	if c.IdleWarn < 0 || c.IdleDisconnect < 0 {
		return errors.New("idle timeouts must be >= 0")
	}
	if c.IdleWarn > 0 && c.IdleDisconnect > 0 && c.IdleWarn >= c.IdleDisconnect {
		return fmt.Errorf("idle_warn (%v) must be shorter than idle_disconnect (%v)", c.IdleWarn, c.IdleDisconnect)
	}
	return nil
}

// Level returns the parsed log level. Validate guarantees it parses.
func (c Server) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
