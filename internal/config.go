package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// DefaultAboutText is shown on the about screen when no text is configured.
const DefaultAboutText = "Notepad\n\nA small notebook kept in a local SQLite file."

// Config is the notepad configuration, read from YAML by pkg/config.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	SQLite SQLiteConfig      `yaml:"sqlite"`
	Auth   AuthConfig        `yaml:"auth"`
	About  AboutConfig       `yaml:"about"`
}

// Validate checks every section. Sections with defaults fill them in first.
func (c *Config) Validate() error {
	c.About.applyDefaults()
	if err := validation.ValidateStruct(c,
		validation.Field(&c.App),
		validation.Field(&c.SQLite),
	); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds process-wide settings.
type ApplicationConfig struct {
	LogLevel slog.Level   `yaml:"log_level"`
	HTTP     HTTPConfig   `yaml:"http"`
	Events   EventsConfig `yaml:"events"`
}

func (c ApplicationConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.HTTP),
		validation.Field(&c.Events),
	)
}

// HTTPConfig configures `notepad serve`.
type HTTPConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Address returns the listen address, e.g. ":8080" or "127.0.0.1:8080".
func (c HTTPConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c HTTPConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.ShutdownTimeout, validation.Min(time.Duration(0))),
	)
}

// EventsConfig tunes the live event stream and the database file watcher.
type EventsConfig struct {
	RefreshThrottle time.Duration `yaml:"refresh_throttle"`
	Heartbeat       time.Duration `yaml:"heartbeat"`
	WatchDebounce   time.Duration `yaml:"watch_debounce"`
}

func (c EventsConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.RefreshThrottle, validation.Min(time.Duration(0))),
		validation.Field(&c.Heartbeat, validation.Min(time.Duration(0))),
		validation.Field(&c.WatchDebounce, validation.Min(time.Duration(0))),
	)
}

// SQLiteConfig points at the notes database file.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

func (c SQLiteConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AboutConfig holds the about screen text.
type AboutConfig struct {
	Text string `yaml:"text"`
}

func (c *AboutConfig) applyDefaults() {
	if c.Text == "" {
		c.Text = DefaultAboutText
	}
}

// AuthConfig guards the HTTP API.
//
// Mode "disabled" (the default) serves everyone, which is fine on
// localhost. Mode "token" requires "Authorization: Bearer <token>".
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

func (c *AuthConfig) applyDefaults() {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
}

var errEmptyToken = errors.New("token is empty")

// Validate requires a known mode and a token when the mode is "token".
func (c *AuthConfig) Validate() error {
	c.applyDefaults()
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.AuthEnabled() && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but %w", AuthModeToken, errEmptyToken)
	}
	return nil
}

// AuthEnabled reports whether requests need a bearer token.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns the configuration used when no file is given.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port:            8080,
				ShutdownTimeout: 10 * time.Second,
			},
			Events: EventsConfig{
				RefreshThrottle: 2 * time.Second,
				Heartbeat:       30 * time.Second,
				WatchDebounce:   200 * time.Millisecond,
			},
		},
		SQLite: SQLiteConfig{Path: "./notepad.db"},
		Auth:   AuthConfig{Mode: AuthModeDisabled},
		About:  AboutConfig{Text: DefaultAboutText},
	}
}
