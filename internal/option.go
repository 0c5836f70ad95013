package internal

import (
	"io"
	"os"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config      *Config
	version     string
	in          io.Reader
	out         io.Writer
	logOut      io.Writer
	interactive bool
}

func newApplication(opts []Option) *application {
	app := &application{
		version: "dev",
		in:      os.Stdin,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithVersion sets the version reported by the MCP server.
func WithVersion(v string) Option {
	return func(a *application) {
		a.version = v
	}
}

// WithIO sets the terminal input and output streams. interactive enables
// prompts.
func WithIO(in io.Reader, out io.Writer, interactive bool) Option {
	return func(a *application) {
		a.in = in
		a.out = out
		a.interactive = interactive
	}
}

// WithLogOutput overrides where logs are written.
func WithLogOutput(w io.Writer) Option {
	return func(a *application) {
		a.logOut = w
	}
}
