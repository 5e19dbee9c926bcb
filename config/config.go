// Package config loads and validates the settings of the server and client commands.
//
// Values come from command line flags, which fall back to ODDEVEN_* environment
// variables. A .env file in the working directory, if present, is loaded into the
// environment first.
package config

import (
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Defaults
const (
	DefaultAddress = "127.0.0.1:34254"
	// DefaultLogLevel is used by the --log-level flag. Level names are
	// matched without case and unknown ones mean info.
	DefaultLogLevel = "info"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate returns the shared validator.
func Validate() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// LoadEnv reads the given env files, or .env when none are named.
// Missing files are not an error; variables already set win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrapf(err, "load %s failed", f)
		}
	}
	return nil
}

// Server configures the server command.
type Server struct {
	Addr                 string   `validate:"required,hostname_port"`
	SpectatorEndpoint    string   `validate:"omitempty,url"`
	SpectatorConnections []string `validate:"dive,required"`
	AWSRegion            string   `validate:"required_with=SpectatorEndpoint"`
}

// Spectating reports whether rounds should be published.
func (s Server) Spectating() bool {
	return s.SpectatorEndpoint != "" && len(s.SpectatorConnections) > 0
}

// Check validates the server settings.
func (s Server) Check() error {
	if err := Validate().Struct(s); err != nil {
		return errors.Wrap(err, "validate server config failed")
	}
	return nil
}

// Client configures the client command.
type Client struct {
	Server string `validate:"required,hostname_port"`
}

// Check validates the client settings.
func (c Client) Check() error {
	if err := Validate().Struct(c); err != nil {
		return errors.Wrap(err, "validate client config failed")
	}
	return nil
}
