// Package config loads solver settings from an optional simplex.yaml in the
// working directory and SIMPLEX_* environment variables.
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"q.log/tableau/simplex"
)

const (
	DefaultInput = "./KI.txt"

	keyInput         = "input"
	keyForm          = "form"
	keyMaxIterations = "max_iterations"
	keyPause         = "pause"
	keyVerify        = "verify"
	keyVerbosity     = "verbosity"
)

type Config struct {
	// Input is read when no file is given on the command line.
	Input string
	Form  simplex.Form
	// MaxIterations caps the pivots; zero uses one per tableau column.
	MaxIterations int
	// Pause waits for Enter before the program exits.
	Pause bool
	// Verify cross-checks the optimum with the reference solver.
	Verify bool
	// Verbosity is the klog -v level.
	Verbosity int
}

// New returns a viper instance with defaults and environment binding set up.
// The config file is searched in paths, or the working directory if none
// are given.
func New(paths ...string) *viper.Viper {
	v := viper.New()
	v.SetDefault(keyInput, DefaultInput)
	v.SetDefault(keyForm, simplex.Auto.String())
	v.SetDefault(keyMaxIterations, 0)
	v.SetDefault(keyPause, true)
	v.SetDefault(keyVerify, false)
	v.SetDefault(keyVerbosity, 0)

	v.SetConfigName("simplex")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix("simplex")
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file and decodes v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config")
		}
	}

	form, err := simplex.ParseForm(v.GetString(keyForm))
	if err != nil {
		return nil, err
	}
	c := &Config{
		Input:         v.GetString(keyInput),
		Form:          form,
		MaxIterations: v.GetInt(keyMaxIterations),
		Pause:         v.GetBool(keyPause),
		Verify:        v.GetBool(keyVerify),
		Verbosity:     v.GetInt(keyVerbosity),
	}
	if c.MaxIterations < 0 {
		return nil, errors.Errorf("max_iterations must not be negative, got %d", c.MaxIterations)
	}
	if c.Input == "" {
		c.Input = DefaultInput
	}
	return c, nil
}
