// File: config/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings holds the collaborator-facing knobs the engine carries. The
// engine itself consumes none of them; they live on the singleton so any
// goroutine can discover them after Initialize.
type Settings struct {
	// TimeoutWindow bounds the total HTTP call window including retries.
	TimeoutWindow time.Duration `env:"TASKQ_TIMEOUT_WINDOW" envDefault:"20s"`

	// Timeout bounds a single HTTP request.
	Timeout time.Duration `env:"TASKQ_HTTP_TIMEOUT" envDefault:"30s"`

	// RetryDelay is the base delay between retry attempts.
	RetryDelay time.Duration `env:"TASKQ_RETRY_DELAY" envDefault:"2s"`

	// RetryAllowed enables the collaborator's retry policy.
	RetryAllowed bool `env:"TASKQ_RETRY_ALLOWED" envDefault:"true"`

	// MocksEnabled routes calls through the mock-response store.
	MocksEnabled bool `env:"TASKQ_MOCKS_ENABLED" envDefault:"false"`
}

// Load builds Settings from defaults plus environment overrides.
func Load() (*Settings, error) {
	s := &Settings{}
	if err := env.Parse(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Default returns the built-in settings, ignoring the environment.
func Default() *Settings {
	return &Settings{
		TimeoutWindow: 20 * time.Second,
		Timeout:       30 * time.Second,
		RetryDelay:    2 * time.Second,
		RetryAllowed:  true,
		MocksEnabled:  false,
	}
}
