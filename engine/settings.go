// File: engine/settings.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Collaborator settings carried on the singleton. The engine consumes
// none of these; they live here so any goroutine can discover them
// after Initialize. All accessors are safe for concurrent use.

package engine

import (
	"time"

	"github.com/momentics/hioload-taskq/config"
)

// Settings returns a snapshot of the singleton's settings.
func (e *Engine) Settings() config.Settings {
	e.settingsMu.RLock()
	defer e.settingsMu.RUnlock()
	return e.settings
}

// TimeoutWindow returns the total HTTP call window.
func (e *Engine) TimeoutWindow() time.Duration {
	e.settingsMu.RLock()
	defer e.settingsMu.RUnlock()
	return e.settings.TimeoutWindow
}

// SetTimeoutWindow adjusts the total HTTP call window.
func (e *Engine) SetTimeoutWindow(d time.Duration) {
	e.settingsMu.Lock()
	e.settings.TimeoutWindow = d
	e.settingsMu.Unlock()
}

// Timeout returns the single-request timeout.
func (e *Engine) Timeout() time.Duration {
	e.settingsMu.RLock()
	defer e.settingsMu.RUnlock()
	return e.settings.Timeout
}

// SetTimeout adjusts the single-request timeout.
func (e *Engine) SetTimeout(d time.Duration) {
	e.settingsMu.Lock()
	e.settings.Timeout = d
	e.settingsMu.Unlock()
}

// RetryDelay returns the base delay between retries.
func (e *Engine) RetryDelay() time.Duration {
	e.settingsMu.RLock()
	defer e.settingsMu.RUnlock()
	return e.settings.RetryDelay
}

// SetRetryDelay adjusts the base delay between retries.
func (e *Engine) SetRetryDelay(d time.Duration) {
	e.settingsMu.Lock()
	e.settings.RetryDelay = d
	e.settingsMu.Unlock()
}

// RetryAllowed reports whether the collaborator may retry.
func (e *Engine) RetryAllowed() bool {
	e.settingsMu.RLock()
	defer e.settingsMu.RUnlock()
	return e.settings.RetryAllowed
}

// SetRetryAllowed toggles the collaborator retry policy.
func (e *Engine) SetRetryAllowed(allowed bool) {
	e.settingsMu.Lock()
	e.settings.RetryAllowed = allowed
	e.settingsMu.Unlock()
}

// MocksEnabled reports whether calls route through the mock store.
func (e *Engine) MocksEnabled() bool {
	e.settingsMu.RLock()
	defer e.settingsMu.RUnlock()
	return e.settings.MocksEnabled
}

// SetMocksEnabled toggles mock routing.
func (e *Engine) SetMocksEnabled(enabled bool) {
	e.settingsMu.Lock()
	e.settings.MocksEnabled = enabled
	e.settingsMu.Unlock()
}
