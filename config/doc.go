// Package config
// Author: momentics <momentics@gmail.com>
//
// Settings carried on the engine singleton for cross-goroutine discovery
// by the HTTP-call collaborator. Defaults match the original client
// library; every value can be overridden from the environment.

package config
