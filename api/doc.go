// Package api
// Author: momentics <momentics@gmail.com>
//
// Shared type declarations for the task dispatch core: identifiers,
// callback signatures, task states, lifecycle event kinds, error codes
// and the host-code translation register.
//
// The package carries no behavior beyond pure functions; every component
// of the library depends on it and it depends on nothing.

package api
