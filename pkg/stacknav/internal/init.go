// Package internal contains the shared infrastructure for stacknav: logging
// setup and the message bundle used for host-facing strings.
// Types and functions in this package are not part of the public API.
package internal
