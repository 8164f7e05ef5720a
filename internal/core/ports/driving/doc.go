// Package driving provides interfaces for use-case entry points (primary/inbound ports).
// These are implemented by core services and consumed by the MCP, CLI and TUI adapters.
package driving
