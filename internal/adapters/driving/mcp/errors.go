// Package mcp exposes the RAG pipeline as an MCP (Model Context
// Protocol) server, so AI assistants can ingest and query the local
// document collection.
package mcp

import "errors"

// Errors returned when required ports are missing.
var (
	ErrMissingIngestService = errors.New("mcp: ingest service is required")
	ErrMissingQueryService  = errors.New("mcp: query service is required")
	ErrMissingStatusService = errors.New("mcp: status service is required")
	ErrMissingSourceService = errors.New("mcp: source service is required")
)
