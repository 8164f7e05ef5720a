// Package services contains the core application services: directory
// resolution, ingestion orchestration, query handling and status
// reporting. Services depend only on ports and domain types; adapters
// are wired in at startup.
package services
