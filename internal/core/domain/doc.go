// Package domain contains the core types of the RAG pipeline:
// documents discovered in the data directory, the chunks they are
// split into, per-document ingestion bookkeeping and query results.
package domain
