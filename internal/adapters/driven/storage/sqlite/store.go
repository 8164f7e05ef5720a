package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
	"github.com/viant/vec/search"

	"github.com/alejandro-ao/rag-mcp/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driven"
)

// Store is the unified SQLite-backed persistence layer. It holds both
// the vector index (chunk text, metadata and embedding blobs) and the
// ingestion records, exposed through wrapper types per interface.
// All embedding happens here; callers only pass text and identifiers.
type Store struct {
	db       *sql.DB
	path     string
	embedder driven.EmbeddingService
}

// NewStore opens (or creates) the database under dbDir and runs
// pending migrations. WAL mode plus a busy timeout serialise
// concurrent writers; the core relies on that guarantee.
func NewStore(dbDir string, embedder driven.EmbeddingService) (*Store, error) {
	if err := os.MkdirAll(dbDir, 0700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, "rag.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:       db,
		path:     dbPath,
		embedder: embedder,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// VectorStore returns a VectorStore interface backed by this store.
func (s *Store) VectorStore() driven.VectorStore {
	return &vectorStore{store: s}
}

// IngestionRecords returns an IngestionRecordStore backed by this store.
func (s *Store) IngestionRecords() driven.IngestionRecordStore {
	return &recordStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Vector Store ====================

// vectorStore implements driven.VectorStore.
type vectorStore struct {
	store *Store
}

var _ driven.VectorStore = (*vectorStore)(nil)

// Upsert embeds and stores chunks, replacing existing rows by id.
func (v *vectorStore) Upsert(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}

	embeddings, err := v.store.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: %d texts, %d vectors", len(chunks), len(embeddings))
	}

	tx, err := v.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, path, chunk_index, content, start_offset, length, embedding, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			path = excluded.path,
			chunk_index = excluded.chunk_index,
			content = excluded.content,
			start_offset = excluded.start_offset,
			length = excluded.length,
			embedding = excluded.embedding,
			ingested_at = excluded.ingested_at
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, chunk := range chunks {
		blob := float32SliceToBytes(embeddings[i])
		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.Path, chunk.Index,
			chunk.Text, chunk.Start, chunk.Length, blob, now); err != nil {
			return fmt.Errorf("saving chunk %s: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// DeleteByPath removes every chunk of a document.
func (v *vectorStore) DeleteByPath(ctx context.Context, path string) error {
	if _, err := v.store.db.ExecContext(ctx, "DELETE FROM chunks WHERE path = ?", path); err != nil {
		return fmt.Errorf("deleting chunks for %s: %w", path, err)
	}
	return nil
}

// Purge removes all chunks.
func (v *vectorStore) Purge(ctx context.Context) error {
	if _, err := v.store.db.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("purging chunks: %w", err)
	}
	return nil
}

// scoredChunk pairs a candidate row with its similarity.
type scoredChunk struct {
	result domain.QueryResult
	score  float64
}

// Query embeds the query text and brute-force scans stored embeddings
// by cosine similarity. The corpus is a single local data directory,
// so a linear scan is well within budget; an approximate index is not
// worth its complexity here.
func (v *vectorStore) Query(ctx context.Context, text string, opts domain.QueryOptions) ([]domain.QueryResult, error) {
	queryVec, err := v.store.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	queryMag := search.Float32s(queryVec).Magnitude()

	sqlQuery := `SELECT path, chunk_index, content, start_offset, length, embedding, ingested_at FROM chunks`
	var args []any
	if opts.Path != "" {
		sqlQuery += " WHERE path = ?"
		args = append(args, opts.Path)
	}

	rows, err := v.store.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var scored []scoredChunk
	for rows.Next() {
		var (
			path        string
			chunkIndex  int
			content     string
			startOffset int
			length      int
			blob        []byte
			ingestedAt  time.Time
		)
		if err := rows.Scan(&path, &chunkIndex, &content, &startOffset, &length, &blob, &ingestedAt); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}

		embedding := bytesToFloat32Slice(blob)
		if len(embedding) != len(queryVec) {
			continue // Stored under a different embedding model
		}

		candidate := search.Float32s(embedding)
		distance := search.Float32s(queryVec).CosineDistanceWithMagnitudesNeon(embedding, queryMag, candidate.Magnitude())
		similarity := 1 - float64(distance)

		result := domain.QueryResult{
			Text:       content,
			Score:      similarity,
			Path:       path,
			ChunkIndex: chunkIndex,
		}
		if opts.IncludeMetadata {
			result.Metadata = map[string]any{
				"ingested_at":  ingestedAt.Format(time.RFC3339),
				"start_offset": startOffset,
				"length":       length,
			}
		}
		scored = append(scored, scoredChunk{result: result, score: similarity})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	limit := opts.Limit
	if limit > len(scored) {
		limit = len(scored)
	}
	results := make([]domain.QueryResult, 0, limit)
	for _, sc := range scored[:limit] {
		results = append(results, sc.result)
	}
	return results, nil
}

// Count returns the total number of stored chunks.
func (v *vectorStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := v.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// ListSources returns distinct document paths with their chunk counts.
func (v *vectorStore) ListSources(ctx context.Context) (map[string]int, error) {
	rows, err := v.store.db.QueryContext(ctx,
		"SELECT path, COUNT(*) FROM chunks GROUP BY path ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	sources := make(map[string]int)
	for rows.Next() {
		var path string
		var count int
		if err := rows.Scan(&path, &count); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		sources[path] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}
	return sources, nil
}

// Close closes the underlying store.
func (v *vectorStore) Close() error {
	return v.store.Close()
}

// ==================== Ingestion Record Store ====================

// recordStore implements driven.IngestionRecordStore.
type recordStore struct {
	store *Store
}

var _ driven.IngestionRecordStore = (*recordStore)(nil)

// Get retrieves the record for a document path.
func (r *recordStore) Get(ctx context.Context, path string) (*domain.IngestionRecord, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT path, signature, chunk_count, ingested_at
		FROM ingestion_records WHERE path = ?
	`, path)

	var record domain.IngestionRecord
	if err := row.Scan(&record.Path, &record.Signature, &record.ChunkCount, &record.IngestedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning ingestion record: %w", err)
	}
	return &record, nil
}

// Save stores or updates a record.
func (r *recordStore) Save(ctx context.Context, record domain.IngestionRecord) error {
	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO ingestion_records (path, signature, chunk_count, ingested_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			signature = excluded.signature,
			chunk_count = excluded.chunk_count,
			ingested_at = excluded.ingested_at
	`, record.Path, record.Signature, record.ChunkCount, record.IngestedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving ingestion record: %w", err)
	}
	return nil
}

// Delete removes the record for a path.
func (r *recordStore) Delete(ctx context.Context, path string) error {
	if _, err := r.store.db.ExecContext(ctx, "DELETE FROM ingestion_records WHERE path = ?", path); err != nil {
		return fmt.Errorf("deleting ingestion record: %w", err)
	}
	return nil
}

// Purge removes all records.
func (r *recordStore) Purge(ctx context.Context) error {
	if _, err := r.store.db.ExecContext(ctx, "DELETE FROM ingestion_records"); err != nil {
		return fmt.Errorf("purging ingestion records: %w", err)
	}
	return nil
}

// List returns all records.
func (r *recordStore) List(ctx context.Context) ([]domain.IngestionRecord, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT path, signature, chunk_count, ingested_at
		FROM ingestion_records ORDER BY path
	`)
	if err != nil {
		return nil, fmt.Errorf("querying ingestion records: %w", err)
	}
	defer rows.Close()

	var records []domain.IngestionRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var record domain.IngestionRecord
		if err := rows.Scan(&record.Path, &record.Signature, &record.ChunkCount, &record.IngestedAt); err != nil {
			return nil, fmt.Errorf("scanning ingestion record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingestion records: %w", err)
	}
	return records, nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
