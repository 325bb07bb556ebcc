package vector

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sandevgo/anjali/internal/core"
	"github.com/sandevgo/anjali/pkg/log"
	_ "modernc.org/sqlite"
)

const (
	indexFile  = "index.db"
	collection = "anjali_memories"
)

const schema = `CREATE TABLE IF NOT EXISTS ` + collection + ` (
	id         TEXT PRIMARY KEY,
	document   TEXT NOT NULL,
	embedding  BLOB NOT NULL,
	metadata   TEXT NOT NULL DEFAULT '{}',
	created_at TEXT NOT NULL
)`

// Store is a cosine-similarity index kept in its own SQLite file inside
// the vector directory. Ranking happens in memory.
type Store struct {
	db       *sql.DB
	embedder core.Embedder
}

func NewStore(ctx context.Context, dir string, embedder core.Embedder) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create vector directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, indexFile)+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open vector index: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping vector index: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize vector schema: %w", err)
	}

	return &Store{db: db, embedder: embedder}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Index embeds text and stores it under id, replacing any previous entry.
func (s *Store) Index(ctx context.Context, id, text string, metadata map[string]string) error {
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed document: %w", err)
	}

	meta, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO `+collection+` (id, document, embedding, metadata, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, text, encodeVector(vec), string(meta), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	log.FromCtx(ctx).Debug().Str("id", id).Int("dims", len(vec)).Msg("indexed document")
	return nil
}

// Search returns up to k documents ordered by descending cosine similarity.
func (s *Store) Search(ctx context.Context, query string, k int) ([]core.SemanticHit, error) {
	if k <= 0 {
		return nil, nil
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, document, embedding, metadata FROM `+collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	logger := log.FromCtx(ctx)
	var (
		hits    []core.SemanticHit
		skipped int
	)
	for rows.Next() {
		var (
			hit  core.SemanticHit
			blob []byte
			meta string
		)
		if err := rows.Scan(&hit.ID, &hit.Text, &blob, &meta); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		stored := decodeVector(blob)
		if len(stored) != len(queryVec) {
			skipped++
			continue
		}
		hit.Score = cosineSimilarity(queryVec, stored)
		if meta != "" {
			if err := json.Unmarshal([]byte(meta), &hit.Metadata); err != nil {
				logger.Debug().Err(err).Str("id", hit.ID).Msg("ignoring unreadable document metadata")
			}
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}
	if skipped > 0 {
		logger.Warn().
			Int("skipped", skipped).
			Int("dims", len(queryVec)).
			Msg("documents embedded with a different dimension are not searchable until re-indexed")
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	return hits[:min(k, len(hits))], nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM `+collection+` WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// Reset drops the collection and recreates it empty in one transaction.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+collection); err != nil {
		return fmt.Errorf("failed to drop collection: %w", err)
	}
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to recreate collection: %w", err)
	}
	return tx.Commit()
}

// IDs lists every indexed document id.
func (s *Store) IDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM `+collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list document ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan document id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Stale lists ids whose stored vector length differs from what the current
// embedder produces, e.g. after switching embedding models.
func (s *Store) Stale(ctx context.Context) ([]string, error) {
	vec, err := s.embedder.Embed(ctx, "dimension check")
	if err != nil {
		return nil, fmt.Errorf("failed to measure embedding dimension: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM `+collection+` WHERE length(embedding) != ?`, len(vec)*4)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale documents: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan document id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Count reports the number of indexed documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+collection).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

var _ core.SemanticStore = (*Store)(nil)
