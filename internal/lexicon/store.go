// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/qtype/pkg/types"
)

const dbFile = "lexicon.db"

// Store persists a lexicon in SQLite so that large lexicons are imported
// once and loaded quickly afterwards.
type Store struct {
	db        *sql.DB
	dir       string
	cacheSize int
}

// NewStore opens or creates the lexicon database at dir/lexicon.db and
// creates the schema if it does not exist.
func NewStore(cfg types.LexiconConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating lexicon directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: cfg.Dir, cacheSize: cfg.CacheSize}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS synsets (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			pos TEXT NOT NULL,
			gloss TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS hypernyms (
			synset_id TEXT NOT NULL REFERENCES synsets(id),
			hypernym_id TEXT NOT NULL REFERENCES synsets(id),
			ord INTEGER NOT NULL,
			PRIMARY KEY (synset_id, ord)
		)`,
		`CREATE TABLE IF NOT EXISTS senses (
			word TEXT NOT NULL,
			synset_id TEXT NOT NULL REFERENCES synsets(id),
			rank INTEGER NOT NULL,
			PRIMARY KEY (word, rank)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_senses_synset ON senses(synset_id)`,
		`CREATE TABLE IF NOT EXISTS exceptions (
			pos TEXT NOT NULL,
			inflected TEXT NOT NULL,
			base TEXT NOT NULL,
			ord INTEGER NOT NULL,
			PRIMARY KEY (pos, inflected, ord)
		)`,
		`CREATE TABLE IF NOT EXISTS import_status (
			source TEXT PRIMARY KEY,
			file_mod_time TEXT,
			synsets INTEGER,
			words INTEGER,
			imported_at TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ImportSummary reports the outcome of an Import call.
type ImportSummary struct {
	Source  string
	Skipped bool
	Synsets int
	Words   int
}

// Import replaces the stored lexicon with the YAML seed at path. The seed
// is validated by building a Lexicon from it before anything is written.
// A seed file already imported with the same modification time is skipped.
func (s *Store) Import(ctx context.Context, path string, w io.Writer) (ImportSummary, error) {
	source, err := filepath.Abs(path)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(source)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("reading lexicon seed: %w", err)
	}
	modTime := info.ModTime().UTC().Format(time.RFC3339Nano)
	summary := ImportSummary{Source: source}

	var storedModTime string
	err = s.db.QueryRowContext(ctx,
		`SELECT file_mod_time FROM import_status WHERE source = ?`, source,
	).Scan(&storedModTime)
	if err == nil && storedModTime == modTime {
		fmt.Fprintf(w, "skipped %s (unchanged)\n", source)
		summary.Skipped = true
		return summary, nil
	}

	seed, err := ReadSeed(source)
	if err != nil {
		return summary, err
	}
	if _, err := New(seed, WithCacheSize(1)); err != nil {
		return summary, fmt.Errorf("validating lexicon seed: %w", err)
	}

	if err := s.replace(ctx, seed, source, modTime); err != nil {
		return summary, err
	}

	summary.Synsets = len(seed.Synsets)
	summary.Words = len(seed.Words)
	fmt.Fprintf(w, "imported %s (%d synsets, %d words)\n", source, summary.Synsets, summary.Words)
	return summary, nil
}

func (s *Store) replace(ctx context.Context, seed *Seed, source, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"hypernyms", "senses", "exceptions", "synsets", "import_status"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	synStmt, err := tx.PrepareContext(ctx, `INSERT INTO synsets (id, pos, gloss) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing synset insert: %w", err)
	}
	defer synStmt.Close()
	for _, ss := range seed.Synsets {
		if _, err := synStmt.ExecContext(ctx, ss.ID, ss.POS, ss.Gloss); err != nil {
			return fmt.Errorf("inserting synset %s: %w", ss.ID, err)
		}
	}

	hypStmt, err := tx.PrepareContext(ctx, `INSERT INTO hypernyms (synset_id, hypernym_id, ord) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing hypernym insert: %w", err)
	}
	defer hypStmt.Close()
	for _, ss := range seed.Synsets {
		for i, h := range ss.Hypernyms {
			if _, err := hypStmt.ExecContext(ctx, ss.ID, h, i); err != nil {
				return fmt.Errorf("inserting hypernym %s -> %s: %w", ss.ID, h, err)
			}
		}
	}

	senseStmt, err := tx.PrepareContext(ctx, `INSERT INTO senses (word, synset_id, rank) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing sense insert: %w", err)
	}
	defer senseStmt.Close()
	for _, word := range seed.SortedWords() {
		for rank, id := range seed.Words[word] {
			if _, err := senseStmt.ExecContext(ctx, word, id, rank); err != nil {
				return fmt.Errorf("inserting sense %s/%s: %w", word, id, err)
			}
		}
	}

	excStmt, err := tx.PrepareContext(ctx, `INSERT INTO exceptions (pos, inflected, base, ord) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing exception insert: %w", err)
	}
	defer excStmt.Close()
	for pos, forms := range seed.Exceptions {
		for inflected, bases := range forms {
			for i, base := range bases {
				if _, err := excStmt.ExecContext(ctx, string(pos), inflected, base, i); err != nil {
					return fmt.Errorf("inserting exception %s: %w", inflected, err)
				}
			}
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO import_status (source, file_mod_time, synsets, words, imported_at) VALUES (?, ?, ?, ?, ?)`,
		source, modTime, len(seed.Synsets), len(seed.Words), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("updating import status: %w", err)
	}

	return tx.Commit()
}

// Seed reads the stored lexicon back into a Seed. Synsets keep their
// import order and each word keeps its sense ranks.
func (s *Store) Seed(ctx context.Context) (*Seed, error) {
	seed := &Seed{
		Words:      make(map[string][]string),
		Exceptions: make(map[types.POS]map[string][]string),
	}
	position := make(map[string]int)

	rows, err := s.db.QueryContext(ctx, `SELECT id, pos, gloss FROM synsets ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying synsets: %w", err)
	}
	for rows.Next() {
		var ss SeedSynset
		if err := rows.Scan(&ss.ID, &ss.POS, &ss.Gloss); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning synset: %w", err)
		}
		position[ss.ID] = len(seed.Synsets)
		seed.Synsets = append(seed.Synsets, ss)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT synset_id, hypernym_id FROM hypernyms ORDER BY synset_id, ord`)
	if err != nil {
		return nil, fmt.Errorf("querying hypernyms: %w", err)
	}
	for rows.Next() {
		var id, hyp string
		if err := rows.Scan(&id, &hyp); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning hypernym: %w", err)
		}
		i, ok := position[id]
		if !ok {
			rows.Close()
			return nil, fmt.Errorf("hypernym row for unknown synset %s", id)
		}
		seed.Synsets[i].Hypernyms = append(seed.Synsets[i].Hypernyms, hyp)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT word, synset_id FROM senses ORDER BY word, rank`)
	if err != nil {
		return nil, fmt.Errorf("querying senses: %w", err)
	}
	for rows.Next() {
		var word, id string
		if err := rows.Scan(&word, &id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning sense: %w", err)
		}
		seed.Words[word] = append(seed.Words[word], id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT pos, inflected, base FROM exceptions ORDER BY pos, inflected, ord`)
	if err != nil {
		return nil, fmt.Errorf("querying exceptions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pos, inflected, base string
		if err := rows.Scan(&pos, &inflected, &base); err != nil {
			return nil, fmt.Errorf("scanning exception: %w", err)
		}
		p := types.POS(pos)
		if seed.Exceptions[p] == nil {
			seed.Exceptions[p] = make(map[string][]string)
		}
		seed.Exceptions[p][inflected] = append(seed.Exceptions[p][inflected], base)
	}
	if len(seed.Exceptions) == 0 {
		seed.Exceptions = nil
	}
	return seed, rows.Err()
}

// Load builds an in-memory Lexicon from the stored rows.
func (s *Store) Load(ctx context.Context) (*Lexicon, error) {
	seed, err := s.Seed(ctx)
	if err != nil {
		return nil, err
	}
	if len(seed.Synsets) == 0 {
		return nil, fmt.Errorf("lexicon store %s is empty: run 'qtype lexicon import' first", filepath.Join(s.dir, dbFile))
	}
	return New(seed, WithCacheSize(s.cacheSize))
}

// ExportSeed writes the stored lexicon to path as YAML.
func (s *Store) ExportSeed(ctx context.Context, path string) error {
	seed, err := s.Seed(ctx)
	if err != nil {
		return err
	}
	return WriteSeed(path, seed)
}

// Stats summarises the stored lexicon.
type Stats struct {
	Synsets    int    `json:"synsets" yaml:"synsets"`
	Words      int    `json:"words" yaml:"words"`
	Hypernyms  int    `json:"hypernyms" yaml:"hypernyms"`
	Exceptions int    `json:"exceptions" yaml:"exceptions"`
	Source     string `json:"source,omitempty" yaml:"source,omitempty"`
	ImportedAt string `json:"imported_at,omitempty" yaml:"imported_at,omitempty"`
}

// Stats counts stored rows and reports the last import source.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT count(*) FROM synsets`, &st.Synsets},
		{`SELECT count(DISTINCT word) FROM senses`, &st.Words},
		{`SELECT count(*) FROM hypernyms`, &st.Hypernyms},
		{`SELECT count(*) FROM exceptions`, &st.Exceptions},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return st, fmt.Errorf("counting rows: %w", err)
		}
	}

	err := s.db.QueryRowContext(ctx,
		`SELECT source, imported_at FROM import_status ORDER BY imported_at DESC LIMIT 1`,
	).Scan(&st.Source, &st.ImportedAt)
	if err != nil && err != sql.ErrNoRows {
		return st, fmt.Errorf("reading import status: %w", err)
	}
	return st, nil
}
