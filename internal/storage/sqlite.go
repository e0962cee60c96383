// Package storage provides SQLite-based persistence for stage results and
// pack progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Result is one recorded clear of a stage.
type Result struct {
	ID        int64
	Profile   string
	Pack      string
	StageID   string
	Moves     int
	Undos     int
	Resets    int
	Ticks     int
	CreatedAt time.Time
}

// Better reports whether r ranks above o: fewer moves, then fewer undos,
// then fewer ticks.
func (r Result) Better(o Result) bool {
	if r.Moves != o.Moves {
		return r.Moves < o.Moves
	}
	if r.Undos != o.Undos {
		return r.Undos < o.Undos
	}
	return r.Ticks < o.Ticks
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS stage_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile TEXT NOT NULL,
			pack TEXT NOT NULL,
			stage_id TEXT NOT NULL,
			moves INTEGER NOT NULL,
			undos INTEGER NOT NULL DEFAULT 0,
			resets INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_stage ON stage_results(pack, stage_id);
		CREATE INDEX IF NOT EXISTS idx_results_rank ON stage_results(pack, stage_id, moves, undos, ticks);

		CREATE TABLE IF NOT EXISTS progress (
			profile TEXT NOT NULL,
			pack TEXT NOT NULL,
			unlocked INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (profile, pack)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a stage clear.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO stage_results (profile, pack, stage_id, moves, undos, resets, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Profile, r.Pack, r.StageID, r.Moves, r.Undos, r.Resets, r.Ticks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const resultColumns = `id, profile, pack, stage_id, moves, undos, resets, ticks, created_at`

// TopResults retrieves the best N clears of a stage.
// Results are ordered by moves, then undos, then ticks, ascending.
func (s *Store) TopResults(pack, stageID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM stage_results
		 WHERE pack = ? AND stage_id = ?
		 ORDER BY moves ASC, undos ASC, ticks ASC, id ASC
		 LIMIT ?`,
		pack, stageID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// Best returns the best clear of a stage. The boolean is false when the
// stage has never been cleared.
func (s *Store) Best(pack, stageID string) (Result, bool, error) {
	top, err := s.TopResults(pack, stageID, 1)
	if err != nil {
		return Result{}, false, err
	}
	if len(top) == 0 {
		return Result{}, false, nil
	}
	return top[0], true, nil
}

// BestPerStage returns the best clear of every cleared stage of a pack,
// keyed by stage id. A non-empty profile restricts the results to that
// profile's clears; an empty one ranks every profile together.
func (s *Store) BestPerStage(pack, profile string) (map[string]Result, error) {
	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM stage_results
		 WHERE pack = ? AND (? = '' OR profile = ?)
		 ORDER BY id ASC`,
		pack, profile, profile,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	all, err := scanResults(rows)
	if err != nil {
		return nil, err
	}

	best := make(map[string]Result)
	for _, r := range all {
		if cur, ok := best[r.StageID]; !ok || r.Better(cur) {
			best[r.StageID] = r
		}
	}
	return best, nil
}

// ClearResults deletes all results of a pack.
func (s *Store) ClearResults(pack string) error {
	_, err := s.db.Exec("DELETE FROM stage_results WHERE pack = ?", pack)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// SaveProgress records the highest unlocked stage index of a pack for a
// profile. Progress never goes backwards.
func (s *Store) SaveProgress(profile, pack string, unlocked int) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (profile, pack, unlocked, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile, pack) DO UPDATE SET
			unlocked = MAX(unlocked, excluded.unlocked),
			updated_at = CURRENT_TIMESTAMP`,
		profile, pack, unlocked,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// LoadProgress returns the highest unlocked stage index of a pack.
// Returns 0 if the profile never played the pack.
func (s *Store) LoadProgress(profile, pack string) (int, error) {
	var unlocked int
	err := s.db.QueryRow(
		"SELECT unlocked FROM progress WHERE profile = ? AND pack = ?",
		profile, pack,
	).Scan(&unlocked)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return unlocked, nil
}

// PackStats contains aggregated statistics for a pack.
type PackStats struct {
	Pack          string
	Clears        int
	StagesCleared int
	TotalMoves    int64
	LastPlayed    time.Time
}

// GetPackStats retrieves aggregated statistics for a pack.
func (s *Store) GetPackStats(pack string) (*PackStats, error) {
	stats := &PackStats{Pack: pack}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT stage_id), COALESCE(SUM(moves), 0), MAX(created_at)
		 FROM stage_results WHERE pack = ?`,
		pack,
	).Scan(&stats.Clears, &stats.StagesCleared, &stats.TotalMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Profile, &r.Pack, &r.StageID,
			&r.Moves, &r.Undos, &r.Resets, &r.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
