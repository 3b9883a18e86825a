package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store persists champion snapshots to a local SQLite database so the
// companion can resolve champions across restarts while the feed is down.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the snapshot database at the given path.
// An empty path places it under the user config directory.
func OpenStore(path string) (*Store, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			configDir = "."
		}
		dir := filepath.Join(configDir, "skinbridge")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
		path = filepath.Join(dir, "catalog.db")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS champions (
			key     INTEGER PRIMARY KEY,
			id      TEXT NOT NULL,
			name    TEXT NOT NULL,
			version TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Save replaces the stored snapshot with the given champion set
func (s *Store) Save(version string, champions map[int]Champion) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM champions"); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO champions (key, id, name, version) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, champ := range champions {
		if _, err := stmt.Exec(champ.Key, champ.ID, champ.Name, version); err != nil {
			return fmt.Errorf("failed to insert champion %d: %w", champ.Key, err)
		}
	}

	return tx.Commit()
}

// LoadLatest reads the stored snapshot
func (s *Store) LoadLatest() (map[int]Champion, string, error) {
	rows, err := s.db.Query("SELECT key, id, name, version FROM champions")
	if err != nil {
		return nil, "", fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	champions := make(map[int]Champion)
	var version string
	for rows.Next() {
		var champ Champion
		if err := rows.Scan(&champ.Key, &champ.ID, &champ.Name, &version); err != nil {
			return nil, "", fmt.Errorf("failed to scan champion: %w", err)
		}
		champions[champ.Key] = champ
	}
	return champions, version, rows.Err()
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}
