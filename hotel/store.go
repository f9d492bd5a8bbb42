package hotel

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists the signed-in session (bearer token plus serialized user
// profile) between console runs. It is a small key-value table in SQLite;
// saves replace the whole session and clears remove it atomically, so a
// token is never on disk without its user or vice versa.
type Store struct {
	db *sql.DB

	setStmt *sql.Stmt
}

const (
	storeSchemaVersion = 1

	keyToken = "token"
	keyUser  = "user"
)

// NewStore opens (or creates) the session database at path.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyStoreMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	store := &Store{db: db}
	if store.setStmt, err = db.Prepare(
		`INSERT INTO session(key,value) VALUES(?,?)
         ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
	); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the prepared statement and closes the DB.
func (s *Store) Close() error {
	if s.setStmt != nil {
		s.setStmt.Close()
	}
	return s.db.Close()
}

func applyStoreMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= storeSchemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`CREATE TABLE IF NOT EXISTS session (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL
    );`); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, storeSchemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// SaveSession writes the user profile and token in one transaction,
// replacing whatever was stored before.
func (s *Store) SaveSession(user User, token string) error {
	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	set := tx.Stmt(s.setStmt)
	if _, err := set.Exec(keyToken, token); err != nil {
		return err
	}
	if _, err := set.Exec(keyUser, string(profile)); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadSession returns the persisted user and token, or nil when no session
// is stored.
func (s *Store) LoadSession() (*User, string, error) {
	var token string
	err := s.db.QueryRow(`SELECT value FROM session WHERE key=?`, keyToken).Scan(&token)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	var raw string
	err = s.db.QueryRow(`SELECT value FROM session WHERE key=?`, keyUser).Scan(&raw)
	if err == sql.ErrNoRows {
		// Half a session is no session.
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, "", fmt.Errorf("decode stored profile: %w", err)
	}
	return &user, token, nil
}

// ClearSession removes the persisted session in one statement.
func (s *Store) ClearSession() error {
	_, err := s.db.Exec(`DELETE FROM session WHERE key IN (?,?)`, keyToken, keyUser)
	return err
}
