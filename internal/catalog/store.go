package catalog

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store persists catalog rows in a SQLite database. Master operation rows
// carry the registry name of their function; LoadMasterOperations links each
// row back to executable code through the registry.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if necessary) a catalog database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS master_operations (
			master_id   BIGINT PRIMARY KEY,
			label       TEXT NOT NULL,
			func_name   TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS operations (
			operation_id BIGINT PRIMARY KEY,
			name         TEXT NOT NULL,
			master_id    BIGINT NOT NULL,
			field        TEXT NOT NULL DEFAULT '',
			FOREIGN KEY(master_id) REFERENCES master_operations(master_id)
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create catalog schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Seed writes a full catalog into the store, replacing existing rows with
// the same IDs. Used to install the built-in catalog into a fresh database.
func (s *Store) Seed(masters []MasterOperation, ops []Operation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, m := range masters {
		if m.FuncName == "" {
			return fmt.Errorf("master %d (%s) has no function name", m.ID, m.Label)
		}
		if _, err := tx.Exec(`
			INSERT OR REPLACE INTO master_operations (master_id, label, func_name)
			VALUES (?, ?, ?)`, m.ID, m.Label, m.FuncName); err != nil {
			return fmt.Errorf("seed master %d: %w", m.ID, err)
		}
	}
	for _, op := range ops {
		if _, err := tx.Exec(`
			INSERT OR REPLACE INTO operations (operation_id, name, master_id, field)
			VALUES (?, ?, ?, ?)`, op.ID, op.Name, op.MasterID, op.Field); err != nil {
			return fmt.Errorf("seed operation %d: %w", op.ID, err)
		}
	}

	return tx.Commit()
}

// LoadMasterOperations reads all master rows and links each to its
// registered function. A row naming an unregistered function is an error:
// the catalog references code this build does not carry.
func (s *Store) LoadMasterOperations() ([]MasterOperation, error) {
	rows, err := s.db.Query(`
		SELECT master_id, label, func_name
		FROM master_operations
		ORDER BY master_id`)
	if err != nil {
		return nil, fmt.Errorf("query master operations: %w", err)
	}
	defer rows.Close()

	var masters []MasterOperation
	for rows.Next() {
		var m MasterOperation
		if err := rows.Scan(&m.ID, &m.Label, &m.FuncName); err != nil {
			return nil, fmt.Errorf("scan master operation: %w", err)
		}
		fn, ok := LookupFunc(m.FuncName)
		if !ok {
			return nil, fmt.Errorf("master %d (%s): no registered function %q", m.ID, m.Label, m.FuncName)
		}
		m.Fn = fn
		masters = append(masters, m)
	}
	return masters, rows.Err()
}

// LoadOperations reads all operation rows in ID order.
func (s *Store) LoadOperations() ([]Operation, error) {
	rows, err := s.db.Query(`
		SELECT operation_id, name, master_id, field
		FROM operations
		ORDER BY operation_id`)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	var ops []Operation
	for rows.Next() {
		var op Operation
		if err := rows.Scan(&op.ID, &op.Name, &op.MasterID, &op.Field); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}
