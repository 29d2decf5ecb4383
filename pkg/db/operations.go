package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/dtnitsch/spell-pseudodata/models"
	"github.com/dtnitsch/spell-pseudodata/pkg/storage"
)

// Run is one recorded sampling pass over a target file.
type Run struct {
	RunID      int64
	File       string
	OutputPath string
	Policy     string
	Seed       uint64
	Rows       int
	Emitted    int
	Skipped    int
	CreatedAt  time.Time
}

// SaveTable replaces the stored table with table in a single transaction.
func (db *DB) SaveTable(table models.FrequencyTable) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM derivatives"); err != nil {
		return fmt.Errorf("failed to clear derivatives: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM files"); err != nil {
		return fmt.Errorf("failed to clear files: %w", err)
	}

	fileStmt, err := tx.Prepare("INSERT INTO files (file) VALUES (?)")
	if err != nil {
		return fmt.Errorf("failed to prepare file insert: %w", err)
	}
	defer fileStmt.Close()

	stmt, err := tx.Prepare("INSERT INTO derivatives (file, word, derivative, count) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare derivative insert: %w", err)
	}
	defer stmt.Close()

	for file, wt := range table {
		if _, err := fileStmt.Exec(file); err != nil {
			return fmt.Errorf("failed to insert file %s: %w", file, err)
		}
		for word, counts := range wt {
			for derivative, count := range counts {
				if _, err := stmt.Exec(file, word, derivative, count); err != nil {
					return fmt.Errorf("failed to insert %s/%s/%s: %w", file, word, derivative, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit table: %w", err)
	}
	return nil
}

// LoadTable reads the stored table. An empty database yields
// storage.ErrTableNotFound.
func (db *DB) LoadTable() (models.FrequencyTable, error) {
	table := make(models.FrequencyTable)

	files, err := db.Query("SELECT file FROM files")
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	for files.Next() {
		var file string
		if err := files.Scan(&file); err != nil {
			files.Close()
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		table.File(file)
	}
	if err := files.Err(); err != nil {
		files.Close()
		return nil, err
	}
	files.Close()

	rows, err := db.Query("SELECT file, word, derivative, count FROM derivatives")
	if err != nil {
		return nil, fmt.Errorf("failed to query derivatives: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var file, word, derivative string
		var count int
		if err := rows.Scan(&file, &word, &derivative, &count); err != nil {
			return nil, fmt.Errorf("failed to scan derivative: %w", err)
		}
		wt := table.File(file)
		dc, ok := wt[word]
		if !ok {
			dc = make(models.DerivativeCounts)
			wt[word] = dc
		}
		dc[derivative] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(table) == 0 {
		return nil, fmt.Errorf("%s: %w", db.path, storage.ErrTableNotFound)
	}
	return table, nil
}

// RecordRun stores the outcome of one sampling pass and returns its ID.
func (db *DB) RecordRun(r Run) (int64, error) {
	res, err := db.Exec(`INSERT INTO runs (file, output_path, policy, seed, rows, emitted, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.File, r.OutputPath, r.Policy, strconv.FormatUint(r.Seed, 10), r.Rows, r.Emitted, r.Skipped)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}
	return res.LastInsertId()
}

// ListRuns returns the most recent runs first. limit <= 0 returns all.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `SELECT run_id, file, output_path, policy, seed, rows, emitted, skipped, created_at
		FROM runs ORDER BY run_id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var seed string
		if err := rows.Scan(&r.RunID, &r.File, &r.OutputPath, &r.Policy, &seed, &r.Rows, &r.Emitted, &r.Skipped, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Seed, err = strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q for run %d: %w", seed, r.RunID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
