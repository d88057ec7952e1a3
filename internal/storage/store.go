// Package storage persists completed runs outside the simulation core.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bioproc/adsim/internal/sim"
)

// Store keeps run metadata and sampled trajectories in a SQLite file.
type Store struct {
	db *sql.DB
}

// Open creates the database (and its directory) if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id         TEXT PRIMARY KEY,
		kinetics   TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		yb         REAL NOT NULL,
		t0         REAL NOT NULL,
		t1         REAL NOT NULL,
		samples    INTEGER NOT NULL,
		params     TEXT NOT NULL,
		final_s    REAL NOT NULL,
		final_b    REAL NOT NULL,
		final_g    REAL NOT NULL
	);
	CREATE TABLE IF NOT EXISTS points (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		idx    INTEGER NOT NULL,
		t      REAL NOT NULL,
		s      REAL NOT NULL,
		b      REAL NOT NULL,
		g      REAL NOT NULL,
		PRIMARY KEY (run_id, idx)
	);`
	_, err := s.db.Exec(schema)
	return err
}

// RunMeta describes a stored run.
type RunMeta struct {
	ID        string             `json:"id"`
	Kinetics  string             `json:"kinetics"`
	Timestamp time.Time          `json:"timestamp"`
	Yb        float64            `json:"yb"`
	T0        float64            `json:"t0"`
	T1        float64            `json:"t1"`
	Samples   int                `json:"samples"`
	Params    map[string]float64 `json:"params"`
	FinalS    float64            `json:"final_s"`
	FinalB    float64            `json:"final_b"`
	FinalG    float64            `json:"final_g"`
}

// Save persists a completed run and returns its id.
func (s *Store) Save(cfg sim.Config, tr *sim.Trajectory) (string, error) {
	id := fmt.Sprintf("%s_%d", cfg.Kinetics, time.Now().UnixNano())

	params, err := json.Marshal(cfg.Params)
	if err != nil {
		return "", err
	}
	finalS, finalB, finalG := tr.Final()

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, kinetics, created_at, yb, t0, t1, samples, params, final_s, final_b, final_g)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, cfg.Kinetics, time.Now().UTC(), cfg.Yb, cfg.T0, cfg.T1, cfg.Samples,
		string(params), finalS, finalB, finalG,
	)
	if err != nil {
		return "", err
	}

	stmt, err := tx.Prepare(`INSERT INTO points (run_id, idx, t, s, b, g) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i := range tr.T {
		if _, err := stmt.Exec(id, i, tr.T[i], tr.S[i], tr.B[i], tr.G[i]); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// List returns all stored runs, newest first.
func (s *Store) List() ([]RunMeta, error) {
	rows, err := s.db.Query(
		`SELECT id, kinetics, created_at, yb, t0, t1, samples, params, final_s, final_b, final_g
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]RunMeta, 0)
	for rows.Next() {
		meta, err := scanMeta(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *meta)
	}
	return runs, rows.Err()
}

// Load fetches one run's metadata.
func (s *Store) Load(id string) (*RunMeta, error) {
	row := s.db.QueryRow(
		`SELECT id, kinetics, created_at, yb, t0, t1, samples, params, final_s, final_b, final_g
		 FROM runs WHERE id = ?`, id)
	meta, err := scanMeta(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	return meta, err
}

func scanMeta(scan func(...any) error) (*RunMeta, error) {
	var meta RunMeta
	var params string
	if err := scan(&meta.ID, &meta.Kinetics, &meta.Timestamp, &meta.Yb,
		&meta.T0, &meta.T1, &meta.Samples, &params,
		&meta.FinalS, &meta.FinalB, &meta.FinalG); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(params), &meta.Params); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory fetches the sampled series of a run.
func (s *Store) LoadTrajectory(id string) (*sim.Trajectory, error) {
	rows, err := s.db.Query(
		`SELECT t, s, b, g FROM points WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tr := &sim.Trajectory{}
	for rows.Next() {
		var t, sv, b, g float64
		if err := rows.Scan(&t, &sv, &b, &g); err != nil {
			return nil, err
		}
		tr.T = append(tr.T, t)
		tr.S = append(tr.S, sv)
		tr.B = append(tr.B, b)
		tr.G = append(tr.G, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(tr.T) == 0 {
		return nil, fmt.Errorf("run %s not found", id)
	}
	return tr, nil
}

// Delete removes a run and its points.
func (s *Store) Delete(id string) error {
	if _, err := s.db.Exec(`DELETE FROM points WHERE run_id = ?`, id); err != nil {
		return err
	}
	res, err := s.db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}
