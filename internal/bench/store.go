package bench

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mitchellh/go-homedir"
)

const schema = `
CREATE TABLE IF NOT EXISTS batches (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	started   INTEGER NOT NULL,
	seed      INTEGER NOT NULL,
	size      INTEGER NOT NULL,
	runs      INTEGER NOT NULL,
	rooms     INTEGER NOT NULL,
	total_ns  INTEGER NOT NULL,
	mean_ns   INTEGER NOT NULL,
	median_ns INTEGER NOT NULL,
	min_ns    INTEGER NOT NULL,
	max_ns    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS batches_size ON batches (size, started);
`

// Store keeps stress test results so runs can be compared over time.
type Store struct {
	db *sqlx.DB
}

// batchRow is one batches row.
type batchRow struct {
	ID       int64 `db:"id"`
	Started  int64 `db:"started"`
	Seed     int64 `db:"seed"`
	Size     int   `db:"size"`
	Runs     int   `db:"runs"`
	Rooms    int   `db:"rooms"`
	TotalNs  int64 `db:"total_ns"`
	MeanNs   int64 `db:"mean_ns"`
	MedianNs int64 `db:"median_ns"`
	MinNs    int64 `db:"min_ns"`
	MaxNs    int64 `db:"max_ns"`
}

// Entry is a stored batch.
type Entry struct {
	Started time.Time
	Seed    int64
	Stats
}

// OpenStore opens (creating if needed) the sqlite database at path. The path
// may start with "~".
func OpenStore(path string) (*Store, error) {
	full, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand store path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sqlx.Open("sqlite3", full)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// Save records every batch of r.
func (s *Store) Save(r *Report) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	for _, b := range r.Batches {
		row := batchRow{
			Started:  r.Started.UnixNano(),
			Seed:     r.Seed,
			Size:     b.Size,
			Runs:     b.Runs,
			Rooms:    b.Rooms,
			TotalNs:  int64(b.Total),
			MeanNs:   int64(b.Mean),
			MedianNs: int64(b.Median),
			MinNs:    int64(b.Min),
			MaxNs:    int64(b.Max),
		}
		if _, err := tx.NamedExec(`INSERT INTO batches
			(started, seed, size, runs, rooms, total_ns, mean_ns, median_ns, min_ns, max_ns)
			VALUES (:started, :seed, :size, :runs, :rooms, :total_ns, :mean_ns, :median_ns, :min_ns, :max_ns)`, row); err != nil {
			tx.Rollback()
			return fmt.Errorf("save %dx%d batch: %w", b.Size, b.Size, err)
		}
	}
	return tx.Commit()
}

// History returns up to limit stored batches, newest first. A size of zero
// matches every size.
func (s *Store) History(size, limit int) ([]Entry, error) {
	var rows []batchRow
	err := s.db.Select(&rows, `SELECT * FROM batches
		WHERE ? = 0 OR size = ?
		ORDER BY started DESC, id DESC
		LIMIT ?`, size, size, limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	out := make([]Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, Entry{
			Started: time.Unix(0, row.Started),
			Seed:    row.Seed,
			Stats: Stats{
				Size:   row.Size,
				Runs:   row.Runs,
				Rooms:  row.Rooms,
				Total:  time.Duration(row.TotalNs),
				Mean:   time.Duration(row.MeanNs),
				Median: time.Duration(row.MedianNs),
				Min:    time.Duration(row.MinNs),
				Max:    time.Duration(row.MaxNs),
			},
		})
	}
	return out, nil
}

// DefaultStorePath returns the database location under the XDG data
// directory: $XDG_DATA_HOME/bsp-dungeon/bench.sqlite, defaulting to
// ~/.local/share/bsp-dungeon/bench.sqlite.
func DefaultStorePath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "bsp-dungeon", "bench.sqlite"), nil
}
