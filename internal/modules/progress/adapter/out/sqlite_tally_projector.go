package out

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"ecoscan/internal/modules/progress/domain"
	progressout "ecoscan/internal/modules/progress/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteTallyProjector keeps every detection of the process lifetime in an
// in-memory database so tallies outlive the capped log.
type SQLiteTallyProjector struct {
	db *sql.DB
}

var _ progressout.DetectionProjector = (*SQLiteTallyProjector)(nil)

func NewSQLiteTallyProjector() (*SQLiteTallyProjector, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// each connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	projector := &SQLiteTallyProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteTallyProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS detections (
  id TEXT PRIMARY KEY,
  material TEXT NOT NULL,
  confidence REAL NOT NULL,
  co2_saved REAL NOT NULL,
  detected_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS detections_detected_at ON detections(detected_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create detections table: %w", err)
	}
	return nil
}

func (s *SQLiteTallyProjector) Project(ctx context.Context, detection domain.Detection) error {
	const stmt = `
INSERT INTO detections (id, material, confidence, co2_saved, detected_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO NOTHING;
`
	if _, err := s.db.ExecContext(ctx, stmt,
		detection.ID,
		detection.Material,
		detection.Confidence,
		detection.CO2Saved,
		detection.Timestamp.UnixNano(),
	); err != nil {
		return fmt.Errorf("insert detection: %w", err)
	}
	return nil
}

func (s *SQLiteTallyProjector) Tallies(ctx context.Context, since time.Time) ([]progressout.Tally, error) {
	const query = `
SELECT material, COUNT(*), COALESCE(SUM(co2_saved), 0)
FROM detections
WHERE detected_at >= ?
GROUP BY material
ORDER BY material;
`
	rows, err := s.db.QueryContext(ctx, query, unixNanoFloor(since))
	if err != nil {
		return nil, fmt.Errorf("query tallies: %w", err)
	}
	defer rows.Close()

	out := []progressout.Tally{}
	for rows.Next() {
		var t progressout.Tally
		if err := rows.Scan(&t.Material, &t.Count, &t.CO2Saved); err != nil {
			return nil, fmt.Errorf("scan tally: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tallies: %w", err)
	}
	return out, nil
}

// unixNanoFloor maps the zero time to the smallest bound; UnixNano is
// undefined before 1678.
func unixNanoFloor(t time.Time) int64 {
	if t.IsZero() {
		return math.MinInt64
	}
	return t.UnixNano()
}

func (s *SQLiteTallyProjector) Close() error {
	return s.db.Close()
}
