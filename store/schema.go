package store

const schema = `
-- Batch runs
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    submitted INTEGER NOT NULL,
    ranked INTEGER NOT NULL
);

-- Per-photo ranked results
CREATE TABLE IF NOT EXISTS results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    rank INTEGER NOT NULL,
    photo_id TEXT NOT NULL,

    blur REAL NOT NULL,
    noise REAL NOT NULL,
    exposure REAL NOT NULL,
    technical REAL NOT NULL,

    harmony REAL NOT NULL,
    composition REAL NOT NULL,
    contrast REAL NOT NULL,
    aesthetic_mean REAL NOT NULL,

    face_count INTEGER NOT NULL,
    expression REAL NOT NULL,

    overall REAL NOT NULL,

    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE,
    UNIQUE(run_id, rank)
);

-- Indexes for performance
CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
CREATE INDEX IF NOT EXISTS idx_results_overall ON results(overall);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
