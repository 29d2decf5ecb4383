package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- One row per (file, word, derivative) with its occurrence count
CREATE TABLE IF NOT EXISTS derivatives (
    file TEXT NOT NULL,
    word TEXT NOT NULL,
    derivative TEXT NOT NULL,
    count INTEGER NOT NULL CHECK (count >= 1),
    PRIMARY KEY (file, word, derivative)
);

CREATE INDEX IF NOT EXISTS idx_derivatives_word ON derivatives(file, word);

-- Files seen during aggregation, including ones with no counted rows
CREATE TABLE IF NOT EXISTS files (
    file TEXT PRIMARY KEY
);

-- Sampling runs: one row per generated pseudodata file
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    file TEXT NOT NULL,
    output_path TEXT NOT NULL,
    policy TEXT NOT NULL,
    seed TEXT NOT NULL,
    rows INTEGER NOT NULL DEFAULT 0,
    emitted INTEGER NOT NULL DEFAULT 0,
    skipped INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_file ON runs(file);
`
