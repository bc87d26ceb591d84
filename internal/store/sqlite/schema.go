package sqlite

// schema is applied once, when the store file is first created.
// The foreign_keys pragma is part of the batch so it only runs on creation.
const schema = `
PRAGMA foreign_keys = ON;
CREATE TABLE IF NOT EXISTS settings (
    settings_id INTEGER PRIMARY KEY NOT NULL,
    description TEXT NOT NULL,
    created_on DATETIME DEFAULT (datetime('now', 'localtime')),
    updated_on DATETIME DEFAULT (datetime('now', 'localtime')),
    done BOOLEAN NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS project (
    project_id INTEGER PRIMARY KEY NOT NULL
);
`

const insertSetting = `INSERT INTO settings (description) VALUES (?1)`

const countTables = `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('settings', 'project')`

const countSettings = `SELECT COUNT(*) FROM settings`
