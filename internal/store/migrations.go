package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS goals (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	deadline_days INTEGER NOT NULL DEFAULT 0,
	created_at    TEXT NOT NULL,
	completed     INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	failed        INTEGER NOT NULL DEFAULT 0 CHECK(failed IN (0, 1)),
	position      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS daily_tasks (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	days_of_week    TEXT NOT NULL DEFAULT '[]',
	completed_dates TEXT NOT NULL DEFAULT '[]',
	position        INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_goals_position ON goals(position);
CREATE INDEX IF NOT EXISTS idx_daily_tasks_position ON daily_tasks(position);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
