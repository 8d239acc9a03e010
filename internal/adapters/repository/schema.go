package repository

// Bootstrap schema, applied on open. scores carries no business-level
// uniqueness constraint: dedupe is a write-time policy, and a bucket can
// legitimately hold several rows with increasing scores.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id           BIGSERIAL PRIMARY KEY,
	username     TEXT UNIQUE NOT NULL,
	password     TEXT NOT NULL,
	api_key      TEXT UNIQUE NOT NULL,
	profile_path TEXT,
	profile_id   TEXT
);

CREATE TABLE IF NOT EXISTS scores (
	id          BIGSERIAL PRIMARY KEY,
	song_dir    TEXT NOT NULL,
	difficulty  TEXT NOT NULL,
	steps_type  TEXT NOT NULL,
	grade       TEXT NOT NULL,
	score       BIGINT NOT NULL,
	percent_dp  DOUBLE PRECISION NOT NULL,
	max_combo   BIGINT NOT NULL,
	date_time   TEXT NOT NULL,
	player_guid TEXT NOT NULL,
	player_name TEXT NOT NULL,
	profile_id  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scores_bucket ON scores(song_dir, difficulty, player_guid);
CREATE INDEX IF NOT EXISTS idx_scores_profile ON scores(profile_id);
CREATE INDEX IF NOT EXISTS idx_scores_player_name ON scores(player_name);
`
