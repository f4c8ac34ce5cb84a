package store

const Schema = `
CREATE TABLE IF NOT EXISTS vendors (
	stable_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	env TEXT NOT NULL DEFAULT 'devnet',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL,
	is_alive INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_vendors_is_alive ON vendors(is_alive);

CREATE TABLE IF NOT EXISTS drops (
	drop_id TEXT PRIMARY KEY,
	vendor_stable_id TEXT NOT NULL,
	artist_stable_id TEXT,
	artist_name TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	cover_object_key TEXT,
	audio_object_key TEXT NOT NULL,
	audio_mime TEXT NOT NULL,
	audio_size_bytes INTEGER NOT NULL,
	audio_sha256 TEXT NOT NULL,
	start_at INTEGER NOT NULL,
	end_at INTEGER NOT NULL,
	max_claims INTEGER NOT NULL,
	claimed_count INTEGER NOT NULL DEFAULT 0,
	status INTEGER NOT NULL DEFAULT 0,
	env TEXT NOT NULL DEFAULT 'devnet',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL,
	ended_at INTEGER,
	purged_at INTEGER,
	FOREIGN KEY (vendor_stable_id) REFERENCES vendors(stable_id),
	CHECK (claimed_count <= max_claims)
);

CREATE INDEX IF NOT EXISTS idx_drops_vendor ON drops(vendor_stable_id);
CREATE INDEX IF NOT EXISTS idx_drops_status_end_at ON drops(status, end_at);
CREATE INDEX IF NOT EXISTS idx_drops_status_ended_at ON drops(status, ended_at);

CREATE TABLE IF NOT EXISTS drop_claims (
	claim_id TEXT PRIMARY KEY,
	drop_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	device_id_hash TEXT,
	claimed_at INTEGER NOT NULL,
	UNIQUE (drop_id, user_id),
	FOREIGN KEY (drop_id) REFERENCES drops(drop_id)
);

CREATE INDEX IF NOT EXISTS idx_drop_claims_drop ON drop_claims(drop_id);
`
