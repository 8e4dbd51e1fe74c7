package session

import (
	"database/sql"
)

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS player_settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			volume REAL NOT NULL DEFAULT 1.0,
			muted INTEGER NOT NULL DEFAULT 0,
			speed REAL NOT NULL DEFAULT 1.0,
			subtitle_language TEXT NOT NULL DEFAULT '',
			audio_track TEXT NOT NULL DEFAULT '',
			looping INTEGER NOT NULL DEFAULT 1,
			brightness REAL NOT NULL DEFAULT 0,
			contrast REAL NOT NULL DEFAULT 1.0
		);

		CREATE TABLE IF NOT EXISTS player_filters (
			position INTEGER PRIMARY KEY,
			handle TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS player_vectors (
			position INTEGER PRIMARY KEY,
			handle TEXT NOT NULL
		);
	`)
	return err
}
