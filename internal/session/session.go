// Package session persists durable player settings across runs. It is the
// external persistence collaborator of the playback core: settings are read
// at startup and replayed as commands, so restored values flow through the
// validated dispatch path like any other input.
package session

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/reel/internal/db"
)

const (
	appName      = "reel"
	dbFileName   = "reel.db"
	saveDebounce = 500 * time.Millisecond
)

// Settings are the durable player preferences restored across runs.
type Settings struct {
	Volume           float64
	Muted            bool
	Speed            float64
	SubtitleLanguage string
	AudioTrack       string
	Looping          bool
	Brightness       float64
	Contrast         float64
	Filters          []string // active filter handles, in chain order
	Vectors          []string // active vector builder handles, in overlay order
}

// DefaultSettings mirrors the dispatcher's initial state.
func DefaultSettings() Settings {
	return Settings{
		Volume:   1.0,
		Speed:    1.0,
		Looping:  true,
		Contrast: 1.0,
	}
}

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Settings
}

// Open opens the session store at the default xdg data location.
func Open() (*Manager, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the session store at an explicit path.
func OpenPath(dbPath string) (*Manager, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &Manager{db: sqlDB}, nil
}

// Close flushes any pending save and closes the store.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending != nil {
		_ = save(m.db, *pending)
	}

	return m.db.Close()
}

// Get returns the saved settings, or defaults when nothing was saved yet.
func (m *Manager) Get() (Settings, error) {
	s := DefaultSettings()

	row := m.db.QueryRow(`
		SELECT volume, muted, speed, subtitle_language, audio_track,
		       looping, brightness, contrast
		FROM player_settings WHERE id = 1
	`)
	err := row.Scan(&s.Volume, &s.Muted, &s.Speed, &s.SubtitleLanguage,
		&s.AudioTrack, &s.Looping, &s.Brightness, &s.Contrast)
	if err == sql.ErrNoRows {
		return s, nil
	}
	if err != nil {
		return Settings{}, err
	}

	if s.Filters, err = queryHandles(m.db, `player_filters`); err != nil {
		return Settings{}, err
	}
	if s.Vectors, err = queryHandles(m.db, `player_vectors`); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func queryHandles(sqlDB *sql.DB, table string) ([]string, error) {
	rows, err := sqlDB.Query(`SELECT handle FROM ` + table + ` ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var handles []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, rows.Err()
}

// Save schedules a debounced write of the settings. Rapid changes collapse
// into one write; Close flushes whatever is still pending.
func (m *Manager) Save(s Settings) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &s

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = save(m.db, *pending)
		}
	})
}

// SaveNow writes the settings immediately, bypassing the debounce.
func (m *Manager) SaveNow(s Settings) error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.pending = nil
	m.saveMu.Unlock()

	return save(m.db, s)
}

func save(sqlDB *sql.DB, s Settings) error {
	return db.WithTx(sqlDB, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO player_settings
				(id, volume, muted, speed, subtitle_language, audio_track,
				 looping, brightness, contrast)
			VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				volume = excluded.volume,
				muted = excluded.muted,
				speed = excluded.speed,
				subtitle_language = excluded.subtitle_language,
				audio_track = excluded.audio_track,
				looping = excluded.looping,
				brightness = excluded.brightness,
				contrast = excluded.contrast
		`, s.Volume, s.Muted, s.Speed, s.SubtitleLanguage, s.AudioTrack,
			s.Looping, s.Brightness, s.Contrast)
		if err != nil {
			return err
		}

		if err := replaceHandles(tx, `player_filters`, s.Filters); err != nil {
			return err
		}
		return replaceHandles(tx, `player_vectors`, s.Vectors)
	})
}

func replaceHandles(tx *sql.Tx, table string, handles []string) error {
	if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
		return err
	}
	for i, h := range handles {
		if _, err := tx.Exec(`INSERT INTO `+table+` (position, handle) VALUES (?, ?)`, i, h); err != nil {
			return err
		}
	}
	return nil
}
