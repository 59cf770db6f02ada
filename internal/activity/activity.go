// Package activity keeps a local sqlite journal of the mutations the
// console issued. It is an audit trail only; nothing reads it back into
// resource state.
package activity

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/apiconsole/internal/config"
	"github.com/studiowebux/apiconsole/internal/logging"
	"github.com/studiowebux/apiconsole/internal/migrations"
	"github.com/studiowebux/apiconsole/internal/types"
)

// timestampLayout is how timestamps are stored: UTC, fixed width so text order is time order
const timestampLayout = "2006-01-02 15:04:05.000"

// DefaultLimit bounds Load when no limit is given
const DefaultLimit = 50

type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create activity directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open activity database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to activity database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Save appends e, filling in a missing id and timestamp
func (m *Manager) Save(e types.ActivityEntry) (types.ActivityEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	e.Timestamp = e.Timestamp.UTC()

	query := `
		INSERT INTO activity (
			id, timestamp, server, username, operation, target_id, target_name, outcome, message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := m.db.Exec(query,
		e.ID,
		e.Timestamp.Format(timestampLayout),
		e.Server,
		e.Username,
		string(e.Operation),
		e.TargetID,
		e.TargetName,
		string(e.Outcome),
		e.Message,
	)
	if err != nil {
		return e, fmt.Errorf("failed to save activity entry: %w", err)
	}
	return e, nil
}

// Load returns the newest entries first. A limit <= 0 uses DefaultLimit.
func (m *Manager) Load(limit int) ([]types.ActivityEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := `
		SELECT id, timestamp, server, COALESCE(username, ''), operation,
		       COALESCE(target_id, ''), COALESCE(target_name, ''), outcome, COALESCE(message, '')
		FROM activity
		ORDER BY timestamp DESC, seq DESC
		LIMIT ?
	`
	rows, err := m.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	defer rows.Close()

	entries := []types.ActivityEntry{}
	for rows.Next() {
		var (
			e         types.ActivityEntry
			timestamp string
			operation string
			outcome   string
		)
		if err := rows.Scan(&e.ID, &timestamp, &e.Server, &e.Username, &operation,
			&e.TargetID, &e.TargetName, &outcome, &e.Message); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}

		t, err := time.ParseInLocation(timestampLayout, timestamp, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp %q: %w", timestamp, err)
		}
		e.Timestamp = t
		e.Operation = types.Operation(operation)
		e.Outcome = types.Outcome(outcome)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity: %w", err)
	}
	return entries, nil
}

// Count returns the number of journaled entries
func (m *Manager) Count() (int, error) {
	var n int
	if err := m.db.QueryRow("SELECT COUNT(*) FROM activity").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count activity: %w", err)
	}
	return n, nil
}

// Clear removes every entry
func (m *Manager) Clear() error {
	if _, err := m.db.Exec("DELETE FROM activity"); err != nil {
		return fmt.Errorf("failed to clear activity: %w", err)
	}
	return nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}

// Journal records console mutations against one backend, stamping each
// entry with the server and the signed-in user
type Journal struct {
	store  *Manager
	server string
	user   func() string
	logger *slog.Logger
}

// NewJournal creates a journal; user may be nil
func NewJournal(store *Manager, server string, user func() string, logger *slog.Logger) *Journal {
	return &Journal{store: store, server: server, user: user, logger: logging.OrNop(logger)}
}

// Record appends e
func (j *Journal) Record(e types.ActivityEntry) error {
	e.Server = j.server
	if j.user != nil && e.Username == "" {
		e.Username = j.user()
	}
	saved, err := j.store.Save(e)
	if err != nil {
		return err
	}
	j.logger.Debug("activity recorded", "id", saved.ID, "operation", saved.Operation, "outcome", saved.Outcome)
	return nil
}
