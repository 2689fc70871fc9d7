package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kraitsura/mindgrove/pkg/model"
)

// DB persists per-document view state and the recent-documents list.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates the database at the given path.
func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sdb := &DB{db: db}
	if err := sdb.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return sdb, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS view_states (
		document_path TEXT PRIMARY KEY,
		translate_x REAL NOT NULL,
		translate_y REAL NOT NULL,
		scale REAL NOT NULL,
		focused_node_id TEXT DEFAULT '',
		layout_mode TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS recent_documents (
		document_path TEXT PRIMARY KEY,
		title TEXT DEFAULT '',
		opened_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_recent_opened ON recent_documents(opened_at);
	`
	_, err := d.db.Exec(schema)
	return err
}

// SaveViewState upserts the view state for a document path.
func (d *DB) SaveViewState(docPath string, vs model.ViewState) error {
	_, err := d.db.Exec(`
		INSERT INTO view_states
			(document_path, translate_x, translate_y, scale, focused_node_id, layout_mode, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(document_path) DO UPDATE SET
			translate_x = excluded.translate_x,
			translate_y = excluded.translate_y,
			scale = excluded.scale,
			focused_node_id = excluded.focused_node_id,
			layout_mode = excluded.layout_mode,
			updated_at = excluded.updated_at`,
		docPath, vs.TranslateX, vs.TranslateY, vs.Scale, vs.FocusedNodeID, string(vs.LayoutMode), time.Now())
	if err != nil {
		return fmt.Errorf("save view state: %w", err)
	}
	return nil
}

// LoadViewState returns the stored view state for a document path, or
// the default state when none was saved yet.
func (d *DB) LoadViewState(docPath string) (model.ViewState, error) {
	var vs model.ViewState
	var mode string
	err := d.db.QueryRow(`
		SELECT translate_x, translate_y, scale, focused_node_id, layout_mode
		FROM view_states WHERE document_path = ?`, docPath).
		Scan(&vs.TranslateX, &vs.TranslateY, &vs.Scale, &vs.FocusedNodeID, &mode)
	if err == sql.ErrNoRows {
		return model.DefaultViewState(), nil
	}
	if err != nil {
		return model.ViewState{}, fmt.Errorf("load view state: %w", err)
	}
	vs.LayoutMode = model.LayoutMode(mode)
	if !vs.LayoutMode.IsValid() {
		vs.LayoutMode = model.ModeMindmap
	}
	return vs, nil
}

// TouchRecent records that a document was opened now.
func (d *DB) TouchRecent(docPath, title string) error {
	_, err := d.db.Exec(`
		INSERT INTO recent_documents (document_path, title, opened_at)
		VALUES (?, ?, ?)
		ON CONFLICT(document_path) DO UPDATE SET
			title = excluded.title,
			opened_at = excluded.opened_at`,
		docPath, title, time.Now())
	if err != nil {
		return fmt.Errorf("touch recent: %w", err)
	}
	return nil
}

// RecentDocument is one entry of the recent-documents list.
type RecentDocument struct {
	Path     string
	Title    string
	OpenedAt time.Time
}

// Recents returns up to limit recently opened documents, newest first.
func (d *DB) Recents(limit int) ([]RecentDocument, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := d.db.Query(`
		SELECT document_path, title, opened_at
		FROM recent_documents
		ORDER BY opened_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recents: %w", err)
	}
	defer rows.Close()

	var result []RecentDocument
	for rows.Next() {
		var rec RecentDocument
		if err := rows.Scan(&rec.Path, &rec.Title, &rec.OpenedAt); err != nil {
			return nil, fmt.Errorf("scan recent: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}
