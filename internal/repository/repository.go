package repository

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"recwatch/internal/models"
)

//go:embed schema.sql
var schemaFS embed.FS

var ErrNotFound = errors.New("not found")

const DefaultMaxLogEntries = 200

type Repository struct {
	db            *sql.DB
	maxLogEntries int
	now           func() time.Time
}

type Option func(*Repository)

// WithMaxLogEntries caps the operator log. Zero or less keeps the default.
func WithMaxLogEntries(n int) Option {
	return func(r *Repository) {
		if n > 0 {
			r.maxLogEntries = n
		}
	}
}

func New(dbPath string, opts ...Option) (*Repository, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_journal_mode=WAL&_timeout=5000&_cache_size=2000", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbPath == ":memory:" {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxLifetime(0)

	repo := &Repository{
		db:            db,
		maxLogEntries: DefaultMaxLogEntries,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(repo)
	}

	if err := repo.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return repo, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if _, err := r.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// Log entry operations

// AddLogEntry stores entry and drops the oldest entries beyond the cap.
func (r *Repository) AddLogEntry(entry *models.LogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.now()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO log_entries (id, level, source, message, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.ID, entry.Level, entry.Source, entry.Message, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create log entry: %w", err)
	}

	_, err = tx.Exec(`
		DELETE FROM log_entries
		WHERE seq NOT IN (SELECT seq FROM log_entries ORDER BY seq DESC LIMIT ?)
	`, r.maxLogEntries)
	if err != nil {
		return fmt.Errorf("failed to trim log entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit log entry: %w", err)
	}
	return nil
}

// GetLogEntries returns entries newest first.
func (r *Repository) GetLogEntries(filter models.LogFilter) ([]*models.LogEntry, error) {
	query := `SELECT id, level, source, message, created_at FROM log_entries`

	var args []interface{}
	if len(filter.Levels) > 0 {
		placeholders := strings.Repeat("?,", len(filter.Levels))
		placeholders = placeholders[:len(placeholders)-1]
		query += fmt.Sprintf(" WHERE level IN (%s)", placeholders)
		for _, level := range filter.Levels {
			args = append(args, level)
		}
	}

	query += " ORDER BY seq DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query log entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.LogEntry, 0)
	for rows.Next() {
		var entry models.LogEntry
		if err := rows.Scan(&entry.ID, &entry.Level, &entry.Source, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

func (r *Repository) CountLogEntries() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM log_entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count log entries: %w", err)
	}
	return count, nil
}

func (r *Repository) ClearLogEntries() error {
	if _, err := r.db.Exec(`DELETE FROM log_entries`); err != nil {
		return fmt.Errorf("failed to clear log entries: %w", err)
	}
	return nil
}

// Download operations

func (r *Repository) CreateDownload(d *models.Download) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = models.DownloadStatusPending
	}
	d.CreatedAt = r.now()

	_, err := r.db.Exec(`
		INSERT INTO downloads (id, relative_path, local_path, size_bytes, status, archive_key, error_message, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.RelativePath, d.LocalPath, d.SizeBytes, d.Status,
		nullString(d.ArchiveKey), nullString(d.ErrorMessage), d.CreatedAt, d.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to create download: %w", err)
	}
	return nil
}

func (r *Repository) UpdateDownload(d *models.Download) error {
	if d.IsTerminal() && d.CompletedAt == nil {
		now := r.now()
		d.CompletedAt = &now
	}

	result, err := r.db.Exec(`
		UPDATE downloads
		SET local_path = ?, size_bytes = ?, status = ?, archive_key = ?, error_message = ?, completed_at = ?
		WHERE id = ?
	`, d.LocalPath, d.SizeBytes, d.Status, nullString(d.ArchiveKey), nullString(d.ErrorMessage), d.CompletedAt, d.ID)
	if err != nil {
		return fmt.Errorf("failed to update download: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("download %s: %w", d.ID, ErrNotFound)
	}
	return nil
}

func (r *Repository) GetDownload(id string) (*models.Download, error) {
	row := r.db.QueryRow(`
		SELECT id, relative_path, local_path, size_bytes, status, archive_key, error_message, created_at, completed_at
		FROM downloads WHERE id = ?
	`, id)

	d, err := scanDownload(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("download %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get download: %w", err)
	}
	return d, nil
}

// GetDownloads returns downloads newest first.
func (r *Repository) GetDownloads(filter models.DownloadFilter) ([]*models.Download, error) {
	query := `
		SELECT id, relative_path, local_path, size_bytes, status, archive_key, error_message, created_at, completed_at
		FROM downloads
	`

	var args []interface{}
	if len(filter.Status) > 0 {
		placeholders := strings.Repeat("?,", len(filter.Status))
		placeholders = placeholders[:len(placeholders)-1]
		query += fmt.Sprintf(" WHERE status IN (%s)", placeholders)
		for _, status := range filter.Status {
			args = append(args, status)
		}
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query downloads: %w", err)
	}
	defer rows.Close()

	downloads := make([]*models.Download, 0)
	for rows.Next() {
		d, err := scanDownload(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan download: %w", err)
		}
		downloads = append(downloads, d)
	}

	return downloads, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDownload(s scanner) (*models.Download, error) {
	var d models.Download
	var archiveKey, errorMessage sql.NullString
	var completedAt sql.NullTime

	err := s.Scan(&d.ID, &d.RelativePath, &d.LocalPath, &d.SizeBytes, &d.Status,
		&archiveKey, &errorMessage, &d.CreatedAt, &completedAt)
	if err != nil {
		return nil, err
	}

	if archiveKey.Valid {
		d.ArchiveKey = archiveKey.String
	}
	if errorMessage.Valid {
		d.ErrorMessage = errorMessage.String
	}
	if completedAt.Valid {
		d.CompletedAt = &completedAt.Time
	}
	return &d, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
