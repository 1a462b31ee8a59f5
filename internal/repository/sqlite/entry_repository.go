package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"learning-journal/internal/domain"
	"learning-journal/internal/repository"
)

const createEntriesTable = `
CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	date TEXT NOT NULL,
	time_spent INTEGER NOT NULL DEFAULT 0,
	learned TEXT NOT NULL,
	resources TEXT NOT NULL,
	tags TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

// dateLayout is the stored form of the entry date. ISO dates sort
// lexicographically, so ORDER BY date works on the raw column.
const dateLayout = "2006-01-02"

const entryColumns = `id, title, slug, date, time_spent, learned, resources, tags, created_at, updated_at`

type EntryRepository struct {
	db *sql.DB
}

func NewEntryRepository(db *sql.DB) repository.EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createEntriesTable); err != nil {
		return fmt.Errorf("create entries table: %w", err)
	}
	return nil
}

func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) (int64, error) {
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO entries (title, slug, date, time_spent, learned, resources, tags, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Title,
		entry.Slug,
		entry.Date.Format(dateLayout),
		entry.TimeSpent,
		entry.Learned,
		entry.Resources,
		entry.Tags,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert entry %q: %w", entry.Slug, domain.ErrConflict)
		}
		return 0, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("entry last insert id: %w", err)
	}
	entry.ID = id
	return id, nil
}

func (r *EntryRepository) List(ctx context.Context) ([]domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+entryColumns+`
FROM entries
ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *EntryRepository) ListByTag(ctx context.Context, tag string) ([]domain.Entry, error) {
	// substring containment, not token match: filtering by "a" matches any
	// entry whose tag string contains an "a" anywhere
	rows, err := r.db.QueryContext(ctx, `
SELECT `+entryColumns+`
FROM entries
WHERE tags LIKE '%' || ? || '%'
ORDER BY date DESC, id DESC`,
		tag,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries by tag: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *EntryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Entry, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+entryColumns+`
FROM entries
WHERE slug = ?`,
		slug,
	)
	return scanEntry(row)
}

func (r *EntryRepository) GetByTitle(ctx context.Context, title string) (*domain.Entry, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+entryColumns+`
FROM entries
WHERE title = ?`,
		title,
	)
	return scanEntry(row)
}

func (r *EntryRepository) Update(ctx context.Context, slug string, entry *domain.Entry) error {
	entry.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE entries
SET title = ?, slug = ?, date = ?, time_spent = ?, learned = ?, resources = ?, tags = ?, updated_at = ?
WHERE slug = ?`,
		entry.Title,
		entry.Slug,
		entry.Date.Format(dateLayout),
		entry.TimeSpent,
		entry.Learned,
		entry.Resources,
		entry.Tags,
		entry.UpdatedAt,
		slug,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update entry %q: %w", slug, domain.ErrConflict)
		}
		return fmt.Errorf("update entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update entry rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update entry %q: %w", slug, domain.ErrNotFound)
	}
	return nil
}

func (r *EntryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE slug = ?`, slug)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete entry %q: %w", slug, domain.ErrNotFound)
	}
	return nil
}

func scanEntry(row interface {
	Scan(dest ...any) error
}) (*domain.Entry, error) {
	var (
		entry   domain.Entry
		rawDate string
	)
	if err := row.Scan(
		&entry.ID,
		&entry.Title,
		&entry.Slug,
		&rawDate,
		&entry.TimeSpent,
		&entry.Learned,
		&entry.Resources,
		&entry.Tags,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("entry: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scan entry: %w", err)
	}

	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return nil, fmt.Errorf("parse entry date %q: %w", rawDate, err)
	}
	entry.Date = date
	return &entry, nil
}

func collectEntries(rows *sql.Rows) ([]domain.Entry, error) {
	var entries []domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}
