package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"learning-journal/internal/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestEntryRepo(t *testing.T) *EntryRepository {
	t.Helper()
	repo := NewEntryRepository(newTestDB(t)).(*EntryRepository)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func newTestUserRepo(t *testing.T) *UserRepository {
	t.Helper()
	repo := NewUserRepository(newTestDB(t)).(*UserRepository)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func testEntry(title, slug string, date time.Time) *domain.Entry {
	return &domain.Entry{
		Title:     title,
		Slug:      slug,
		Date:      date,
		TimeSpent: 30,
		Learned:   "something",
		Resources: "a book",
		Tags:      "go backend",
	}
}
