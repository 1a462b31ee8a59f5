package service

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learning-journal/internal/domain"
	"learning-journal/internal/storage"
)

func TestBackupDisabledWithoutBucket(t *testing.T) {
	svc := NewBackupService(&mockEntryRepo{}, &mockStorage{}, "", "journal-backups")
	assert.False(t, svc.Enabled())

	_, err := svc.Export(context.Background())
	assert.ErrorIs(t, err, ErrBackupDisabled)

	_, err = svc.ListBackups(context.Background())
	assert.ErrorIs(t, err, ErrBackupDisabled)
}

func TestBackupExportUploadsAllEntries(t *testing.T) {
	entries := &mockEntryRepo{
		ListFunc: func(ctx context.Context) ([]domain.Entry, error) {
			return []domain.Entry{
				{Title: "First", Slug: "First", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Tags: "go"},
				{Title: "Second", Slug: "Second", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
			}, nil
		},
	}

	var (
		gotOpts storage.PutOptions
		gotBody []byte
	)
	store := &mockStorage{
		PutObjectFunc: func(ctx context.Context, body io.Reader, opts storage.PutOptions) (string, error) {
			payload, err := io.ReadAll(body)
			require.NoError(t, err)
			gotBody = payload
			gotOpts = opts
			return "s3://journal/" + opts.Key, nil
		},
	}

	svc := NewBackupService(entries, store, "journal", "journal-backups")
	require.True(t, svc.Enabled())

	location, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(location, "s3://journal/journal-backups/journal-"))
	assert.Equal(t, "journal", gotOpts.Bucket)
	assert.Equal(t, "application/json", gotOpts.ContentType)

	var doc struct {
		Entries []struct {
			Title string `json:"title"`
			Slug  string `json:"slug"`
			Date  string `json:"date"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &doc))
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, "First", doc.Entries[0].Title)
	assert.Equal(t, "2024-03-01", doc.Entries[0].Date)
	assert.Equal(t, "Second", doc.Entries[1].Slug)
}

func TestBackupListPassesPrefix(t *testing.T) {
	store := &mockStorage{
		ListObjectsFunc: func(ctx context.Context, bucket, prefix string) ([]storage.ObjectInfo, error) {
			assert.Equal(t, "journal", bucket)
			assert.Equal(t, "journal-backups", prefix)
			return []storage.ObjectInfo{{Key: "journal-backups/journal-x.json", Size: 10}}, nil
		},
	}

	svc := NewBackupService(&mockEntryRepo{}, store, "journal", "journal-backups")
	objects, err := svc.ListBackups(context.Background())
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, int64(10), objects[0].Size)
}
