package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"learning-journal/internal/domain"
	"learning-journal/internal/repository"
	"learning-journal/internal/storage"
)

// ErrBackupDisabled is returned when no backup bucket is configured.
var ErrBackupDisabled = errors.New("backup storage is not configured")

// BackupService exports the whole journal as a JSON object to remote storage.
type BackupService interface {
	Enabled() bool
	Export(ctx context.Context) (string, error)
	ListBackups(ctx context.Context) ([]storage.ObjectInfo, error)
}

type backupEntry struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Date      string `json:"date"`
	TimeSpent int    `json:"time_spent_minutes"`
	Learned   string `json:"learned"`
	Resources string `json:"resources"`
	Tags      string `json:"tags"`
}

type backupDocument struct {
	ExportedAt string        `json:"exported_at"`
	Entries    []backupEntry `json:"entries"`
}

type backupService struct {
	entries repository.EntryRepository
	store   storage.Service
	bucket  string
	prefix  string
}

func NewBackupService(entries repository.EntryRepository, store storage.Service, bucket, prefix string) BackupService {
	return &backupService{
		entries: entries,
		store:   store,
		bucket:  bucket,
		prefix:  prefix,
	}
}

func (s *backupService) Enabled() bool {
	return s.store != nil && s.bucket != ""
}

func (s *backupService) Export(ctx context.Context) (string, error) {
	if !s.Enabled() {
		return "", ErrBackupDisabled
	}

	entries, err := s.entries.List(ctx)
	if err != nil {
		return "", fmt.Errorf("collect entries: %w", err)
	}

	doc := backupDocument{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    make([]backupEntry, len(entries)),
	}
	for i := range entries {
		doc.Entries[i] = toBackupEntry(entries[i])
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal backup: %w", err)
	}

	key := fmt.Sprintf("%s/journal-%s.json", s.prefix, uuid.NewString())
	location, err := s.store.PutObject(ctx, bytes.NewReader(payload), storage.PutOptions{
		Bucket:      s.bucket,
		Key:         key,
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("upload backup: %w", err)
	}
	return location, nil
}

func (s *backupService) ListBackups(ctx context.Context) ([]storage.ObjectInfo, error) {
	if !s.Enabled() {
		return nil, ErrBackupDisabled
	}
	return s.store.ListObjects(ctx, s.bucket, s.prefix)
}

func toBackupEntry(entry domain.Entry) backupEntry {
	return backupEntry{
		Title:     entry.Title,
		Slug:      entry.Slug,
		Date:      entry.Date.Format("2006-01-02"),
		TimeSpent: entry.TimeSpent,
		Learned:   entry.Learned,
		Resources: entry.Resources,
		Tags:      entry.Tags,
	}
}
