package repository

import (
	"context"

	"learning-journal/internal/domain"
)

// EntryRepository exposes persistence operations for journal entries.
// Slug uniqueness is enforced here; a colliding write fails with
// domain.ErrConflict and leaves existing rows untouched.
type EntryRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, entry *domain.Entry) (int64, error)
	List(ctx context.Context) ([]domain.Entry, error)
	ListByTag(ctx context.Context, tag string) ([]domain.Entry, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Entry, error)
	GetByTitle(ctx context.Context, title string) (*domain.Entry, error)
	Update(ctx context.Context, slug string, entry *domain.Entry) error
	DeleteBySlug(ctx context.Context, slug string) error
}
