package service

import (
	"context"
	"io"

	"learning-journal/internal/domain"
	"learning-journal/internal/storage"
)

type mockEntryRepo struct {
	InitFunc         func(ctx context.Context) error
	CreateFunc       func(ctx context.Context, entry *domain.Entry) (int64, error)
	ListFunc         func(ctx context.Context) ([]domain.Entry, error)
	ListByTagFunc    func(ctx context.Context, tag string) ([]domain.Entry, error)
	GetBySlugFunc    func(ctx context.Context, slug string) (*domain.Entry, error)
	GetByTitleFunc   func(ctx context.Context, title string) (*domain.Entry, error)
	UpdateFunc       func(ctx context.Context, slug string, entry *domain.Entry) error
	DeleteBySlugFunc func(ctx context.Context, slug string) error
}

func (m *mockEntryRepo) Init(ctx context.Context) error { return m.InitFunc(ctx) }
func (m *mockEntryRepo) Create(ctx context.Context, entry *domain.Entry) (int64, error) {
	return m.CreateFunc(ctx, entry)
}
func (m *mockEntryRepo) List(ctx context.Context) ([]domain.Entry, error) { return m.ListFunc(ctx) }
func (m *mockEntryRepo) ListByTag(ctx context.Context, tag string) ([]domain.Entry, error) {
	return m.ListByTagFunc(ctx, tag)
}
func (m *mockEntryRepo) GetBySlug(ctx context.Context, slug string) (*domain.Entry, error) {
	return m.GetBySlugFunc(ctx, slug)
}
func (m *mockEntryRepo) GetByTitle(ctx context.Context, title string) (*domain.Entry, error) {
	return m.GetByTitleFunc(ctx, title)
}
func (m *mockEntryRepo) Update(ctx context.Context, slug string, entry *domain.Entry) error {
	return m.UpdateFunc(ctx, slug, entry)
}
func (m *mockEntryRepo) DeleteBySlug(ctx context.Context, slug string) error {
	return m.DeleteBySlugFunc(ctx, slug)
}

type mockUserRepo struct {
	InitFunc       func(ctx context.Context) error
	CreateFunc     func(ctx context.Context, user *domain.User) (int64, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*domain.User, error)
}

func (m *mockUserRepo) Init(ctx context.Context) error { return m.InitFunc(ctx) }
func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	return m.CreateFunc(ctx, user)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

type mockStorage struct {
	PutObjectFunc   func(ctx context.Context, body io.Reader, opts storage.PutOptions) (string, error)
	ListObjectsFunc func(ctx context.Context, bucket, prefix string) ([]storage.ObjectInfo, error)
}

func (m *mockStorage) PutObject(ctx context.Context, body io.Reader, opts storage.PutOptions) (string, error) {
	return m.PutObjectFunc(ctx, body, opts)
}
func (m *mockStorage) ListObjects(ctx context.Context, bucket, prefix string) ([]storage.ObjectInfo, error) {
	return m.ListObjectsFunc(ctx, bucket, prefix)
}
