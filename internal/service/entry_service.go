package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"learning-journal/internal/domain"
	"learning-journal/internal/repository"
	"learning-journal/internal/slug"
)

// EntryInput carries the mutable fields of an entry as submitted by a form.
// Slug is never part of the input; it is derived from Title at save time.
type EntryInput struct {
	Title     string
	Date      time.Time
	TimeSpent int
	Learned   string
	Resources string
	Tags      string
}

// EntryService coordinates entry operations backed by the repository.
type EntryService interface {
	Create(ctx context.Context, input EntryInput) (*domain.Entry, error)
	List(ctx context.Context) ([]domain.Entry, error)
	ListByTag(ctx context.Context, tag string) ([]domain.Entry, error)
	GetBySlug(ctx context.Context, entrySlug string) (*domain.Entry, error)
	TitleExists(ctx context.Context, title, excludingSlug string) (bool, error)
	Update(ctx context.Context, entrySlug string, input EntryInput) (*domain.Entry, error)
	Delete(ctx context.Context, entrySlug string) error
}

type entryService struct {
	entries repository.EntryRepository
}

func NewEntryService(entries repository.EntryRepository) EntryService {
	return &entryService{entries: entries}
}

func (s *entryService) Create(ctx context.Context, input EntryInput) (*domain.Entry, error) {
	input = trimInput(input)
	if input.Title == "" {
		return nil, errors.New("title is required")
	}
	if input.TimeSpent < 0 {
		return nil, errors.New("time spent must not be negative")
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	entry := &domain.Entry{
		Title:     input.Title,
		Slug:      slug.Slugify(input.Title),
		Date:      input.Date,
		TimeSpent: input.TimeSpent,
		Learned:   input.Learned,
		Resources: input.Resources,
		Tags:      input.Tags,
	}

	if _, err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *entryService) List(ctx context.Context) ([]domain.Entry, error) {
	return s.entries.List(ctx)
}

func (s *entryService) ListByTag(ctx context.Context, tag string) ([]domain.Entry, error) {
	return s.entries.ListByTag(ctx, tag)
}

func (s *entryService) GetBySlug(ctx context.Context, entrySlug string) (*domain.Entry, error) {
	return s.entries.GetBySlug(ctx, entrySlug)
}

// TitleExists reports whether a different entry already uses the given title.
// excludingSlug is empty on add; on edit it is the slug of the entry being
// edited, so keeping one's own title does not count as a collision.
func (s *entryService) TitleExists(ctx context.Context, title, excludingSlug string) (bool, error) {
	existing, err := s.entries.GetByTitle(ctx, strings.TrimSpace(title))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return existing.Slug != excludingSlug, nil
}

// Update replaces all mutable fields of the entry at entrySlug, then re-reads
// the row and renames its slug from the freshly written title. The two-step
// sequence is safe here because requests are the only writers and each update
// is a single sequential operation.
func (s *entryService) Update(ctx context.Context, entrySlug string, input EntryInput) (*domain.Entry, error) {
	input = trimInput(input)
	if input.Title == "" {
		return nil, errors.New("title is required")
	}
	if input.TimeSpent < 0 {
		return nil, errors.New("time spent must not be negative")
	}

	current, err := s.entries.GetBySlug(ctx, entrySlug)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Title = input.Title
	updated.Date = input.Date
	updated.TimeSpent = input.TimeSpent
	updated.Learned = input.Learned
	updated.Resources = input.Resources
	updated.Tags = input.Tags
	updated.Slug = current.Slug
	if err := s.entries.Update(ctx, entrySlug, &updated); err != nil {
		return nil, err
	}

	fresh, err := s.entries.GetBySlug(ctx, entrySlug)
	if err != nil {
		return nil, err
	}
	fresh.Slug = slug.Slugify(fresh.Title)
	if err := s.entries.Update(ctx, entrySlug, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

func (s *entryService) Delete(ctx context.Context, entrySlug string) error {
	return s.entries.DeleteBySlug(ctx, entrySlug)
}

func trimInput(input EntryInput) EntryInput {
	input.Title = strings.TrimSpace(input.Title)
	input.Learned = strings.TrimSpace(input.Learned)
	input.Resources = strings.TrimSpace(input.Resources)
	input.Tags = strings.TrimSpace(input.Tags)
	return input
}
