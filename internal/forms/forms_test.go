package forms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginFormValidate(t *testing.T) {
	tests := []struct {
		name       string
		form       LoginForm
		wantFields []string
	}{
		{name: "valid", form: LoginForm{Email: "testuser@example.com", Password: "password"}},
		{name: "missing email", form: LoginForm{Password: "password"}, wantFields: []string{"email"}},
		{name: "malformed email", form: LoginForm{Email: "not-an-email", Password: "p"}, wantFields: []string{"email"}},
		{name: "missing password", form: LoginForm{Email: "testuser@example.com"}, wantFields: []string{"password"}},
		{name: "everything missing", form: LoginForm{}, wantFields: []string{"email", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			assert.Len(t, errs, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func noTitleTaken(ctx context.Context, title, excludingSlug string) (bool, error) {
	return false, nil
}

func TestEntryFormValidateValid(t *testing.T) {
	form := &EntryForm{
		Title:     "  Learning Go  ",
		Date:      "2024-03-01",
		TimeSpent: "45",
		Learned:   "templates",
		Resources: "the docs",
		Tags:      "go web",
	}

	errs, err := form.Validate(context.Background(), noTitleTaken, "")
	require.NoError(t, err)
	assert.True(t, errs.Valid())
	assert.Equal(t, "Learning Go", form.Title)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), form.ParsedDate)
	assert.Equal(t, 45, form.ParsedTimeSpent)
}

func TestEntryFormValidateRequiredFields(t *testing.T) {
	form := &EntryForm{}

	errs, err := form.Validate(context.Background(), noTitleTaken, "")
	require.NoError(t, err)
	for _, field := range []string{"title", "date", "time_spent", "learned", "resources"} {
		assert.Contains(t, errs, field)
	}
	// tags stay optional
	assert.NotContains(t, errs, "tags")
}

func TestEntryFormValidateBadValues(t *testing.T) {
	form := &EntryForm{
		Title:     "T",
		Date:      "March 1st",
		TimeSpent: "lots",
		Learned:   "x",
		Resources: "y",
	}

	errs, err := form.Validate(context.Background(), noTitleTaken, "")
	require.NoError(t, err)
	assert.Contains(t, errs, "date")
	assert.Contains(t, errs, "time_spent")
}

func TestEntryFormValidateNegativeTime(t *testing.T) {
	form := &EntryForm{
		Title:     "T",
		Date:      "2024-03-01",
		TimeSpent: "-5",
		Learned:   "x",
		Resources: "y",
	}

	errs, err := form.Validate(context.Background(), noTitleTaken, "")
	require.NoError(t, err)
	assert.Contains(t, errs, "time_spent")
}

func TestEntryFormValidateTitleTaken(t *testing.T) {
	var gotTitle, gotExcluding string
	checker := func(ctx context.Context, title, excludingSlug string) (bool, error) {
		gotTitle = title
		gotExcluding = excludingSlug
		return true, nil
	}

	form := &EntryForm{
		Title:     "Taken Title",
		Date:      "2024-03-01",
		TimeSpent: "5",
		Learned:   "x",
		Resources: "y",
	}

	errs, err := form.Validate(context.Background(), checker, "current-slug")
	require.NoError(t, err)
	assert.Contains(t, errs, "title")
	assert.Equal(t, "Taken Title", gotTitle)
	assert.Equal(t, "current-slug", gotExcluding)
}

func TestEntryFormValidateCheckerError(t *testing.T) {
	wantErr := errors.New("store down")
	checker := func(ctx context.Context, title, excludingSlug string) (bool, error) {
		return false, wantErr
	}

	form := &EntryForm{Title: "T", Date: "2024-03-01", TimeSpent: "5", Learned: "x", Resources: "y"}

	_, err := form.Validate(context.Background(), checker, "")
	assert.ErrorIs(t, err, wantErr)
}
