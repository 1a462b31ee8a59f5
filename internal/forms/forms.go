// Package forms validates submitted form fields before any store mutation.
// Rules run in a fixed order per field and the first failure wins; a failed
// validation never leaves partial writes behind because nothing is written
// until every rule has passed.
package forms

import (
	"context"
	"net/mail"
	"strconv"
	"strings"
	"time"
)

// Errors accumulates field-level validation messages, keyed by field name.
type Errors map[string]string

// Add records a message for a field unless the field already failed an
// earlier rule.
func (e Errors) Add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

func (e Errors) Valid() bool {
	return len(e) == 0
}

// DateLayout is the accepted form of the entry date field.
const DateLayout = "2006-01-02"

// LoginForm holds the raw login fields.
type LoginForm struct {
	Email    string
	Password string
}

func (f *LoginForm) Validate() Errors {
	errs := Errors{}
	f.Email = strings.TrimSpace(f.Email)

	if f.Email == "" {
		errs.Add("email", "Email is required.")
	} else if _, err := mail.ParseAddress(f.Email); err != nil {
		errs.Add("email", "Enter a valid email address.")
	}

	if f.Password == "" {
		errs.Add("password", "Password is required.")
	}
	return errs
}

// TitleChecker reports whether a title is already taken by another entry.
// It runs a live query at validation time; the store's slug-uniqueness
// constraint remains the real arbiter if a concurrent write slips past.
type TitleChecker func(ctx context.Context, title, excludingSlug string) (bool, error)

// EntryForm holds the raw add/edit fields plus the parsed values filled in
// by Validate.
type EntryForm struct {
	Title     string
	Date      string
	TimeSpent string
	Learned   string
	Resources string
	Tags      string

	ParsedDate      time.Time
	ParsedTimeSpent int
}

// Validate checks all fields. excludingSlug is empty for the add form and the
// edited entry's slug for the edit form. The returned error is reserved for
// store failures during the uniqueness lookup.
func (f *EntryForm) Validate(ctx context.Context, titleTaken TitleChecker, excludingSlug string) (Errors, error) {
	errs := Errors{}
	f.Title = strings.TrimSpace(f.Title)
	f.Date = strings.TrimSpace(f.Date)
	f.TimeSpent = strings.TrimSpace(f.TimeSpent)
	f.Learned = strings.TrimSpace(f.Learned)
	f.Resources = strings.TrimSpace(f.Resources)
	f.Tags = strings.TrimSpace(f.Tags)

	if f.Title == "" {
		errs.Add("title", "Title is required.")
	} else if titleTaken != nil {
		taken, err := titleTaken(ctx, f.Title, excludingSlug)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("title", "Entry with that title already exists.")
		}
	}

	if f.Date == "" {
		errs.Add("date", "Date is required.")
	} else if parsed, err := time.Parse(DateLayout, f.Date); err != nil {
		errs.Add("date", "Enter a date in YYYY-MM-DD format.")
	} else {
		f.ParsedDate = parsed
	}

	if f.TimeSpent == "" {
		errs.Add("time_spent", "Time spent is required.")
	} else if minutes, err := strconv.Atoi(f.TimeSpent); err != nil {
		errs.Add("time_spent", "Time spent must be a whole number of minutes.")
	} else if minutes < 0 {
		errs.Add("time_spent", "Time spent must not be negative.")
	} else {
		f.ParsedTimeSpent = minutes
	}

	if f.Learned == "" {
		errs.Add("learned", "What you learned is required.")
	}
	if f.Resources == "" {
		errs.Add("resources", "Resources to remember are required.")
	}
	return errs, nil
}
