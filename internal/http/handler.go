package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"learning-journal/internal/domain"
	"learning-journal/internal/forms"
	"learning-journal/internal/service"
)

const userKey = "currentUser"

// Handler wires HTTP routes to domain services and renders the HTML views.
type Handler struct {
	entries  service.EntryService
	users    service.UserService
	backups  service.BackupService
	sessions *SessionManager
	logger   *logrus.Logger
}

func NewHandler(entries service.EntryService, users service.UserService, backups service.BackupService, sessions *SessionManager, logger *logrus.Logger) *Handler {
	return &Handler{
		entries:  entries,
		users:    users,
		backups:  backups,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.attachUser())

	router.GET("/", h.showEntries)
	router.GET("/entries", h.showEntries)
	router.GET("/entries/:tag", h.showEntries)

	// gin's router tree rejects a static "edit" segment next to the :tag
	// wildcard, so edit/delete share the wildcard route and dispatch on the
	// first segment
	router.GET("/entries/:tag/:slug", h.dispatchEntryAction)
	router.POST("/entries/:tag/:slug", h.dispatchEntryAction)

	router.GET("/login", h.showLogin)
	router.POST("/login", h.processLogin)

	auth := router.Group("/", h.requireAuth())
	{
		auth.GET("/logout", h.logout)
		auth.GET("/entry", h.showAddEntry)
		auth.POST("/entry", h.processAddEntry)
		auth.GET("/details/:slug", h.showDetails)
		auth.GET("/backup", h.showBackups)
		auth.POST("/backup", h.runBackup)
	}

	router.NoRoute(h.renderNotFound)
}

func (h *Handler) dispatchEntryAction(c *gin.Context) {
	action := c.Param("tag")
	if action != "edit" && action != "delete" {
		h.renderNotFound(c)
		return
	}
	if currentUser(c) == nil {
		setFlash(c, "Please log in to access this page.", "error")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	switch {
	case action == "delete" && c.Request.Method == http.MethodGet:
		h.deleteEntry(c)
	case action == "edit" && c.Request.Method == http.MethodGet:
		h.showEditEntry(c)
	case action == "edit" && c.Request.Method == http.MethodPost:
		h.processEditEntry(c)
	default:
		h.renderNotFound(c)
	}
}

// attachUser resolves the session cookie to a user for every request so
// templates can render the login state. Invalid or absent sessions are
// simply anonymous.
func (h *Handler) attachUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := h.sessions.UserID(c); err == nil {
			if user, err := h.users.GetByID(c.Request.Context(), userID); err == nil {
				c.Set(userKey, user)
			}
		}
		c.Next()
	}
}

func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			setFlash(c, "Please log in to access this page.", "error")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	value, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, ok := value.(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = currentUser(c)
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = takeFlash(c)
	}
	c.HTML(status, name, data)
}

func (h *Handler) renderNotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "404.html", nil)
}

func (h *Handler) serverError(c *gin.Context, err error) {
	h.logger.WithError(err).Error("request failed")
	c.String(http.StatusInternalServerError, "Something went wrong.")
	c.Abort()
}

func (h *Handler) showEntries(c *gin.Context) {
	tag := c.Param("tag")

	var (
		entries []domain.Entry
		err     error
	)
	if tag != "" {
		entries, err = h.entries.ListByTag(c.Request.Context(), tag)
		if err != nil {
			h.serverError(c, err)
			return
		}
		// an unmatched tag filter is a not-found page, not an empty list
		if len(entries) == 0 {
			h.renderNotFound(c)
			return
		}
	} else {
		entries, err = h.entries.List(c.Request.Context())
		if err != nil {
			h.serverError(c, err)
			return
		}
	}

	h.render(c, http.StatusOK, "index.html", gin.H{
		"Entries": entries,
		"Tag":     tag,
	})
}

func (h *Handler) showLogin(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{
		"Form":   &forms.LoginForm{},
		"Errors": forms.Errors{},
	})
}

func (h *Handler) processLogin(c *gin.Context) {
	form := &forms.LoginForm{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	if errs := form.Validate(); !errs.Valid() {
		h.render(c, http.StatusOK, "login.html", gin.H{
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.render(c, http.StatusOK, "login.html", gin.H{
				"Form":   form,
				"Errors": forms.Errors{},
				"Flash":  &Flash{Message: "Your email or password doesn't match!", Category: "error"},
			})
			return
		}
		h.serverError(c, err)
		return
	}

	if err := h.sessions.Issue(c, user.ID); err != nil {
		h.serverError(c, err)
		return
	}
	setFlash(c, "You've been logged in!", "success")
	c.Redirect(http.StatusFound, "/entries")
}

func (h *Handler) logout(c *gin.Context) {
	h.sessions.Clear(c)
	setFlash(c, "You've been logged out! Come back soon!", "success")
	c.Redirect(http.StatusFound, "/entries")
}

func (h *Handler) showAddEntry(c *gin.Context) {
	h.render(c, http.StatusOK, "new.html", gin.H{
		"Form":   &forms.EntryForm{},
		"Errors": forms.Errors{},
	})
}

func (h *Handler) processAddEntry(c *gin.Context) {
	form := entryFormFromRequest(c)

	errs, err := form.Validate(c.Request.Context(), h.entries.TitleExists, "")
	if err != nil {
		h.serverError(c, err)
		return
	}
	if !errs.Valid() {
		h.render(c, http.StatusOK, "new.html", gin.H{
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	if _, err := h.entries.Create(c.Request.Context(), entryInputFromForm(form)); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// a concurrent submission won the slug; validation already passed
			// so surface it as a generic conflict, not a crash
			h.logger.WithError(err).Warn("entry create conflict after validation")
			h.render(c, http.StatusOK, "new.html", gin.H{
				"Form":   form,
				"Errors": forms.Errors{},
				"Flash":  &Flash{Message: "That entry collides with an existing one. Try a different title.", Category: "error"},
			})
			return
		}
		h.serverError(c, err)
		return
	}

	setFlash(c, "Journal entry saved!", "success")
	c.Redirect(http.StatusFound, "/entries")
}

func (h *Handler) showDetails(c *gin.Context) {
	entry, err := h.entries.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "detail.html", gin.H{"Entry": entry})
}

func (h *Handler) showEditEntry(c *gin.Context) {
	entry, err := h.entries.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "edit.html", gin.H{
		"Form":   entryFormFromEntry(entry),
		"Errors": forms.Errors{},
		"Slug":   entry.Slug,
	})
}

func (h *Handler) processEditEntry(c *gin.Context) {
	entrySlug := c.Param("slug")
	if _, err := h.entries.GetBySlug(c.Request.Context(), entrySlug); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.serverError(c, err)
		return
	}

	form := entryFormFromRequest(c)
	errs, err := form.Validate(c.Request.Context(), h.entries.TitleExists, entrySlug)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if !errs.Valid() {
		h.render(c, http.StatusOK, "edit.html", gin.H{
			"Form":   form,
			"Errors": errs,
			"Slug":   entrySlug,
		})
		return
	}

	if _, err := h.entries.Update(c.Request.Context(), entrySlug, entryInputFromForm(form)); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.renderNotFound(c)
		case errors.Is(err, domain.ErrConflict):
			h.logger.WithError(err).Warn("entry update conflict after validation")
			h.render(c, http.StatusOK, "edit.html", gin.H{
				"Form":   form,
				"Errors": forms.Errors{},
				"Slug":   entrySlug,
				"Flash":  &Flash{Message: "That entry collides with an existing one. Try a different title.", Category: "error"},
			})
		default:
			h.serverError(c, err)
		}
		return
	}

	setFlash(c, "Entry edited successfully", "success")
	c.Redirect(http.StatusFound, "/entries")
}

func (h *Handler) deleteEntry(c *gin.Context) {
	if err := h.entries.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.serverError(c, err)
		return
	}
	setFlash(c, "Entry deleted successfully!", "success")
	c.Redirect(http.StatusFound, "/entries")
}

func (h *Handler) showBackups(c *gin.Context) {
	if !h.backups.Enabled() {
		h.render(c, http.StatusOK, "backup.html", gin.H{"Disabled": true})
		return
	}

	objects, err := h.backups.ListBackups(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "backup.html", gin.H{"Backups": objects})
}

func (h *Handler) runBackup(c *gin.Context) {
	location, err := h.backups.Export(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrBackupDisabled) {
			setFlash(c, "Backups are not configured.", "error")
			c.Redirect(http.StatusFound, "/backup")
			return
		}
		h.serverError(c, err)
		return
	}
	h.logger.WithField("location", location).Info("journal backup uploaded")
	setFlash(c, "Backup uploaded to "+location, "success")
	c.Redirect(http.StatusFound, "/backup")
}

func entryFormFromRequest(c *gin.Context) *forms.EntryForm {
	return &forms.EntryForm{
		Title:     c.PostForm("title"),
		Date:      c.PostForm("date"),
		TimeSpent: c.PostForm("time_spent"),
		Learned:   c.PostForm("learned"),
		Resources: c.PostForm("resources"),
		Tags:      c.PostForm("tags"),
	}
}

func entryFormFromEntry(entry *domain.Entry) *forms.EntryForm {
	return &forms.EntryForm{
		Title:     entry.Title,
		Date:      entry.Date.Format(forms.DateLayout),
		TimeSpent: strconv.Itoa(entry.TimeSpent),
		Learned:   entry.Learned,
		Resources: entry.Resources,
		Tags:      entry.Tags,
	}
}

func entryInputFromForm(form *forms.EntryForm) service.EntryInput {
	return service.EntryInput{
		Title:     form.Title,
		Date:      form.ParsedDate,
		TimeSpent: form.ParsedTimeSpent,
		Learned:   form.Learned,
		Resources: form.Resources,
		Tags:      form.Tags,
	}
}
