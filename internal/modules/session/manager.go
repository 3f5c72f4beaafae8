// Package session stores the administrator's bearer credential server-side
// and gates the console on it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/autek-admin/internal/apiclient"
	"github.com/georgemunganga/autek-admin/internal/cookie"
)

const (
	CookieName = "console_session"
	LoginPath  = "/login"
)

type ctxKey struct{}

// Manager ties sessions in a Repository to the browser through a sealed cookie.
type Manager struct {
	repo    Repository
	cookies *cookie.Codec
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

func NewManager(repo Repository, cookies *cookie.Codec, ttl time.Duration, logger *slog.Logger) *Manager {
	return &Manager{repo: repo, cookies: cookies, ttl: ttl, logger: logger, now: time.Now}
}

// Start stores a new session for token and sets the session cookie.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, token string, p Profile) (*Session, error) {
	now := m.now()
	s := &Session{
		ID:        uuid.New(),
		Token:     token,
		Profile:   p,
		CreatedAt: now,
		ExpiresAt: tokenExpiry(token, now.Add(m.ttl)),
	}
	if err := m.repo.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	if err := m.cookies.Write(w, CookieName, []byte(s.ID.String()), 0); err != nil {
		return nil, fmt.Errorf("write session cookie: %w", err)
	}
	return s, nil
}

// Load returns the session referenced by the request cookie.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	raw, err := m.cookies.Read(r, CookieName)
	if err != nil {
		return nil, ErrNotFound
	}
	id, err := uuid.ParseBytes(raw)
	if err != nil {
		return nil, ErrNotFound
	}
	return m.repo.GetByID(r.Context(), id)
}

// End deletes the stored credential and clears the cookie.
func (m *Manager) End(w http.ResponseWriter, r *http.Request) {
	s, ok := FromContext(r.Context())
	if !ok {
		var err error
		if s, err = m.Load(r); err != nil {
			s = nil
		}
	}
	if s != nil {
		if err := m.repo.Delete(r.Context(), s.ID); err != nil {
			m.logger.ErrorContext(r.Context(), "delete session", slog.Any("error", err))
		}
	}
	m.cookies.Clear(w, CookieName)
}

// Expire is the response to a rejected credential: the session is dropped
// and the browser is sent to the login page.
func (m *Manager) Expire(w http.ResponseWriter, r *http.Request) {
	m.logger.InfoContext(r.Context(), "credential rejected, logging out")
	m.End(w, r)
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

// Require lets the request through only with a live session, making the
// session and its bearer credential available on the request context.
func (m *Manager) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Load(r)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				m.logger.ErrorContext(r.Context(), "load session", slog.Any("error", err))
			}
			m.cookies.Clear(w, CookieName)
			m.toLogin(w, r)
			return
		}
		if s.Expired(m.now()) {
			ctx := WithSession(r.Context(), s)
			m.End(w, r.WithContext(ctx))
			m.toLogin(w, r)
			return
		}
		ctx := apiclient.WithToken(WithSession(r.Context(), s), s.Token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Sweep deletes expired sessions every interval until ctx is done.
func (m *Manager) Sweep(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := m.repo.DeleteExpired(ctx, m.now())
			if err != nil {
				m.logger.ErrorContext(ctx, "sweep sessions", slog.Any("error", err))
				continue
			}
			if n > 0 {
				m.logger.InfoContext(ctx, "expired sessions removed", slog.Int64("count", n))
			}
		}
	}
}

func (m *Manager) toLogin(w http.ResponseWriter, r *http.Request) {
	target := LoginPath
	if r.Method == http.MethodGet {
		target += "?return_to=" + url.QueryEscape(r.URL.RequestURI())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// ViewerName is the first name shown in the sidebar welcome line.
func ViewerName(ctx context.Context) string {
	if s, ok := FromContext(ctx); ok {
		return s.Profile.FirstName
	}
	return ""
}
