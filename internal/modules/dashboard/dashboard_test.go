package dashboard

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/autek-admin/internal/apiclient"
	"github.com/georgemunganga/autek-admin/internal/cookie"
	"github.com/georgemunganga/autek-admin/internal/modules/crud"
	"github.com/georgemunganga/autek-admin/internal/modules/session"
	"github.com/georgemunganga/autek-admin/internal/web"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func testRegistry(t *testing.T) *crud.Registry {
	t.Helper()
	reg, err := crud.NewRegistry(
		&crud.Resource{Slug: "products", Endpoint: "/product", Title: "Products", ItemName: "Product"},
		&crud.Resource{Slug: "categories", Endpoint: "/category", Title: "Categories", ItemName: "Category"},
		&crud.Resource{Slug: "admins", Endpoint: "/admin", Title: "Administrators", ItemName: "Admin", MenuLabel: "Admins"},
		&crud.Resource{Slug: "colors", Endpoint: "/color", API: "media", Title: "Colors", ItemName: "Color"},
	)
	require.NoError(t, err)
	return reg
}

type fixture struct {
	router   http.Handler
	sessions session.Repository
	cookie   *http.Cookie
}

func newFixture(t *testing.T, api http.HandlerFunc) *fixture {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	clients := apiclient.Registry{
		"":      apiclient.New(srv.URL),
		"media": apiclient.New(srv.URL + "/media"),
	}

	reg := testRegistry(t)
	repo := session.NewMemoryRepository()
	codec := cookie.NewCodec("test-secret", false)
	sessions := session.NewManager(repo, codec, time.Hour, discard)
	renderer, err := web.NewRenderer(Menu(reg), session.ViewerName, discard)
	require.NoError(t, err)
	svc, err := NewService(reg, clients, DefaultStats, discard)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Route(Path, func(r chi.Router) {
		r.Use(sessions.Require)
		NewHandler(svc, sessions, renderer, discard).RegisterRoutes(r)
	})

	rec := httptest.NewRecorder()
	_, err = sessions.Start(context.Background(), rec, "tok", session.Profile{ID: "1", FirstName: "Aziz"})
	require.NoError(t, err)
	return &fixture{router: r, sessions: repo, cookie: rec.Result().Cookies()[0]}
}

func (f *fixture) get(t *testing.T) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, Path, nil)
	req.AddCookie(f.cookie)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func collection(n int) []map[string]any {
	out := make([]map[string]any, n)
	for i := range out {
		out[i] = map[string]any{"id": i + 1}
	}
	return out
}

func TestMenuStartsWithDashboard(t *testing.T) {
	menu := Menu(testRegistry(t))
	require.Len(t, menu, 5)
	assert.Equal(t, web.MenuItem{Href: "/dashboard", Label: "Dashboard"}, menu[0])
	assert.Equal(t, web.MenuItem{Href: "/dashboard/admins", Label: "Admins"}, menu[3])
}

func TestOverviewCounts(t *testing.T) {
	sizes := map[string]int{"/product": 3, "/category": 2, "/admin": 1, "/media/color": 4}
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(collection(sizes[r.URL.Path]))
	})

	rec := f.get(t)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<p data-stat="products">3</p>`)
	assert.Contains(t, body, `<p data-stat="categories">2</p>`)
	assert.Contains(t, body, `<p data-stat="admins">1</p>`)
	assert.Contains(t, body, `<p data-stat="colors">4</p>`)
	assert.Contains(t, body, "Welcome, Aziz")
}

func TestOverviewFailureLeavesZeroCounts(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/category" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(collection(5))
	})

	rec := f.get(t)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<p data-stat="products">0</p>`)
	assert.NotContains(t, rec.Body.String(), `>5</p>`)
}

func TestOverviewUnauthorizedLogsOut(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	rec := f.get(t)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	deleted := 0
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.MaxAge < 0 {
			deleted++
		}
	}
	assert.Equal(t, 1, deleted)

	// The session is gone: the next request is bounced by the gate.
	rec = f.get(t)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/login?return_to=")
}
