package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/autek-admin/internal/cookie"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	menu := []MenuItem{
		{Href: "/dashboard", Label: "Dashboard"},
		{Href: "/dashboard/colors", Label: "Colors"},
	}
	rd, err := NewRenderer(menu, func(context.Context) string { return "Aziz" }, discard)
	require.NoError(t, err)
	return rd
}

func TestRenderMarksActiveLink(t *testing.T) {
	rd := testRenderer(t)
	rec := httptest.NewRecorder()
	rd.Render(rec, httptest.NewRequest(http.MethodGet, "/dashboard/colors", nil), http.StatusOK,
		"dashboard", "Colors", map[string]any{"Cards": nil})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "Welcome, Aziz")
	assert.Contains(t, body, `action="/logout"`)
	assert.Contains(t, body, `<a href="/dashboard/colors" class="active">Colors</a>`)
	assert.Contains(t, body, `<a href="/dashboard">Dashboard</a>`)
}

func TestRenderBareHidesShell(t *testing.T) {
	rd := testRenderer(t)
	rec := httptest.NewRecorder()
	rd.RenderBare(rec, httptest.NewRequest(http.MethodGet, "/login", nil), http.StatusUnauthorized,
		"login", "Sign in", map[string]any{"Error": "Wrong password", "Fields": map[string]string{}})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Wrong password")
	assert.NotContains(t, rec.Body.String(), "Welcome, Aziz")
}

func TestRenderUnknownPage(t *testing.T) {
	rd := testRenderer(t)
	rec := httptest.NewRecorder()
	rd.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "missing", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestFlashRoundTrip(t *testing.T) {
	f := NewFlasher(cookie.NewCodec("test-secret", false))

	rec := httptest.NewRecorder()
	f.Success(rec, "Color created successfully!")
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	var got *Flash
	h := f.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FlashFrom(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/dashboard/colors", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.NotNil(t, got)
	assert.Equal(t, Flash{Kind: FlashSuccess, Message: "Color created successfully!"}, *got)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, FlashCookie, cleared[0].Name)
	assert.Less(t, cleared[0].MaxAge, 0)
}

func TestFlashRendersInLayout(t *testing.T) {
	rd := testRenderer(t)
	f := NewFlasher(cookie.NewCodec("test-secret", false))
	rec := httptest.NewRecorder()
	f.Error(rec, "Failed to delete color")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	out := httptest.NewRecorder()
	f.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rd.Render(w, r, http.StatusOK, "dashboard", "Dashboard", map[string]any{"Cards": nil})
	})).ServeHTTP(out, req)

	assert.Contains(t, out.Body.String(), `<div class="alert alert-error" role="status">Failed to delete color</div>`)
}

func TestFlashIgnoresTamperedCookie(t *testing.T) {
	f := NewFlasher(cookie.NewCodec("test-secret", false))
	var got *Flash
	h := f.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FlashFrom(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: FlashCookie, Value: "garbage"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Nil(t, got)
}
