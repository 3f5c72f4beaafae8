package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/autek-admin/internal/apperr"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/", WithHTTPClient(srv.Client()))
}

func TestListAttachesBearerToken(t *testing.T) {
	var gotAuth, gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `[{"id":1,"title":"Red","hex":"#ff0000"},{"id":2,"title":"Blue"}]`)
	})

	ctx := WithToken(context.Background(), "tok-123")
	records, err := c.List(ctx, "/color", url.Values{"productId": {"7"}})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "/api/color", gotPath)
	assert.Equal(t, "productId=7", gotQuery)
	assert.Equal(t, "1", records[0].ID())
	assert.Equal(t, "Red", Text(records[0]["title"]))
}

func TestListWithoutTokenSendsNoAuthorization(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `[]`)
	})
	_, err := c.List(context.Background(), "/ram", nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestListNonArrayIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[]}`)
	})
	records, err := c.List(context.Background(), "/brand", nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestUnauthorizedResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Unauthorized"}`)
	})
	_, err := c.List(WithToken(context.Background(), "stale"), "/product", nil)
	require.Error(t, err)
	assert.True(t, apperr.IsUnauthorized(err))
}

func TestRemoteMessageIsSurfaced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":["title should not be empty","price must be a number"]}`)
	})
	err := c.Create(context.Background(), "/product", JSON(map[string]any{"title": ""}))
	require.Error(t, err)
	assert.Equal(t, "title should not be empty, price must be a number", apperr.PublicMessage(err, "fallback"))
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := New(base)
	err := c.Delete(context.Background(), "/ram", "3")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Network))
	assert.Equal(t, apperr.NetworkMessage, apperr.PublicMessage(err, "fallback"))
}

func TestUpdateUsesPatchOnItemPath(t *testing.T) {
	var method, path string
	var payload map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusOK)
	})
	err := c.Update(context.Background(), "/ram", "4", JSON(map[string]any{"ram": 16}))
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, method)
	assert.Equal(t, "/api/ram/4", path)
	assert.Equal(t, float64(16), payload["ram"])
}

func TestMultipartBody(t *testing.T) {
	var fields map[string][]string
	var fileBody string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		fields = r.MultipartForm.Value
		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "main.png", hdr.Filename)
		b, _ := io.ReadAll(f)
		fileBody = string(b)
		w.WriteHeader(http.StatusCreated)
	})

	body := Multipart(map[string]string{"product_id": "5", "is_main": "true"},
		File{Field: "image", Filename: "main.png", ContentType: "image/png", Content: strings.NewReader("PNG")})
	require.NoError(t, c.Create(context.Background(), "/product-image", body))
	assert.Equal(t, []string{"5"}, fields["product_id"])
	assert.Equal(t, []string{"true"}, fields["is_main"])
	assert.Equal(t, "PNG", fileBody)
}

func TestRegistryFallsBackToPrimary(t *testing.T) {
	primary, media := New("http://primary/api"), New("http://media/api")
	reg := Registry{"": primary, "media": media}
	assert.Same(t, media, reg.For("media"))
	assert.Same(t, primary, reg.For(""))
	assert.Same(t, primary, reg.For("unknown"))
}

func TestRecordLookup(t *testing.T) {
	r := Record{"id": json.Number("9"), "category": map[string]any{"title": "Phones"}, "wifi": true}
	assert.Equal(t, "Phones", Text(r.Lookup("category.title")))
	assert.Nil(t, r.Lookup("brand.title"))
	assert.Equal(t, "9", r.ID())
	assert.True(t, Truthy(r["wifi"]))
	assert.Equal(t, "", Text(r["category"]))
}
