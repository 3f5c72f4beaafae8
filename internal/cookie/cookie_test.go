package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundTrip(t *testing.T) {
	c := NewCodec("s3cret", false)
	sealed, err := c.Seal("console_session", []byte("abc"))
	require.NoError(t, err)

	got, err := c.Open("console_session", sealed)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestOpenRejectsTampering(t *testing.T) {
	c := NewCodec("s3cret", false)
	sealed, err := c.Seal("console_session", []byte("abc"))
	require.NoError(t, err)

	_, err = c.Open("console_flash", sealed)
	assert.ErrorIs(t, err, ErrInvalid, "value must not open under another name")

	_, err = NewCodec("other", false).Open("console_session", sealed)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = c.Open("console_session", sealed[:len(sealed)-2]+"xx")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = c.Open("console_session", "short")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestWriteReadClear(t *testing.T) {
	c := NewCodec("s3cret", true)
	rec := httptest.NewRecorder()
	require.NoError(t, c.Write(rec, "console_flash", []byte("hello"), 120))

	res := rec.Result()
	require.Len(t, res.Cookies(), 1)
	ck := res.Cookies()[0]
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, 120, ck.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)
	got, err := c.Read(req, "console_flash")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	rec = httptest.NewRecorder()
	c.Clear(rec, "console_flash")
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}
