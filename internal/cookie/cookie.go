// Package cookie seals small values into tamper-proof, encrypted cookies.
package cookie

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"net/http"

	"golang.org/x/crypto/nacl/secretbox"
)

var ErrInvalid = errors.New("invalid cookie")

const nonceSize = 24

// Codec encrypts cookie values with NaCl secretbox. The cookie name is sealed
// together with the value so a value cannot be replayed under another name.
type Codec struct {
	key    [32]byte
	Secure bool
}

func NewCodec(secret string, secure bool) *Codec {
	return &Codec{key: sha256.Sum256([]byte(secret)), Secure: secure}
}

// Seal returns the base64url form of nonce || secretbox(name 0x00 value).
func (c *Codec) Seal(name string, value []byte) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}
	msg := make([]byte, 0, len(name)+1+len(value))
	msg = append(msg, name...)
	msg = append(msg, 0)
	msg = append(msg, value...)
	out := secretbox.Seal(nonce[:], msg, &nonce, &c.key)
	return base64.RawURLEncoding.EncodeToString(out), nil
}

func (c *Codec) Open(name, sealed string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return nil, ErrInvalid
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	msg, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &c.key)
	if !ok {
		return nil, ErrInvalid
	}
	prefix := append([]byte(name), 0)
	if !bytes.HasPrefix(msg, prefix) {
		return nil, ErrInvalid
	}
	return msg[len(prefix):], nil
}

// Write sets a sealed, HttpOnly, SameSite=Lax cookie on path "/".
// maxAge of 0 makes it a browser-session cookie.
func (c *Codec) Write(w http.ResponseWriter, name string, value []byte, maxAge int) error {
	sealed, err := c.Seal(name, value)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    sealed,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read returns the opened value of the named cookie.
func (c *Codec) Read(r *http.Request, name string) ([]byte, error) {
	ck, err := r.Cookie(name)
	if err != nil {
		return nil, err
	}
	return c.Open(name, ck.Value)
}

func (c *Codec) Clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
