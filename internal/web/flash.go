package web

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/georgemunganga/autek-admin/internal/cookie"
)

const (
	FlashCookie = "console_flash"
	flashMaxAge = 120
)

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot banner carried across a redirect.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

type flashKey struct{}

// Flasher stores flashes in a short-lived sealed cookie.
type Flasher struct {
	cookies *cookie.Codec
}

func NewFlasher(cookies *cookie.Codec) *Flasher { return &Flasher{cookies: cookies} }

func (f *Flasher) Set(w http.ResponseWriter, fl Flash) {
	b, err := json.Marshal(fl)
	if err != nil {
		return
	}
	_ = f.cookies.Write(w, FlashCookie, b, flashMaxAge)
}

func (f *Flasher) Success(w http.ResponseWriter, msg string) {
	f.Set(w, Flash{Kind: FlashSuccess, Message: msg})
}

func (f *Flasher) Error(w http.ResponseWriter, msg string) {
	f.Set(w, Flash{Kind: FlashError, Message: msg})
}

// Middleware moves a pending flash from its cookie onto the request context.
// The cookie is cleared whether or not it could be read.
func (f *Flasher) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie(FlashCookie); err == nil {
			if raw, err := f.cookies.Read(r, FlashCookie); err == nil {
				var fl Flash
				if json.Unmarshal(raw, &fl) == nil && fl.Message != "" {
					r = r.WithContext(context.WithValue(r.Context(), flashKey{}, &fl))
				}
			}
			f.cookies.Clear(w, FlashCookie)
		}
		next.ServeHTTP(w, r)
	})
}

func FlashFrom(ctx context.Context) *Flash {
	fl, _ := ctx.Value(flashKey{}).(*Flash)
	return fl
}
