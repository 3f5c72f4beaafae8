package apiclient

import "context"

type ctxKey int

const tokenKey ctxKey = iota

// WithToken stores the bearer credential used for every call made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFrom returns the bearer credential stored in ctx, if any.
func TokenFrom(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenKey).(string)
	return tok, ok && tok != ""
}
