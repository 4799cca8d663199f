package ports

import "context"

type accessTokenKey struct{}

// WithAccessToken returns a context carrying the session's bearer credential.
// Outbound API clients attach it to every request made with that context.
func WithAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessTokenFrom returns the bearer credential stored by WithAccessToken.
func AccessTokenFrom(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(accessTokenKey{}).(string)
	return tok, ok && tok != ""
}
