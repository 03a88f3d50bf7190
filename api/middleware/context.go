package middleware

import "context"

type contextKey string

const (
	ctxSessionEmail contextKey = "session_email"
	ctxSessionRole  contextKey = "session_role"
	ctxCartToken    contextKey = "cart_token"
)

func SessionEmailFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionEmail).(string); ok {
		return v
	}
	return ""
}

func SessionRoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionRole).(string); ok {
		return v
	}
	return ""
}

func CartTokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxCartToken).(string); ok {
		return v
	}
	return ""
}

// WithSessionEmail injects the authenticated customer email into the context.
func WithSessionEmail(ctx context.Context, email string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionEmail, email)
}

// WithCartToken injects the device cart token into the context.
func WithCartToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCartToken, token)
}
