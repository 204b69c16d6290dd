package auth

import "context"

type ctxKey string

const userContextKey ctxKey = "levelup.auth.user"

func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userContextKey, userID)
}

func UserFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(userContextKey)
	id, ok := v.(string)
	return id, ok && id != ""
}
