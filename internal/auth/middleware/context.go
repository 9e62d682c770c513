package auth

import "context"

type ctxKey string

const (
	ctxKeySub   ctxKey = "sub"
	ctxKeyEmail ctxKey = "email"
	ctxKeyName  ctxKey = "name"
)

func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, ctxKeySub, sub)
}

func SubjectFromContext(ctx context.Context) string {
	return str(ctx, ctxKeySub)
}

// WithProfile carries the signed-in teacher's denormalized identity; it is
// stamped onto rubrics at save time.
func WithProfile(ctx context.Context, email, name string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyEmail, email)
	return context.WithValue(ctx, ctxKeyName, name)
}

func EmailFromContext(ctx context.Context) string { return str(ctx, ctxKeyEmail) }
func NameFromContext(ctx context.Context) string  { return str(ctx, ctxKeyName) }

func str(ctx context.Context, k ctxKey) string {
	if v := ctx.Value(k); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
