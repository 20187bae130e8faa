package statistics

import "context"

type contextKey string

const waitKey contextKey = "wait"

// WithWait marks ctx so that a cache miss blocks until the real value is
// computed instead of returning the placeholder. The placeholder is still
// returned if ctx ends or the computation fails.
func WithWait(ctx context.Context) context.Context {
	return context.WithValue(ctx, waitKey, true)
}

// Waiting reports whether ctx was marked with WithWait.
func Waiting(ctx context.Context) bool {
	wait, ok := ctx.Value(waitKey).(bool)
	return ok && wait
}
