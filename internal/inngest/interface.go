package inngest

import (
	"context"
	"net/http"
)

type InngestClient interface {
	Serve() http.Handler
	SendEvent(ctx context.Context, name string, data map[string]any) error
}

// Refresher reloads club data.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Flusher writes pending batch statistics.
type Flusher interface {
	Flush(ctx context.Context) error
	Pending() int
}
