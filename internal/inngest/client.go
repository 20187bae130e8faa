package inngest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"
)

// New registers the refresh and flush functions on inngestClient. flusher may
// be nil when exporting is disabled; the flush function is then not created.
func New(inngestClient inngestgo.Client, feed Refresher, flusher Flusher, flushCron string) (InngestClient, error) {
	c := &client{
		inngestClient: inngestClient,
		feed:          feed,
		flusher:       flusher,
	}
	if err := c.createRefreshFunction(); err != nil {
		return nil, err
	}
	if flusher != nil {
		if err := c.createFlushFunction(flushCron); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *client) createRefreshFunction() error {
	_, err := inngestgo.CreateFunction(
		c.inngestClient,
		inngestgo.FunctionOpts{
			ID:   "club-data-refresh",
			Name: "Refresh club data",
		},
		inngestgo.EventTrigger(EventClubDataChanged, nil),
		func(ctx context.Context, input inngestgo.Input[map[string]any]) (any, error) {
			log.Info("Club data change event received")
			// Steps are retried by Inngest on failure.
			return step.Run(ctx, "refresh-feed", func(ctx context.Context) (string, error) {
				return "OK", c.refresh(ctx)
			})
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh function: %w", err)
	}
	return nil
}

func (c *client) createFlushFunction(cron string) error {
	_, err := inngestgo.CreateFunction(
		c.inngestClient,
		inngestgo.FunctionOpts{
			ID:   "statistics-flush",
			Name: "Flush batch statistics",
		},
		inngestgo.CronTrigger(cron),
		func(ctx context.Context, input inngestgo.Input[map[string]any]) (any, error) {
			return step.Run(ctx, "flush-pending", c.flush)
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create flush function: %w", err)
	}
	return nil
}

func (c *client) refresh(ctx context.Context) error {
	if err := c.feed.Refresh(ctx); err != nil {
		log.Error("Inngest refresh failed", "error", err)
		return err
	}
	return nil
}

// flush writes the batch only when something is pending.
func (c *client) flush(ctx context.Context) (FlushResult, error) {
	pending := c.flusher.Pending()
	if pending == 0 {
		log.Debug("No pending statistics to flush")
		return FlushResult{}, nil
	}
	if err := c.flusher.Flush(ctx); err != nil {
		log.Error("Inngest flush failed", "pending", pending, "error", err)
		return FlushResult{Pending: pending}, err
	}
	return FlushResult{Pending: pending, Flushed: true}, nil
}

func (c *client) Serve() http.Handler {
	return c.inngestClient.Serve()
}

func (c *client) SendEvent(ctx context.Context, name string, data map[string]any) error {
	if _, err := c.inngestClient.Send(ctx, inngestgo.Event{Name: name, Data: data}); err != nil {
		return fmt.Errorf("failed to send inngest event %s: %w", name, err)
	}
	return nil
}
