// Package jobs provides scheduled background tasks for the order engine,
// built on github.com/robfig/cron/v3.
//
// The only job today is DisplayRefreshJob, which periodically broadcasts a
// full live-orders snapshot so displays recover from missed push events
// without reconnecting.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"rms/internal/core/application/usecases/queries"
	"rms/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DisplayRefreshJob periodically pushes the complete set of live orders to
// every connected display. Push events are best-effort; this snapshot is
// the reconciliation path for displays that missed one.
type DisplayRefreshJob struct {
	handler  queries.GetLiveOrdersQueryHandler
	notifier ports.Notifier
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDisplayRefreshJob creates a job broadcasting live-order snapshots
// every 30 seconds.
func NewDisplayRefreshJob(
	handler queries.GetLiveOrdersQueryHandler,
	notifier ports.Notifier,
	logger *slog.Logger,
) *DisplayRefreshJob {
	return &DisplayRefreshJob{
		handler:  handler,
		notifier: notifier,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "display_refresh_job"),
	}
}

// Start begins the snapshot broadcast schedule.
func (j *DisplayRefreshJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		views, err := j.handler.Handle(ctx, queries.NewGetLiveOrdersQuery())
		if err != nil {
			j.logger.ErrorContext(ctx, "Display refresh job failed", "error", err)
			return
		}

		j.notifier.Publish(ports.Event{
			Type: ports.EventLiveSnapshot,
			At:   time.Now().UTC(),
			Data: views,
		})
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Display refresh job started (running every 30 seconds)")
	return nil
}

// Stop stops the snapshot broadcasts.
func (j *DisplayRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Display refresh job stopped")
}
