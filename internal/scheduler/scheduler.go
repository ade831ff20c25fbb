package scheduler

import (
	"context"

	"proxboard/config"
	"proxboard/internal/daemon"
	"proxboard/internal/metrics"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// NewScheduler probes the balancer container on a fixed schedule so
// the daemon-up gauge and logs reflect outages without anyone polling
// the status endpoint.
func NewScheduler(lc fx.Lifecycle, cfg *config.Config, controller daemon.Controller, m *metrics.Metrics) *cron.Cron {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.DowOptional | cron.Descriptor)
	c := cron.New(cron.WithParser(parser))

	schedule := cfg.Scheduler.ProbeSchedule
	probe := newDaemonProbe(controller, m)
	_, err := c.AddFunc(schedule, probe)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", schedule).Msg("Failed to add cron job")
		return nil
	}
	log.Info().Str("schedule", schedule).Msg("Scheduled balancer daemon probe")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msg("Starting cron scheduler")
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Stopping cron scheduler...")
			stopCtx := c.Stop()
			select {
			case <-stopCtx.Done():
				log.Info().Msg("Cron scheduler stopped gracefully.")
				return nil
			case <-ctx.Done():
				log.Error().Msg("Context cancelled while waiting for cron scheduler to stop.")
				return ctx.Err()
			}
		},
	})

	return c
}

// newDaemonProbe returns the probe closure. Cron runs it from a single
// goroutine, so the transition state needs no locking.
func newDaemonProbe(controller daemon.Controller, m *metrics.Metrics) func() {
	known := false
	running := false
	return func() {
		status := controller.Status(context.Background())
		if status.Running {
			m.DaemonUp.Set(1)
		} else {
			m.DaemonUp.Set(0)
		}

		if known && running == status.Running {
			return
		}
		if status.Running {
			log.Info().Str("container", status.ContainerName).Str("status", status.Status).Msg("Balancer daemon is running")
		} else {
			log.Warn().Str("container", status.ContainerName).Str("status", status.Status).Msg("Balancer daemon is not running")
		}
		known = true
		running = status.Running
	}
}
