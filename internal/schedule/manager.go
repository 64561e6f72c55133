// Package schedule wraps the cron engine that drives periodic ingestion
// refreshes and simulated live updates.
package schedule

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type Manager struct {
	engine *cron.Cron
	logger zerolog.Logger
}

func NewManager(logger zerolog.Logger) *Manager {
	return &Manager{
		engine: cron.New(),
		logger: logger.With().Str("component", "schedule").Logger(),
	}
}

// AddEvery registers fn to run at a fixed interval.
func (m *Manager) AddEvery(name string, every time.Duration, fn func()) error {
	spec := fmt.Sprintf("@every %s", every)
	if _, err := m.engine.AddFunc(spec, fn); err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	m.logger.Info().Str("job", name).Dur("every", every).Msg("job scheduled")
	return nil
}

func (m *Manager) Start() {
	m.engine.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (m *Manager) Stop() {
	ctx := m.engine.Stop()
	<-ctx.Done()
}
