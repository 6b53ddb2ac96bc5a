// Package scheduler runs the periodic portfolio re-assessment.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/contractwatch/riskengine/internal/application/usecase"
)

// Reassessor re-scores the contract portfolio.
type Reassessor interface {
	Execute(ctx context.Context) (usecase.ReassessReport, error)
}

// Scheduler triggers a Reassessor on a cron schedule. Runs never overlap; a
// tick that fires while the previous run is still going is skipped.
type Scheduler struct {
	cron       *cron.Cron
	reassessor Reassessor
	timeout    time.Duration
	logger     *slog.Logger
	ctx        context.Context
	cancel     context.CancelFunc
}

// New creates a Scheduler for the standard five-field cron spec. An empty
// spec returns nil, meaning scheduling is disabled.
func New(spec string, reassessor Reassessor, timeout time.Duration, logger *slog.Logger) (*Scheduler, error) {
	if spec == "" {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	cl := cronLogger{logger: logger}
	s := &Scheduler{
		cron:       cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		reassessor: reassessor,
		timeout:    timeout,
		logger:     logger,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	if _, err := s.cron.AddFunc(spec, s.RunNow); err != nil {
		s.cancel()
		return nil, fmt.Errorf("invalid reassess schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins firing the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", slog.Int("entries", len(s.cron.Entries())))
}

// Stop halts the schedule, cancels an in-flight run and waits for it to
// return or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	s.cancel()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	s.logger.Info("scheduler stopped")
}

// RunNow runs one re-assessment synchronously.
func (s *Scheduler) RunNow() {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	report, err := s.reassessor.Execute(ctx)
	if err != nil {
		s.logger.Error("portfolio reassessment failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("portfolio reassessment finished",
		slog.Int("assessed", report.Assessed),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
		slog.Duration("took", time.Since(start)),
	)
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
