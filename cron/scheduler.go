// Package cron runs the sync command on a schedule using robfig/cron.
package cron

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/fwojciec/blogmirror"
	"github.com/robfig/cron/v3"
)

// DefaultSchedule runs a sync every half hour.
const DefaultSchedule = "@every 30m"

// Scheduler starts Command as a subprocess on every tick of Schedule.
// The child's output is forwarded and its exit code logged. A tick that
// fires while the previous run is still going is skipped.
type Scheduler struct {
	Command []string
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger

	schedule string
}

// NewScheduler validates schedule and returns a Scheduler for command.
// Returns EINVALID for an unparseable schedule or an empty command.
func NewScheduler(schedule string, command []string, logger *slog.Logger) (*Scheduler, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, blogmirror.WrapError(blogmirror.EINVALID, err, "invalid schedule %q", schedule)
	}
	if len(command) == 0 {
		return nil, blogmirror.Errorf(blogmirror.EINVALID, "scheduled command required")
	}
	return &Scheduler{
		Command:  command,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Logger:   logger,
		schedule: schedule,
	}, nil
}

// Run fires the command on schedule until ctx is canceled, then waits for
// a running command to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	logger := cronLogger{s.Logger}
	c := cron.New(cron.WithLogger(logger), cron.WithChain(cron.SkipIfStillRunning(logger)))

	if _, err := c.AddFunc(s.schedule, func() {
		_, _ = s.RunOnce(ctx)
	}); err != nil {
		return blogmirror.WrapError(blogmirror.EINVALID, err, "invalid schedule %q", s.schedule)
	}

	s.Logger.Info("scheduler started", "schedule", s.schedule)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	s.Logger.Info("scheduler stopped")
	return nil
}

// RunOnce runs the command and returns its exit code. A non-zero exit is
// logged but is not an error; err is set only when the command could not
// be started.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	begin := time.Now()
	s.Logger.Info("scheduled sync started", "command", s.Command)

	cmd := exec.CommandContext(ctx, s.Command[0], s.Command[1:]...)
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		s.Logger.Error("scheduled sync failed to start", "err", err)
		return -1, err
	}

	code := cmd.ProcessState.ExitCode()
	level := slog.LevelInfo
	if code != 0 {
		level = slog.LevelWarn
	}
	s.Logger.Log(ctx, level, "scheduled sync finished", "code", code, "duration", time.Since(begin))
	return code, nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "err", err)...)
}
