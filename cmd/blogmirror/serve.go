package main

import (
	"fmt"

	"github.com/fwojciec/blogmirror"
	"github.com/fwojciec/blogmirror/cron"
	bmgin "github.com/fwojciec/blogmirror/gin"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. The HTTP server and the scheduler run
// until the context is canceled or one of them fails.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := bmgin.NewServer(deps.Categories, deps.Articles, deps.Converter, deps.Logger)

	var scheduler *cron.Scheduler
	if !c.NoSchedule {
		if deps.URL == "" {
			err := blogmirror.Errorf(blogmirror.EINVALID, "blog URL required for scheduled syncs (--url, BLOGMIRROR_URL or --no-schedule)")
			fmt.Fprintf(deps.Stderr, "error: %s\n", blogmirror.ErrorMessage(err))
			return err
		}

		var err error
		scheduler, err = cron.NewScheduler(c.Schedule, syncCommand(deps), deps.Logger)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", blogmirror.ErrorMessage(err))
			return err
		}
		scheduler.Stdout = deps.Stdout
		scheduler.Stderr = deps.Stderr
	}

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx, c.Addr)
	})
	if scheduler != nil {
		g.Go(func() error {
			return scheduler.Run(ctx)
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: serve failed: %s\n", err)
		return err
	}
	return nil
}

// syncCommand returns the command line of a child sync run against the
// same database, blog, rules and log settings as this process.
func syncCommand(deps *Dependencies) []string {
	args := []string{deps.Executable, "--db", deps.DBPath, "--url", deps.URL}
	if deps.RulesPath != "" {
		args = append(args, "--rules", deps.RulesPath)
	}
	if deps.LogLevel != "" {
		args = append(args, "--log-level", deps.LogLevel)
	}
	if deps.LogFormat != "" {
		args = append(args, "--log-format", deps.LogFormat)
	}
	return append(args, "sync")
}
