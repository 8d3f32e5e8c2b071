package main

import (
	"fmt"

	"github.com/fwojciec/blogmirror"
	"github.com/fwojciec/blogmirror/crawl"
	bmslog "github.com/fwojciec/blogmirror/slog"
)

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	if deps.URL == "" {
		err := blogmirror.Errorf(blogmirror.EINVALID, "blog URL required (--url or BLOGMIRROR_URL)")
		fmt.Fprintf(deps.Stderr, "error: %s\n", blogmirror.ErrorMessage(err))
		return err
	}

	pipeline := &crawl.Pipeline{
		Fetcher:    bmslog.NewLoggingFetcher(deps.Fetcher, deps.Logger),
		Extractor:  bmslog.NewLoggingExtractor(deps.Extractor, deps.Logger),
		Categories: deps.Categories,
		Listings:   deps.Listings,
		Details:    deps.Details,
		MaxPages:   c.MaxPages,
		Progress:   bmslog.NewProgressLogger(deps.Logger),
	}
	if !c.NoLock {
		pipeline.Locker = deps.Locker
	}
	if !c.NoRetry {
		pipeline.RetryDelays = crawl.DefaultRetryDelays()
	}

	result, err := pipeline.Run(deps.Ctx, deps.URL)
	if result != nil {
		deps.Logger.Info("sync finished",
			"run", result.RunID,
			"categories", result.Categories,
			"listings", result.Listings,
			"posts", result.Posts,
			"fetched", result.Fetched,
			"skipped", result.Skipped,
			"err", err,
		)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: sync failed: %s\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Synced %s\n", crawl.FormatResult(result))
	return nil
}
