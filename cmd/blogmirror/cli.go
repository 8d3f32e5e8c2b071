package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/blogmirror"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DBPath     string
	RulesPath  string
	URL        string
	LogLevel   string
	LogFormat  string
	Executable string

	Categories blogmirror.CategoryService
	Listings   blogmirror.ListingService
	Details    blogmirror.DetailService
	Articles   blogmirror.ArticleService
	Locker     blogmirror.RunLocker
	Fetcher    blogmirror.Fetcher
	Extractor  blogmirror.Extractor
	Converter  blogmirror.Converter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string `default:"blogmirror.db" env:"BLOGMIRROR_DB" help:"SQLite database path"`
	URL       string `env:"BLOGMIRROR_URL" help:"Front page URL of the blog to mirror"`
	Rules     string `env:"BLOGMIRROR_RULES" type:"path" help:"YAML file overriding the site's selectors and patterns"`
	LogLevel  string `default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFormat string `default:"text" enum:"text,json" help:"Log format (text, json)"`

	Sync       SyncCmd       `cmd:"" help:"Run one sync of the blog into the database"`
	Serve      ServeCmd      `cmd:"" help:"Serve the mirror over HTTP and sync on a schedule"`
	Categories CategoriesCmd `cmd:"" help:"List mirrored categories"`
	Article    ArticleCmd    `cmd:"" help:"Print one mirrored article"`
	Export     ExportCmd     `cmd:"" help:"Export mirrored articles as Markdown files"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	NoRetry   bool          `help:"Fail on the first fetch error instead of retrying"`
	MaxPages  int           `default:"1000" help:"Maximum pages per category list"`
	RateLimit float64       `default:"2" help:"Requests per second per host (0 disables)"`
	Timeout   time.Duration `default:"30s" help:"Per-request timeout"`
	UserAgent string        `default:"blogmirror/1.0" help:"User-Agent header"`
	NoLock    bool          `help:"Do not take the run lock"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr       string `default:":3000" env:"BLOGMIRROR_ADDR" help:"HTTP listen address"`
	Schedule   string `default:"${schedule}" env:"BLOGMIRROR_SCHEDULE" help:"Cron schedule for syncs"`
	NoSchedule bool   `help:"Serve only, never sync"`
}

// CategoriesCmd is the "categories" subcommand.
type CategoriesCmd struct{}

// ArticleCmd is the "article" subcommand.
type ArticleCmd struct {
	ID       string `arg:"" help:"Post ID"`
	Markdown bool   `short:"m" help:"Print the body as Markdown"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Out      string `short:"o" default:"export" type:"path" help:"Output directory (replaced on success)"`
	Category string `help:"Export only this category"`
	Tag      string `help:"Export only posts with this tag"`
}
