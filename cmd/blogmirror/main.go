package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/blogmirror"
	"github.com/fwojciec/blogmirror/cron"
	"github.com/fwojciec/blogmirror/goquery"
	"github.com/fwojciec/blogmirror/htmltomarkdown"
	bmhttp "github.com/fwojciec/blogmirror/http"
	"github.com/fwojciec/blogmirror/sqlite"
	"github.com/fwojciec/blogmirror/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

// CommandError wraps an error returned by a subcommand. Subcommands report
// their own failures on stderr, so main only sets the exit status.
type CommandError struct {
	Err error
}

func (e *CommandError) Error() string { return e.Err.Error() }

func (e *CommandError) Unwrap() error { return e.Err }

// Main represents the program.
type Main struct {
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Executable is the binary the scheduler starts for each sync.
	// Defaults to the running binary.
	Executable string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}
	return &Main{Executable: exe}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := newParser(cli, stdout, stderr)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'blogmirror --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger, err := newLogger(stderr, cli.LogLevel, cli.LogFormat)
	if err != nil {
		return err
	}

	rules := blogmirror.DefaultSiteRules()
	if cli.Rules != "" {
		if rules, err = yaml.LoadRules(cli.Rules); err != nil {
			return err
		}
	}

	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set BLOGMIRROR_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	defer m.Close()

	deps := &Dependencies{
		Ctx:        ctx,
		Stdout:     stdout,
		Stderr:     stderr,
		Logger:     logger,
		DBPath:     cli.DB,
		RulesPath:  cli.Rules,
		URL:        cli.URL,
		LogLevel:   cli.LogLevel,
		LogFormat:  cli.LogFormat,
		Executable: m.Executable,
		Categories: sqlite.NewCategoryService(m.DB),
		Listings:   sqlite.NewListingService(m.DB),
		Details:    sqlite.NewDetailService(m.DB),
		Articles:   sqlite.NewArticleService(m.DB),
		Locker:     sqlite.NewLockService(m.DB),
		Converter:  htmltomarkdown.NewConverter(converterOptions(cli.URL)...),
	}

	if cmd == "sync" {
		extractor, err := goquery.NewExtractor(rules)
		if err != nil {
			return err
		}
		fetcher := bmhttp.NewFetcher(
			bmhttp.WithTimeout(cli.Sync.Timeout),
			bmhttp.WithUserAgent(cli.Sync.UserAgent),
			bmhttp.WithRateLimit(cli.Sync.RateLimit),
		)
		defer fetcher.Close()

		deps.Extractor = extractor
		deps.Fetcher = fetcher
	}

	if err := kongCtx.Run(deps); err != nil {
		return &CommandError{Err: err}
	}
	return nil
}

// newParser builds the kong parser for cli. Parse errors and help are
// written to stdout and stderr instead of exiting the process.
func newParser(cli *CLI, stdout, stderr io.Writer) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("blogmirror"),
		kong.Description("Mirror a blog's categories, post lists and posts into SQLite and serve them."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"schedule": cron.DefaultSchedule},
	)
}

// converterOptions resolves relative links in exported Markdown against the
// blog's origin.
func converterOptions(blogURL string) []htmltomarkdown.Option {
	u, err := url.Parse(blogURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil
	}
	return []htmltomarkdown.Option{htmltomarkdown.WithDomain(u.Scheme + "://" + u.Host)}
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, blogmirror.Errorf(blogmirror.EINVALID, "invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, blogmirror.Errorf(blogmirror.EINVALID, "invalid log format %q", format)
	}
}
