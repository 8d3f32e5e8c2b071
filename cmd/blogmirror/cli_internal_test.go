package main

import (
	"io"
	"testing"

	"github.com/fwojciec/blogmirror/cron"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParser_ServeDefaults(t *testing.T) {
	t.Parallel()

	cli := &CLI{}
	parser, err := newParser(cli, io.Discard, io.Discard)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"serve"})

	require.NoError(t, err)
	assert.Equal(t, cron.DefaultSchedule, cli.Serve.Schedule)
	assert.Equal(t, ":3000", cli.Serve.Addr)
}

func TestSyncCommand(t *testing.T) {
	t.Parallel()

	t.Run("forwards database, blog and log settings", func(t *testing.T) {
		t.Parallel()

		deps := &Dependencies{
			Executable: "/usr/local/bin/blogmirror",
			DBPath:     "/var/lib/blogmirror.db",
			URL:        "http://blog.example.com/u/1",
			LogLevel:   "debug",
			LogFormat:  "json",
		}

		assert.Equal(t, []string{
			"/usr/local/bin/blogmirror",
			"--db", "/var/lib/blogmirror.db",
			"--url", "http://blog.example.com/u/1",
			"--log-level", "debug",
			"--log-format", "json",
			"sync",
		}, syncCommand(deps))
	})

	t.Run("includes the rules file when set", func(t *testing.T) {
		t.Parallel()

		deps := &Dependencies{
			Executable: "blogmirror",
			DBPath:     "blog.db",
			URL:        "http://blog.example.com/u/1",
			RulesPath:  "/etc/blogmirror/rules.yaml",
		}

		assert.Equal(t, []string{
			"blogmirror",
			"--db", "blog.db",
			"--url", "http://blog.example.com/u/1",
			"--rules", "/etc/blogmirror/rules.yaml",
			"sync",
		}, syncCommand(deps))
	})
}
