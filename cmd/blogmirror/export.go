package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/blogmirror"
	"github.com/fwojciec/blogmirror/fs"
)

// exportPageSize is the number of articles read per query.
const exportPageSize = 100

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	if c.Category != "" && c.Tag != "" {
		err := blogmirror.Errorf(blogmirror.EINVALID, "--category and --tag cannot be combined")
		fmt.Fprintf(deps.Stderr, "error: %s\n", blogmirror.ErrorMessage(err))
		return err
	}

	out := filepath.Clean(c.Out)
	store := fs.NewExportStore(filepath.Dir(out), filepath.Base(out))

	written, pending, err := c.export(deps, store)
	if err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", blogmirror.ErrorMessage(err))
		return err
	}
	if err := store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blogmirror.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d articles to %s", written, out)
	if pending > 0 {
		fmt.Fprintf(deps.Stdout, " (%d without a mirrored body)", pending)
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}

func (c *ExportCmd) export(deps *Dependencies, store blogmirror.ArticleExporter) (written, pending int, err error) {
	filter := blogmirror.ArticleFilter{Limit: exportPageSize}
	if c.Category != "" {
		filter.CategoryID = &c.Category
	}
	if c.Tag != "" {
		filter.Tag = &c.Tag
	}

	for {
		articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
		if err != nil {
			return written, pending, err
		}

		for _, article := range articles {
			if article.Content == "" {
				pending++
				continue
			}
			markdown, err := deps.Converter.Convert(article.Content)
			if err != nil {
				return written, pending, blogmirror.WrapError(blogmirror.ErrorCode(err), err, "convert article %s", article.ID)
			}
			if err := store.Save(deps.Ctx, article, markdown); err != nil {
				return written, pending, err
			}
			written++
		}

		if len(articles) < exportPageSize {
			return written, pending, nil
		}
		filter.Offset += len(articles)
	}
}
