package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/blogmirror"
)

// Run executes the article command.
func (c *ArticleCmd) Run(deps *Dependencies) error {
	article, err := deps.Articles.FindArticleByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blogmirror.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s\n", article.Title)
	fmt.Fprintf(deps.Stdout, "URL:      %s\n", article.URL)
	fmt.Fprintf(deps.Stdout, "Category: %s\n", article.CategoryID)
	if !article.CreatedTime.IsZero() {
		fmt.Fprintf(deps.Stdout, "Created:  %s\n", article.CreatedTime.Format("2006-01-02 15:04 MST"))
	}
	if len(article.Tags) > 0 {
		fmt.Fprintf(deps.Stdout, "Tags:     %s\n", strings.Join(article.Tags, ", "))
	}
	fmt.Fprintln(deps.Stdout)

	if article.Content == "" {
		fmt.Fprintln(deps.Stdout, "(body not mirrored yet)")
		return nil
	}

	body := article.Content
	if c.Markdown {
		if body, err = deps.Converter.Convert(article.Content); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", blogmirror.ErrorMessage(err))
			return err
		}
	}
	fmt.Fprintln(deps.Stdout, body)
	return nil
}
