package main

import (
	"fmt"

	"github.com/fwojciec/blogmirror"
)

// Run executes the categories command.
func (c *CategoriesCmd) Run(deps *Dependencies) error {
	categories, err := deps.Categories.FindCategories(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blogmirror.ErrorMessage(err))
		return err
	}

	if len(categories) == 0 {
		fmt.Fprintln(deps.Stdout, "No categories found. Use 'blogmirror sync' to mirror the blog.")
		return nil
	}

	for _, cat := range categories {
		fmt.Fprintf(deps.Stdout, "%s  %s  (%d)  %s\n", cat.ID, cat.Name, cat.PostCount, cat.URL)
	}
	return nil
}
