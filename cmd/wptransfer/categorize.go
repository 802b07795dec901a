package main

import (
	"fmt"

	"github.com/fwojciec/wptransfer"
)

// Run executes the categorize command.
func (c *CategorizeCmd) Run(deps *Dependencies) error {
	var content string
	if c.File != "" {
		var err error
		if content, err = readInput(c.File, nil); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wptransfer.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintln(deps.Stdout, deps.Categorizer.Categorize(c.Title, content))
	return nil
}
