package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/wptransfer"
)

// Run executes the clean command.
func (c *CleanCmd) Run(deps *Dependencies) error {
	input, err := readInput(c.File, deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wptransfer.ErrorMessage(err))
		return err
	}

	var out string
	if c.Text {
		out, err = deps.Cleaner.Text(input)
	} else {
		out, err = deps.Cleaner.Clean(input)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wptransfer.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, out)
	return nil
}

// readInput returns the contents of path, or of r when path is empty.
func readInput(path string, r io.Reader) (string, error) {
	if path == "" {
		if r == nil {
			return "", wptransfer.Errorf(wptransfer.EINVALID, "no input")
		}
		data, err := io.ReadAll(r)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
