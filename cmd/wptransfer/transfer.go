package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/wptransfer"
	"github.com/fwojciec/wptransfer/transfer"
)

// Run executes the transfer command.
func (c *TransferCmd) Run(deps *Dependencies) error {
	if deps.Transferer == nil {
		err := wptransfer.Errorf(wptransfer.EINTERNAL, "transfer not configured")
		fmt.Fprintf(deps.Stderr, "error: %s\n", wptransfer.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Fetching posts from %s\n", deps.Transferer.SourceURL)

	progress := func(event transfer.ProgressEvent) {
		switch event.Type {
		case transfer.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d posts\n", event.Total)
		case transfer.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.Slug)
		case transfer.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.Slug, wptransfer.ErrorMessage(event.Error))
		case transfer.ProgressFinished:
			// Summary printed after the run completes
		}
	}

	result, err := deps.Transferer.Run(deps.Ctx, progress)
	if result == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wptransfer.ErrorMessage(err))
		return err
	}

	manifestPath := filepath.Join(deps.Transferer.OutputDir, ManifestFile)
	printSummary(deps.Stdout, result, manifestPath)

	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: run interrupted: %s\n", wptransfer.ErrorMessage(err))
		return err
	}
	return nil
}
