package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/wptransfer"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	if c.ID != "" {
		return c.show(deps)
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, wptransfer.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wptransfer.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'wptransfer transfer' to start one.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(deps.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Started", "Duration", "Source", "Total", "Successful", "Failed"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Second),
			r.SourceURL,
			r.Total,
			r.Successful,
			r.Failures,
		})
	}
	t.Render()
	return nil
}

func (c *RunsCmd) show(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wptransfer.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run %s: %d successful, %d failed (%s)\n",
		run.ID, run.Successful, run.Failures, run.OutputDir)

	t := table.NewWriter()
	t.SetOutputMirror(deps.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Slug", "Title", "Category", "Result"})
	for _, r := range run.Results {
		status := r.OutputPath
		if !r.Success() {
			status = "failed: " + r.Err.Error()
		}
		t.AppendRow(table.Row{r.Slug, wptransfer.Truncate(r.Title, 40), r.Category, status})
	}
	t.Render()
	return nil
}
