package main

import (
	"fmt"

	"github.com/revelaction/srlproj/project"
	"github.com/revelaction/srlproj/render"
)

func projectCommand(opts ProjectOptions, file string, e env, ui UI) error {
	layout, err := newLayout(opts.DataDir, e.logger)
	if err != nil {
		return err
	}

	records, err := layout.Load(file)
	if err != nil {
		return err
	}

	if opts.JSON {
		return render.NewJSONRenderer(ui.Out).Render(records)
	}

	r := render.NewRenderer(ui.Out)

	var total project.Report
	malformed := 0
	for _, rec := range records {
		total.Add(rec.Report)

		if rec.SRLError != "" {
			malformed++
			fmt.Fprintf(ui.Out, "✍  %d not projected: %s\n", rec.Index, rec.SRLError)
			continue
		}

		fmt.Fprintf(ui.Out, "✍  %d %s\n", rec.Index, rec.Hebrew.Words.Text())
		r.Frames(rec.Hebrew.Words, rec.Hebrew.Frames)
	}

	fmt.Fprintln(ui.Out)
	printReport(ui, total)
	fmt.Fprintf(ui.Out, "Sentences %d, not projected %d\n", len(records), malformed)
	return nil
}

func printReport(ui UI, rp project.Report) {
	fmt.Fprintf(ui.Out, "Targets projected %d, dropped %d\n", rp.TargetsProjected, rp.TargetsDropped)
	fmt.Fprintf(ui.Out, "Elements projected %d, dropped %d\n", rp.ElementsProjected, rp.ElementsDropped)
	for _, reason := range project.Reasons() {
		fmt.Fprintf(ui.Out, "  %-20s %d\n", reason, rp.Dropped(reason))
	}
}
