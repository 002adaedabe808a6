package main

import (
	"fmt"
	"slices"

	"github.com/revelaction/srlproj/dataset"
	"github.com/revelaction/srlproj/stat"
)

func statCommand(opts StatOptions, pattern string, e env, ui UI) error {
	layout, err := newLayout(opts.DataDir, e.logger)
	if err != nil {
		return err
	}

	names, err := layout.Files(pattern)
	if err != nil {
		return err
	}

	hdl := stat.NewHandler()
	err = eachFile(layout, names, opts.Quiet, ui, func(_ string, records []dataset.Record) error {
		hdl.Aggregate(records)
		return nil
	})
	if err != nil {
		return err
	}

	stats := hdl.Get()
	fmt.Fprintf(ui.Out, "Files %d\n", len(names))
	fmt.Fprintf(ui.Out, "Num sentences %d, num tokens per sentence %d\n", stats.NumSentences, stats.TokensPerSentenceMean)
	fmt.Fprintf(ui.Out, "Sentences not projected %d\n", stats.NumMalformed)
	fmt.Fprintf(ui.Out, "Frames %d\n", stats.NumFrames)
	printReport(ui, stats.Projection)
	fmt.Fprintf(ui.Out, "Alignment groups 1-1 %d, 1-n %d\n", stats.Alignment.OneToOne, stats.Alignment.OneToMany)

	lengths := make([]int, 0, len(stats.TokensPerSentenceDis))
	for l := range stats.TokensPerSentenceDis {
		lengths = append(lengths, l)
	}
	slices.Sort(lengths)

	fmt.Fprintf(ui.Out, "Tokens per sentence:\n")
	for _, l := range lengths {
		fmt.Fprintf(ui.Out, "  %4d %d\n", l, stats.TokensPerSentenceDis[l])
	}

	return nil
}
