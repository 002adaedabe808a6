package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/revelaction/srlproj/dataset"
	"github.com/revelaction/srlproj/feature"
)

func featuresCommand(opts FeaturesOptions, pattern string, e env, ui UI) error {
	layout, err := newLayout(opts.DataDir, e.logger)
	if err != nil {
		return err
	}

	names, err := layout.Files(pattern)
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "file\tsentence\t%s\n", strings.Join(feature.Names(), "\t"))

	return eachFile(layout, names, opts.Quiet, ui, func(name string, records []dataset.Record) error {
		for _, rec := range records {
			v, err := feature.Extract(rec.Pair)
			if err != nil {
				if errors.Is(err, feature.ErrDegenerateTree) {
					e.logger.Warn("no features", "file", name, "sentence", rec.Index, "err", err)
					continue
				}
				return err
			}

			m := v.Map()
			fields := []string{name, strconv.Itoa(rec.Index)}
			for _, n := range feature.Names() {
				fields = append(fields, strconv.FormatFloat(m[n], 'g', -1, 64))
			}
			fmt.Fprintln(ui.Out, strings.Join(fields, "\t"))
		}
		return nil
	})
}
