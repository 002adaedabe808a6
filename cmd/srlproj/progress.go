package main

import (
	"github.com/gosuri/uiprogress"

	"github.com/revelaction/srlproj/dataset"
)

// eachFile loads the data files one by one and calls fn with the records of
// each. Unless quiet, a progress bar is rendered to ui.Err.
func eachFile(layout *dataset.Layout, names []string, quiet bool, ui UI, fn func(name string, records []dataset.Record) error) error {
	var bar *uiprogress.Bar
	if !quiet && len(names) > 0 {
		// Start progress indicator
		p := uiprogress.New()
		p.SetOut(ui.Err)
		p.Start()
		defer p.Stop()

		bar = p.AddBar(len(names))
		bar.AppendCompleted()
		bar.PrependElapsed()
		// Append file name to the progress bar
		bar.AppendFunc(func(b *uiprogress.Bar) string {
			if b.Current() == 0 {
				return ""
			}
			return names[b.Current()-1]
		})
	}

	for _, name := range names {
		records, err := layout.Load(name)
		if err != nil {
			return err
		}

		if err := fn(name, records); err != nil {
			return err
		}

		if bar != nil {
			bar.Incr()
		}
	}

	return nil
}
