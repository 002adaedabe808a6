package main

import (
	"fmt"

	"github.com/revelaction/srlproj/annotation"
)

func labelCommand(opts LabelOptions, file string, sentId int, label annotation.Label, e env, ui UI) error {
	layout, err := newLayout(opts.DataDir, e.logger)
	if err != nil {
		return err
	}

	if _, err := layout.Sentence(file, sentId); err != nil {
		return err
	}

	var st store
	defer st.Close()

	repo, err := st.Open(opts.DB)
	if err != nil {
		return err
	}

	if err := repo.Upsert(annotation.Annotation{File: file, Sentence: sentId, Label: label}); err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "✍  %s %d %s\n", file, sentId, label)
	return nil
}
