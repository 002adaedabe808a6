package main

import (
	"github.com/revelaction/srlproj/annotate"
	"github.com/revelaction/srlproj/render"
)

func annotateCommand(opts AnnotateOptions, file string, e env, ui UI) error {
	layout, err := newLayout(opts.DataDir, e.logger)
	if err != nil {
		return err
	}

	records, err := layout.Load(file)
	if err != nil {
		return err
	}

	var st store
	defer st.Close()

	repo, err := st.Open(opts.DB)
	if err != nil {
		return err
	}

	r := render.NewRenderer(ui.Out)
	r.HasColor = !opts.NoColor
	r.Format = opts.Format

	hdl := annotate.NewHandler(file, records, repo, r)

	start := -1
	if opts.Start != nil {
		start = *opts.Start
	}
	if err := hdl.Seek(start); err != nil {
		return err
	}

	return hdl.Run()
}
