package main

import (
	"errors"

	"github.com/revelaction/srlproj/annotation"
	"github.com/revelaction/srlproj/dataset"
	"github.com/revelaction/srlproj/render"
	"github.com/revelaction/srlproj/storage"
)

func showCommand(opts ShowOptions, file string, sentId int, e env, ui UI) error {
	layout, err := newLayout(opts.DataDir, e.logger)
	if err != nil {
		return err
	}

	rec, err := layout.Sentence(file, sentId)
	if err != nil {
		return err
	}

	if opts.JSON {
		return render.NewJSONRenderer(ui.Out).Render([]dataset.Record{rec})
	}

	var st store
	defer st.Close()

	repo, err := st.Open(opts.DB)
	if err != nil {
		return err
	}

	label := annotation.None
	a, err := repo.Get(file, sentId)
	switch {
	case err == nil:
		label = a.Label
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}

	r := render.NewRenderer(ui.Out)
	r.HasColor = !opts.NoColor
	r.Format = opts.Format
	r.Pair(rec.Pair, label)
	return nil
}
