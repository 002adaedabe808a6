package main

import (
	"github.com/revelaction/srlproj/annotation"
	"github.com/revelaction/srlproj/render"
)

func sentencesCommand(opts SentencesOptions, file string, e env, ui UI) error {
	layout, err := newLayout(opts.DataDir, e.logger)
	if err != nil {
		return err
	}

	texts, err := layout.EnglishSentences(file)
	if err != nil {
		return err
	}

	var st store
	defer st.Close()

	repo, err := st.Open(opts.DB)
	if err != nil {
		return err
	}

	anns, err := repo.ByFile(file)
	if err != nil {
		return err
	}

	labels := map[int]annotation.Label{}
	for _, a := range anns {
		labels[a.Sentence] = a.Label
	}

	r := render.NewRenderer(ui.Out)
	r.HasColor = !opts.NoColor
	r.HasPrefix = !opts.NoPrefix
	r.Sentences(texts, labels)
	return nil
}
