package main

import (
	"fmt"
	"os"

	"github.com/revelaction/srlproj/classify"
)

func trainCommand(opts TrainOptions, e env, ui UI) error {
	layout, err := newLayout(opts.DataDir, e.logger)
	if err != nil {
		return err
	}

	var st store
	defer st.Close()

	repo, err := st.Open(opts.DB)
	if err != nil {
		return err
	}

	anns, err := repo.All()
	if err != nil {
		return err
	}

	examples, err := classify.Examples(layout, anns, e.logger)
	if err != nil {
		return err
	}

	train, test := classify.Split(examples, opts.TestFraction, opts.Seed)
	fmt.Fprintf(ui.Out, "Train %d, test %d\n", len(train), len(test))

	clf, err := classify.Train(train, classify.Config{C: opts.C, MaxIter: opts.MaxIter, Seed: opts.Seed})
	if err != nil {
		return err
	}

	fmt.Fprintln(ui.Out, "Training Completed")

	if err := classify.Evaluate(clf, test).Write(ui.Out); err != nil {
		return err
	}

	if opts.Output == "" {
		return nil
	}

	f, err := os.Create(opts.Output)
	if err != nil {
		return err
	}

	if err := clf.Save(f); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "Model written to %s\n", opts.Output)
	return nil
}
