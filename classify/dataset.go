package classify

import (
	"errors"
	"log/slog"

	"github.com/revelaction/srlproj/annotation"
	"github.com/revelaction/srlproj/dataset"
	"github.com/revelaction/srlproj/feature"
)

// RecordLoader loads the sentence pairs of a data file.
type RecordLoader interface {
	Load(file string) ([]dataset.Record, error)
}

// Examples computes the features of each annotated sentence pair. A pair is
// positive when its label is ok. Pairs with a degenerate parse tree or an
// index not in the data file are skipped and logged. Each data file is
// loaded once.
func Examples(loader RecordLoader, annotations []annotation.Annotation, logger *slog.Logger) ([]Example, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cache := map[string][]dataset.Record{}
	var examples []Example
	for _, a := range annotations {
		records, ok := cache[a.File]
		if !ok {
			var err error
			records, err = loader.Load(a.File)
			if err != nil {
				return nil, err
			}
			cache[a.File] = records
		}

		if a.Sentence < 0 || a.Sentence >= len(records) {
			logger.Warn("annotation skipped", "file", a.File, "sentence", a.Sentence, "err", dataset.ErrSentenceOutOfRange)
			continue
		}

		v, err := feature.Extract(records[a.Sentence].Pair)
		if err != nil {
			if errors.Is(err, feature.ErrDegenerateTree) {
				logger.Warn("annotation skipped", "file", a.File, "sentence", a.Sentence, "err", err)
				continue
			}
			return nil, err
		}

		examples = append(examples, Example{
			File:     a.File,
			Sentence: a.Sentence,
			Features: v.Map(),
			Label:    a.Label == annotation.OK,
		})
	}

	return examples, nil
}
