package classify

import "math/rand/v2"

// Example is a labeled feature map of one sentence pair.
type Example struct {
	File     string             `json:"file"`
	Sentence int                `json:"sentence"`
	Features map[string]float64 `json:"features"`

	// True when the sentence pair is annotated as ok
	Label bool `json:"label"`
}

// DefaultTestFraction is the part of the examples held out for evaluation.
const DefaultTestFraction = 0.25

// Split shuffles the examples with seed and returns the train and test
// parts. The test part has ceil(frac*len(examples)) examples.
func Split(examples []Example, frac float64, seed uint64) (train, test []Example) {
	shuffled := make([]Example, len(examples))
	copy(shuffled, examples)

	r := rand.New(rand.NewPCG(seed, seed))
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := int(frac * float64(len(shuffled)))
	if float64(n) < frac*float64(len(shuffled)) {
		n++
	}
	n = min(n, len(shuffled))

	return shuffled[n:], shuffled[:n]
}

// Oversample duplicates random examples of the minority class until both
// classes have the same number of examples. The returned slice starts with
// the examples in their original order.
func Oversample(examples []Example, seed uint64) []Example {
	var pos, neg []int
	for i, e := range examples {
		if e.Label {
			pos = append(pos, i)
		} else {
			neg = append(neg, i)
		}
	}

	minority := pos
	if len(neg) < len(pos) {
		minority = neg
	}

	out := make([]Example, len(examples))
	copy(out, examples)

	// one class only, nothing to balance with
	if len(minority) == 0 {
		return out
	}

	r := rand.New(rand.NewPCG(seed, seed))
	missing := max(len(pos), len(neg)) - len(minority)
	for range missing {
		out = append(out, examples[minority[r.IntN(len(minority))]])
	}
	return out
}
