package classify

import (
	"maps"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Vectorizer turns feature maps into dense vectors. Each feature name gets
// the column of its position in the sorted name dictionary.
type Vectorizer struct {
	Names []string `json:"names"`
}

// NewVectorizer builds the dictionary from the union of the feature names of
// samples.
func NewVectorizer(samples []map[string]float64) *Vectorizer {
	seen := map[string]struct{}{}
	for _, s := range samples {
		for name := range s {
			seen[name] = struct{}{}
		}
	}

	return &Vectorizer{Names: slices.Sorted(maps.Keys(seen))}
}

// Len is the dimension of the vectors.
func (v *Vectorizer) Len() int {
	return len(v.Names)
}

// Transform returns the vector of features. Names not in the dictionary are
// ignored.
func (v *Vectorizer) Transform(features map[string]float64) *mat.VecDense {
	data := make([]float64, len(v.Names))
	for i, name := range v.Names {
		data[i] = features[name]
	}

	if len(data) == 0 {
		// gonum does not allow zero length vectors
		return nil
	}
	return mat.NewVecDense(len(data), data)
}
