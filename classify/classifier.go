package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var ErrNoExamples = errors.New("classify: no training examples")

// Config holds training parameters.
type Config struct {
	// Aggressiveness: upper bound of the step size
	C float64

	// Passes over the training examples
	MaxIter int

	Seed uint64
}

// DefaultConfig returns the default training configuration.
func DefaultConfig() Config {
	return Config{
		C:       1.0,
		MaxIter: 50,
		Seed:    0,
	}
}

// Classifier is a binary passive-aggressive (PA-I) linear classifier over
// feature maps.
type Classifier struct {
	vectorizer *Vectorizer
	weights    *mat.VecDense
	bias       float64
}

// Train oversamples the minority class of examples and fits a classifier.
func Train(examples []Example, cfg Config) (*Classifier, error) {
	if len(examples) == 0 {
		return nil, ErrNoExamples
	}

	samples := make([]map[string]float64, len(examples))
	for i, e := range examples {
		samples[i] = e.Features
	}

	vec := NewVectorizer(samples)
	if vec.Len() == 0 {
		return nil, fmt.Errorf("%w: examples have no features", ErrNoExamples)
	}

	balanced := Oversample(examples, cfg.Seed)

	xs := make([]*mat.VecDense, len(balanced))
	ys := make([]float64, len(balanced))
	for i, e := range balanced {
		xs[i] = vec.Transform(e.Features)
		ys[i] = -1
		if e.Label {
			ys[i] = 1
		}
	}

	c := &Classifier{
		vectorizer: vec,
		weights:    mat.NewVecDense(vec.Len(), nil),
	}

	order := make([]int, len(balanced))
	for i := range order {
		order[i] = i
	}

	r := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	for range cfg.MaxIter {
		r.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		updated := false
		for _, i := range order {
			if c.update(xs[i], ys[i], cfg.C) {
				updated = true
			}
		}

		if !updated {
			break
		}
	}

	return c, nil
}

// update applies one PA-I step and reports whether the weights changed.
func (c *Classifier) update(x *mat.VecDense, y, aggressiveness float64) bool {
	loss := 1 - y*c.decision(x)
	if loss <= 0 {
		return false
	}

	// the bias is a weight on a constant feature 1
	norm := floats.Dot(x.RawVector().Data, x.RawVector().Data) + 1
	tau := min(aggressiveness, loss/norm)

	c.weights.AddScaledVec(c.weights, tau*y, x)
	c.bias += tau * y
	return true
}

func (c *Classifier) decision(x *mat.VecDense) float64 {
	return mat.Dot(c.weights, x) + c.bias
}

// Decision returns the signed distance of features to the separating
// hyperplane. Positive means ok.
func (c *Classifier) Decision(features map[string]float64) float64 {
	return c.decision(c.vectorizer.Transform(features))
}

// Predict returns true when features are classified as ok.
func (c *Classifier) Predict(features map[string]float64) bool {
	return c.Decision(features) > 0
}

// Features returns the feature names the classifier was trained on.
func (c *Classifier) Features() []string {
	return c.vectorizer.Names
}

type model struct {
	Names   []string  `json:"names"`
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// Save writes the classifier as JSON to w.
func (c *Classifier) Save(w io.Writer) error {
	m := model{
		Names:   c.vectorizer.Names,
		Weights: c.weights.RawVector().Data,
		Bias:    c.bias,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// Load reads a classifier written by Save.
func Load(r io.Reader) (*Classifier, error) {
	var m model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	if len(m.Names) == 0 || len(m.Names) != len(m.Weights) {
		return nil, fmt.Errorf("invalid model: %d features and %d weights", len(m.Names), len(m.Weights))
	}

	return &Classifier{
		vectorizer: &Vectorizer{Names: m.Names},
		weights:    mat.NewVecDense(len(m.Weights), m.Weights),
		bias:       m.Bias,
	}, nil
}
