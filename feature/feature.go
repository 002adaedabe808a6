// Package feature computes the sentence pair features used to predict
// whether a pair is annotated as ok.
package feature

import (
	"errors"
	"fmt"

	"github.com/revelaction/srlproj/align"
	sent "github.com/revelaction/srlproj/sentence"
)

// ErrDegenerateTree indicates a sentence with zero or several root tokens.
// The parse depth is undefined for it.
var ErrDegenerateTree = errors.New("feature: degenerate dependency tree")

// Feature names, in the order of Names.
const (
	EnSentLength     = "en-sent-length"
	HeSentLength     = "he-sent-length"
	EnHeRatio        = "en-he-ratio"
	NumberOfFrames   = "number-of-frames"
	OneToOnes        = "1-1s"
	OneToManys       = "1-ns"
	EnParseTreeDepth = "en-parse-tree-depth"
	HeParseTreeDepth = "he-parse-tree-depth"
)

// Names returns the feature names of Vector.Map.
func Names() []string {
	return []string{
		EnSentLength,
		HeSentLength,
		EnHeRatio,
		NumberOfFrames,
		OneToOnes,
		OneToManys,
		EnParseTreeDepth,
		HeParseTreeDepth,
	}
}

// Vector holds the features of one sentence pair.
type Vector struct {
	EnLength int `json:"en_length"`
	HeLength int `json:"he_length"`
	Frames   int `json:"frames"`

	// Alignment groups by English token
	OneToOne  int `json:"one_to_one"`
	OneToMany int `json:"one_to_many"`

	EnDepth int `json:"en_depth"`
	HeDepth int `json:"he_depth"`
}

// Ratio is the English length divided by the Hebrew length.
func (v Vector) Ratio() float64 {
	if v.HeLength == 0 {
		return 0
	}
	return float64(v.EnLength) / float64(v.HeLength)
}

// Map returns the features by name. Alignment group counts are given as a
// proportion of the English length.
func (v Vector) Map() map[string]float64 {
	var oneToOnes, oneToManys float64
	if v.EnLength > 0 {
		oneToOnes = float64(v.OneToOne) / float64(v.EnLength)
		oneToManys = float64(v.OneToMany) / float64(v.EnLength)
	}

	return map[string]float64{
		EnSentLength:     float64(v.EnLength),
		HeSentLength:     float64(v.HeLength),
		EnHeRatio:        v.Ratio(),
		NumberOfFrames:   float64(v.Frames),
		OneToOnes:        oneToOnes,
		OneToManys:       oneToManys,
		EnParseTreeDepth: float64(v.EnDepth),
		HeParseTreeDepth: float64(v.HeDepth),
	}
}

// Extract computes the features of p. It fails with ErrDegenerateTree when
// either parse does not have exactly one root.
func Extract(p sent.Pair) (Vector, error) {
	enDepth, err := Depth(p.English.Words)
	if err != nil {
		return Vector{}, fmt.Errorf("english: %w", err)
	}

	heDepth, err := Depth(p.Hebrew.Words)
	if err != nil {
		return Vector{}, fmt.Errorf("hebrew: %w", err)
	}

	groups := align.Groups(p.Alignment)

	return Vector{
		EnLength:  len(p.English.Words),
		HeLength:  len(p.Hebrew.Words),
		Frames:    len(p.English.Frames),
		OneToOne:  groups.OneToOne,
		OneToMany: groups.OneToMany,
		EnDepth:   enDepth,
		HeDepth:   heDepth,
	}, nil
}

type node struct {
	id       int
	distance int
}

// Depth returns the largest distance from the root to any token reachable
// from it. A single token sentence has depth 0.
func Depth(s sent.Sentence) (int, error) {
	roots := s.Roots()
	if len(roots) != 1 {
		return 0, fmt.Errorf("%w: %d roots", ErrDegenerateTree, len(roots))
	}

	children := make([][]int, len(s)+1)
	for _, t := range s {
		if t.Head >= 1 && t.Head <= len(s) {
			children[t.Head] = append(children[t.Head], t.ID)
		}
	}

	visited := make([]bool, len(s)+1)
	depth := 0
	stack := []node{{id: roots[0].ID}}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.id < 1 || n.id > len(s) || visited[n.id] {
			continue
		}
		visited[n.id] = true
		depth = max(depth, n.distance)

		for _, c := range children[n.id] {
			stack = append(stack, node{id: c, distance: n.distance + 1})
		}
	}

	return depth, nil
}
