package align

import (
	"errors"
	"slices"
	"strings"
	"testing"

	sent "github.com/revelaction/srlproj/sentence"
)

func TestParse(t *testing.T) {
	in := "0-0 1-2 1-1\n\n2-3\n"
	alignments, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(alignments) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(alignments))
	}

	want := []sent.AlignmentPair{{En: 1, He: 1}, {En: 2, He: 3}, {En: 2, He: 2}}
	if !slices.Equal(alignments[0], want) {
		t.Errorf("expected %v, got %v", want, alignments[0])
	}
	if len(alignments[1]) != 0 {
		t.Errorf("expected empty alignment, got %v", alignments[1])
	}
}

func TestParseMalformed(t *testing.T) {
	for _, in := range []string{"0-0 12", "a-1", "1-b", "0-0\n3-\n"} {
		_, err := Parse(strings.NewReader(in))
		if !errors.Is(err, ErrMalformedLink) {
			t.Errorf("%q: expected ErrMalformedLink, got %v", in, err)
		}
	}
}

func TestFormatLine(t *testing.T) {
	line := "0-0 1-2 2-1"
	pairs, err := ParseLine(line)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatLine(pairs); got != line {
		t.Errorf("expected %q, got %q", line, got)
	}
}

func TestNewIndex(t *testing.T) {
	tests := []struct {
		name  string
		pairs []sent.AlignmentPair
		want  map[int][]int
	}{
		{
			name:  "empty",
			pairs: nil,
			want:  map[int][]int{},
		},
		{
			name:  "one to one",
			pairs: []sent.AlignmentPair{{En: 1, He: 2}, {En: 2, He: 1}},
			want:  map[int][]int{1: {2}, 2: {1}},
		},
		{
			name:  "unsorted with duplicates",
			pairs: []sent.AlignmentPair{{En: 3, He: 7}, {En: 1, He: 1}, {En: 3, He: 5}, {En: 3, He: 7}},
			want:  map[int][]int{1: {1}, 3: {5, 7}},
		},
		{
			name:  "many to one",
			pairs: []sent.AlignmentPair{{En: 1, He: 4}, {En: 2, He: 4}},
			want:  map[int][]int{1: {4}, 2: {4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := NewIndex(tt.pairs)
			if len(idx) != len(tt.want) {
				t.Fatalf("expected %d keys, got %d", len(tt.want), len(idx))
			}
			for en, he := range tt.want {
				if !slices.Equal(idx.Lookup(en), he) {
					t.Errorf("en %d: expected %v, got %v", en, he, idx.Lookup(en))
				}
			}
		})
	}
}

// Every value is sorted and duplicate free, and the key set is the set of
// English ids in the input.
func TestNewIndexProperties(t *testing.T) {
	var pairs []sent.AlignmentPair
	for i := 0; i < 200; i++ {
		pairs = append(pairs, sent.AlignmentPair{En: (i*7)%13 + 1, He: (i*11)%17 + 1})
	}

	idx := NewIndex(pairs)

	seen := map[int]bool{}
	for _, p := range pairs {
		seen[p.En] = true
	}
	if len(seen) != len(idx) {
		t.Errorf("expected %d keys, got %d", len(seen), len(idx))
	}

	for en, he := range idx {
		if !seen[en] {
			t.Errorf("unexpected key %d", en)
		}
		for i := 1; i < len(he); i++ {
			if he[i-1] >= he[i] {
				t.Errorf("en %d: not strictly ascending: %v", en, he)
			}
		}
	}

	keys := idx.Keys()
	if !slices.IsSorted(keys) || len(keys) != len(seen) {
		t.Errorf("unexpected keys %v", keys)
	}
}

func TestGroups(t *testing.T) {
	pairs := []sent.AlignmentPair{{En: 1, He: 1}, {En: 2, He: 2}, {En: 2, He: 3}, {En: 3, He: 3}, {En: 4, He: 4}, {En: 4, He: 4}}
	gs := Groups(pairs)
	if gs.OneToOne != 3 || gs.OneToMany != 1 {
		t.Errorf("expected 3 one-to-one and 1 one-to-many, got %+v", gs)
	}
}
