// Package align reads word alignments and indexes them by English token.
//
// Alignment files hold one line per sentence of space separated "i-j" links,
// zero-based as written by fast_align. Links are converted to one-based
// token ids on read.
package align

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	sent "github.com/revelaction/srlproj/sentence"
)

// ErrMalformedLink indicates a link that is not two dash separated integers.
var ErrMalformedLink = errors.New("align: malformed link")

// ReadFile parses the alignment file at path.
func ReadFile(path string) ([][]sent.AlignmentPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	alignments, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return alignments, nil
}

// Parse returns the pairs of each line of r. An empty line is a sentence
// without links.
func Parse(r io.Reader) ([][]sent.AlignmentPair, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var alignments [][]sent.AlignmentPair
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		pairs, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		alignments = append(alignments, pairs)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return alignments, nil
}

// ParseLine parses the links of a single sentence.
func ParseLine(line string) ([]sent.AlignmentPair, error) {
	links := strings.Fields(line)
	pairs := make([]sent.AlignmentPair, 0, len(links))
	for _, link := range links {
		i, j, ok := strings.Cut(link, "-")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedLink, link)
		}

		en, err := strconv.Atoi(i)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedLink, link)
		}
		he, err := strconv.Atoi(j)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedLink, link)
		}

		pairs = append(pairs, sent.AlignmentPair{En: en + 1, He: he + 1})
	}
	return pairs, nil
}

// FormatLine writes pairs back in the zero-based "i-j" format.
func FormatLine(pairs []sent.AlignmentPair) string {
	links := make([]string, len(pairs))
	for i, p := range pairs {
		links[i] = fmt.Sprintf("%d-%d", p.En-1, p.He-1)
	}
	return strings.Join(links, " ")
}

// Index maps an English token id to the ascending, duplicate free Hebrew
// token ids aligned to it. It is read only after NewIndex.
type Index map[int][]int

// NewIndex groups pairs by English id.
func NewIndex(pairs []sent.AlignmentPair) Index {
	idx := Index{}
	for _, p := range pairs {
		idx[p.En] = append(idx[p.En], p.He)
	}

	for en, he := range idx {
		slices.Sort(he)
		idx[en] = slices.Compact(he)
	}

	return idx
}

// Lookup returns the Hebrew ids aligned to en, nil when unaligned.
func (idx Index) Lookup(en int) []int {
	return idx[en]
}

// Keys returns the aligned English ids in ascending order.
func (idx Index) Keys() []int {
	keys := make([]int, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// GroupStats counts alignment groups by English token.
type GroupStats struct {
	// English tokens aligned to a single Hebrew token
	OneToOne int

	// English tokens aligned to more than one Hebrew token
	OneToMany int
}

// Groups counts the one-to-one and one-to-many groups of pairs. Unaligned
// English tokens form no group.
func Groups(pairs []sent.AlignmentPair) GroupStats {
	var gs GroupStats
	for _, he := range NewIndex(pairs) {
		if len(he) == 1 {
			gs.OneToOne++
		} else {
			gs.OneToMany++
		}
	}
	return gs
}
