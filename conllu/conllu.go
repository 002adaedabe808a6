// Package conllu reads dependency parses in the CoNLL-U format.
//
// Only the columns needed to build a sentence.Token are kept: ID, FORM,
// LEMMA, UPOS, XPOS, HEAD and DEPREL. Multiword ranges ("1-2") and empty
// nodes ("1.1") are skipped.
package conllu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	sent "github.com/revelaction/srlproj/sentence"
)

const (
	fieldSeparator = "\t"
	minFields      = 8

	colID     = 0
	colForm   = 1
	colLemma  = 2
	colUPos   = 3
	colXPos   = 4
	colHead   = 6
	colDepRel = 7
)

var (
	// ErrMalformedRow indicates a token line that can not be read.
	ErrMalformedRow = errors.New("conllu: malformed row")

	// ErrNonContiguous indicates token ids that do not run 1..N.
	ErrNonContiguous = errors.New("conllu: token ids are not contiguous")
)

// ReadFile parses the CoNLL-U file at path.
func ReadFile(path string) ([]sent.Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sentences, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sentences, nil
}

// Parse reads all sentences from r. Sentences are separated by blank lines.
func Parse(r io.Reader) ([]sent.Sentence, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var sentences []sent.Sentence
	var current sent.Sentence
	lineNum := 0

	flush := func() error {
		if len(current) == 0 {
			return nil
		}
		for i, t := range current {
			if t.ID != i+1 {
				return fmt.Errorf("%w: sentence %d, token %d has id %d", ErrNonContiguous, len(sentences), i+1, t.ID)
			}
		}
		sentences = append(sentences, current)
		current = nil
		return nil
	}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, fieldSeparator)
		if len(fields) < minFields {
			return nil, fmt.Errorf("%w: line %d: %d fields", ErrMalformedRow, lineNum, len(fields))
		}

		if strings.ContainsAny(fields[colID], "-.") {
			continue
		}

		token, err := parseRow(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, lineNum, err)
		}
		current = append(current, token)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return sentences, nil
}

func parseRow(fields []string) (sent.Token, error) {
	id, err := strconv.Atoi(fields[colID])
	if err != nil {
		return sent.Token{}, fmt.Errorf("id %q", fields[colID])
	}

	head, err := parseInt(fields[colHead])
	if err != nil {
		return sent.Token{}, fmt.Errorf("head %q", fields[colHead])
	}

	return sent.Token{
		ID:     id,
		Head:   head,
		Form:   norm.NFC.String(fields[colForm]),
		Lemma:  norm.NFC.String(parseString(fields[colLemma])),
		UPos:   parseString(fields[colUPos]),
		XPos:   parseString(fields[colXPos]),
		DepRel: parseString(fields[colDepRel]),
	}, nil
}

func parseInt(value string) (int, error) {
	if value == "_" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

func parseString(value string) string {
	if value == "_" {
		return ""
	}
	return value
}
