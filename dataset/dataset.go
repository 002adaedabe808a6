// Package dataset reads the parallel corpus from its data root and builds
// the sentence pair records with projected Hebrew frames.
//
// The data root holds four directories, each with one file per data file
// name:
//
//	english_parsed/<name>             CoNLL-U parses of the English side
//	hebrew_parsed/<name>              CoNLL-U parses of the Hebrew side
//	english_srl/<name>                JSON lines frame-semantic parses
//	fastalign_outputs/<name>.forward  English to Hebrew word alignments
package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/revelaction/srlproj/align"
	"github.com/revelaction/srlproj/conllu"
	"github.com/revelaction/srlproj/project"
	sent "github.com/revelaction/srlproj/sentence"
	"github.com/revelaction/srlproj/srl"
)

const (
	EnglishParsedDir = "english_parsed"
	HebrewParsedDir  = "hebrew_parsed"
	EnglishSRLDir    = "english_srl"
	AlignmentDir     = "fastalign_outputs"
	AlignmentExt     = ".forward"
)

// ErrSentenceOutOfRange is returned for a sentence index not in the file.
var ErrSentenceOutOfRange = errors.New("dataset: sentence index out of range")

// Record is a sentence pair and the outcome of its projection.
type Record struct {
	sent.Pair
	Report project.Report `json:"report"`
}

// Layout reads data files below Root.
type Layout struct {
	Root string

	projector *project.Projector
	logger    *slog.Logger
}

// New creates a Layout for the data root.
func New(root string, opts ...Option) *Layout {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Layout{
		Root:      root,
		projector: project.New(project.WithLogger(cfg.logger)),
		logger:    cfg.logger,
	}
}

func (l *Layout) path(dir, name string) string {
	return filepath.Join(l.Root, dir, name)
}

// Files returns the data file names, sorted. A non empty pattern filters the
// names with doublestar glob syntax.
func (l *Layout) Files(pattern string) ([]string, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	entries, err := os.ReadDir(filepath.Join(l.Root, EnglishParsedDir))
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}

		if pattern != "" {
			ok, err := doublestar.Match(pattern, e.Name())
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}

		names = append(names, e.Name())
	}

	return names, nil
}

// EnglishSentences returns the text of each English sentence of file.
func (l *Layout) EnglishSentences(file string) ([]string, error) {
	sentences, err := conllu.ReadFile(l.path(EnglishParsedDir, file))
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(sentences))
	for i, s := range sentences {
		texts[i] = s.Text()
	}
	return texts, nil
}

// Load reads the four inputs of file and returns one Record per sentence
// pair. Inputs of different length are cut to the shortest.
func (l *Layout) Load(file string) ([]Record, error) {
	english, err := conllu.ReadFile(l.path(EnglishParsedDir, file))
	if err != nil {
		return nil, err
	}

	hebrew, err := conllu.ReadFile(l.path(HebrewParsedDir, file))
	if err != nil {
		return nil, err
	}

	srlRecords, err := srl.ReadFile(l.path(EnglishSRLDir, file))
	if err != nil {
		return nil, err
	}

	alignments, err := align.ReadFile(l.path(AlignmentDir, file+AlignmentExt))
	if err != nil {
		return nil, err
	}

	n := min(len(english), len(hebrew), len(srlRecords), len(alignments))
	if n != len(english) || n != len(hebrew) || n != len(srlRecords) || n != len(alignments) {
		l.logger.Warn("inputs differ in length",
			"file", file,
			"english", len(english),
			"hebrew", len(hebrew),
			"srl", len(srlRecords),
			"alignment", len(alignments),
			"using", n)
	}

	imdbID := IMDBID(file)

	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		r := Record{
			Pair: sent.Pair{
				File:      file,
				Index:     i,
				IMDBID:    imdbID,
				English:   sent.Side{Words: english[i], Frames: []sent.Frame{}},
				Hebrew:    sent.Side{Words: hebrew[i], Frames: []sent.Frame{}},
				Alignment: alignments[i],
			},
		}

		if err := srlRecords[i].Err; err != nil {
			l.logger.Warn("sentence not projected", "file", file, "sentence", i, "err", err)
			r.SRLError = err.Error()
			records = append(records, r)
			continue
		}

		r.English.Frames = srlRecords[i].Frames
		r.Hebrew.Frames, r.Report = l.projector.Project(srlRecords[i].Frames, alignments[i], english[i], hebrew[i])
		records = append(records, r)
	}

	return records, nil
}

// Sentence returns the record of sentence index of file.
func (l *Layout) Sentence(file string, index int) (Record, error) {
	records, err := l.Load(file)
	if err != nil {
		return Record{}, err
	}

	if index < 0 || index >= len(records) {
		return Record{}, fmt.Errorf("%w: %d (file %s has %d sentences)", ErrSentenceOutOfRange, index, file, len(records))
	}
	return records[index], nil
}

// IMDBID returns the third "_" separated field of a data file name, the
// movie id of subtitle corpora, or the empty string.
func IMDBID(file string) string {
	fields := strings.Split(file, "_")
	if len(fields) < 3 {
		return ""
	}
	return fields[2]
}
