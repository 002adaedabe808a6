package dataset

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/revelaction/srlproj/dataset/datasettest"
	"github.com/revelaction/srlproj/project"
	sent "github.com/revelaction/srlproj/sentence"
)

func newLayout(t *testing.T) (*Layout, *bytes.Buffer) {
	t.Helper()

	root := t.TempDir()
	datasettest.Write(t, root)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	return New(root, WithLogger(logger)), &logs
}

func TestFiles(t *testing.T) {
	l, _ := newLayout(t)

	files, err := l.Files("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{datasettest.FileB, datasettest.FileA}
	if !slices.Equal(files, want) {
		t.Errorf("expected %v, got %v", want, files)
	}

	files, err = l.Files("*tt0111161*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(files, []string{datasettest.FileA}) {
		t.Errorf("unexpected filtered files %v", files)
	}

	if _, err := l.Files("[a-"); err == nil {
		t.Error("expected error for bad pattern")
	}
}

func TestEnglishSentences(t *testing.T) {
	l, _ := newLayout(t)

	texts, err := l.EnglishSentences(datasettest.FileA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"I saw the dog .", "Hello", "Run ."}
	if !slices.Equal(texts, want) {
		t.Errorf("expected %v, got %v", want, texts)
	}
}

func TestLoad(t *testing.T) {
	l, logs := newLayout(t)

	records, err := l.Load(datasettest.FileA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	r := records[0]
	if r.IMDBID != "tt0111161" || r.Index != 0 || r.File != datasettest.FileA {
		t.Errorf("unexpected record metadata %+v", r.Pair)
	}
	if len(r.Hebrew.Frames) != 1 {
		t.Fatalf("expected 1 hebrew frame, got %d", len(r.Hebrew.Frames))
	}

	hf := r.Hebrew.Frames[0]
	if hf.Target != (sent.Span{Start: 1, End: 4}) {
		t.Errorf("expected target [1,4], got %+v", hf.Target)
	}
	if len(hf.Elements) != 2 || hf.Elements[1].Span != (sent.Span{Start: 2, End: 3}) {
		t.Errorf("unexpected elements %+v", hf.Elements)
	}

	// English frames keep their own spans
	if r.English.Frames[0].Elements[1].Span != (sent.Span{Start: 3, End: 4}) {
		t.Errorf("english frame modified: %+v", r.English.Frames[0])
	}

	malformed := records[1]
	if malformed.SRLError == "" {
		t.Error("expected SRL error for the second sentence")
	}
	if len(malformed.Hebrew.Frames) != 0 || malformed.Hebrew.Frames == nil {
		t.Errorf("expected empty hebrew frames, got %#v", malformed.Hebrew.Frames)
	}
	if !strings.Contains(logs.String(), "sentence not projected") {
		t.Errorf("expected a warning, got %q", logs.String())
	}

	ambiguous := records[2]
	if len(ambiguous.Hebrew.Frames) != 0 {
		t.Errorf("expected the frame to be dropped, got %+v", ambiguous.Hebrew.Frames)
	}
	if ambiguous.Report.Dropped(project.AmbiguousAlignment) != 1 {
		t.Errorf("unexpected report %+v", ambiguous.Report)
	}
}

func TestLoadMismatchedLengths(t *testing.T) {
	l, logs := newLayout(t)

	// one alignment line only
	path := filepath.Join(l.Root, AlignmentDir, datasettest.FileA+AlignmentExt)
	if err := os.WriteFile(path, []byte("0-0 1-0 2-2 3-2 4-3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := l.Load(datasettest.FileA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record, got %d", len(records))
	}
	if !strings.Contains(logs.String(), "inputs differ in length") {
		t.Errorf("expected a warning, got %q", logs.String())
	}
}

func TestLoadBlankSRLLine(t *testing.T) {
	l, logs := newLayout(t)

	// the second sentence has no SRL at all
	path := filepath.Join(l.Root, EnglishSRLDir, datasettest.FileA)
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	lines[1] = ""
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := l.Load(datasettest.FileA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if strings.Contains(logs.String(), "inputs differ in length") {
		t.Errorf("unexpected length warning: %q", logs.String())
	}

	if records[1].SRLError == "" || len(records[1].English.Frames) != 0 {
		t.Errorf("expected the blank line to leave sentence 1 without frames, got %+v", records[1])
	}

	last := records[2]
	if last.English.Words.Text() != "Run ." {
		t.Fatalf("unexpected sentence %q", last.English.Words.Text())
	}
	if len(last.English.Frames) != 1 || last.English.Frames[0].Name != "Self_motion" {
		t.Errorf("expected the Self_motion frame on sentence 2, got %+v", last.English.Frames)
	}
}

func TestLoadMissingFile(t *testing.T) {
	l, _ := newLayout(t)

	if _, err := l.Load("missing"); err == nil {
		t.Error("expected error")
	}
}

func TestSentence(t *testing.T) {
	l, _ := newLayout(t)

	r, err := l.Sentence(datasettest.FileA, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.English.Words.Text() != "Run ." {
		t.Errorf("unexpected sentence %q", r.English.Words.Text())
	}

	_, err = l.Sentence(datasettest.FileA, 3)
	if !errors.Is(err, ErrSentenceOutOfRange) {
		t.Errorf("expected ErrSentenceOutOfRange, got %v", err)
	}
}

func TestIMDBID(t *testing.T) {
	tests := map[string]string{
		"OpenSubtitles_en_tt0111161_he": "tt0111161",
		"a_b_c":                         "c",
		"a_b":                           "",
		"plain":                         "",
	}
	for in, want := range tests {
		if got := IMDBID(in); got != want {
			t.Errorf("%s: expected %q, got %q", in, want, got)
		}
	}
}
