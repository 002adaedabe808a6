package annotate

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/revelaction/srlproj/annotation"
	"github.com/revelaction/srlproj/dataset"
	"github.com/revelaction/srlproj/dataset/datasettest"
	"github.com/revelaction/srlproj/render"
	"github.com/revelaction/srlproj/storage/filesystem"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    command
		wantErr bool
	}{
		{"", command{action: actionShow}, false},
		{"  ", command{action: actionShow}, false},
		{"quit", command{action: actionQuit}, false},
		{"n", command{action: actionNext}, false},
		{"prev", command{action: actionPrev}, false},
		{"12", command{action: actionJump, index: 12}, false},
		{" ok ", command{action: actionLabel, label: annotation.OK}, false},
		{"poor_syn", command{action: actionLabel, label: annotation.PoorSyntax}, false},
		{"-1", command{}, true},
		{"none", command{}, true},
		{"ok ok", command{}, true},
	}

	for _, tt := range tests {
		got, err := parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %+v, got %+v", tt.in, tt.want, got)
		}
	}
}

func newTestHandler(t *testing.T) (*Handler, *filesystem.AnnotationStore, *bytes.Buffer) {
	t.Helper()

	root := t.TempDir()
	datasettest.Write(t, root)

	l := dataset.New(root, dataset.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	records, err := l.Load(datasettest.FileA)
	if err != nil {
		t.Fatal(err)
	}

	repo, err := filesystem.NewAnnotationStore(filepath.Join(t.TempDir(), "a.json"))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	return NewHandler(datasettest.FileA, records, repo, render.NewRenderer(&buf)), repo, &buf
}

func TestExecute(t *testing.T) {
	h, repo, buf := newTestHandler(t)
	if err := h.Seek(-1); err != nil {
		t.Fatal(err)
	}

	if h.Current() != 0 {
		t.Fatalf("expected to start at 0, got %d", h.Current())
	}

	if quit, err := h.Execute("ok"); quit || err != nil {
		t.Fatalf("unexpected result %t %v", quit, err)
	}
	if h.Current() != 1 {
		t.Errorf("expected to advance to 1, got %d", h.Current())
	}

	a, err := repo.Get(datasettest.FileA, 0)
	if err != nil || a.Label != annotation.OK {
		t.Errorf("expected stored ok, got %+v %v", a, err)
	}

	if !strings.Contains(buf.String(), "HE: שלום") {
		t.Errorf("expected next pair to be shown:\n%s", buf.String())
	}

	for _, in := range []string{"p", "p"} {
		if _, err := h.Execute(in); err != nil {
			t.Fatal(err)
		}
	}
	if h.Current() != 0 {
		t.Errorf("expected to stay at 0, got %d", h.Current())
	}

	if _, err := h.Execute("2"); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Execute("err_word"); err != nil {
		t.Fatal(err)
	}
	if h.Current() != 2 {
		t.Errorf("expected to stay at the last sentence, got %d", h.Current())
	}

	if _, err := h.Execute("7"); !errors.Is(err, dataset.ErrSentenceOutOfRange) {
		t.Errorf("expected ErrSentenceOutOfRange, got %v", err)
	}

	if quit, _ := h.Execute("quit"); !quit {
		t.Error("expected quit")
	}
}

func TestSeekFirstUnannotated(t *testing.T) {
	h, repo, _ := newTestHandler(t)

	for _, i := range []int{0, 2} {
		if err := repo.Upsert(annotation.Annotation{File: datasettest.FileA, Sentence: i, Label: annotation.OK}); err != nil {
			t.Fatal(err)
		}
	}

	if err := h.Seek(-1); err != nil {
		t.Fatal(err)
	}
	if h.Current() != 1 {
		t.Errorf("expected first unannotated 1, got %d", h.Current())
	}

	if err := repo.Upsert(annotation.Annotation{File: datasettest.FileA, Sentence: 1, Label: annotation.OK}); err != nil {
		t.Fatal(err)
	}
	if err := h.Seek(-1); err != nil {
		t.Fatal(err)
	}
	if h.Current() != 2 {
		t.Errorf("expected last sentence when all annotated, got %d", h.Current())
	}
}
