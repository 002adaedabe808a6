package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/revelaction/srlproj/annotation"
	sent "github.com/revelaction/srlproj/sentence"
)

var en = sent.Sentence{
	{ID: 1, Head: 2, Form: "I"},
	{ID: 2, Head: 0, Form: "saw"},
	{ID: 3, Head: 4, Form: "the"},
	{ID: 4, Head: 2, Form: "dog"},
}

func TestSentenceString(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{})

	if got := r.SentenceString(en, sent.Span{Start: 3, End: 4}); got != "I saw the dog" {
		t.Errorf("unexpected text without color %q", got)
	}

	r.HasColor = true
	want := "I saw " + Green256 + "the" + Off + " " + Green256 + "dog" + Off
	if got := r.SentenceString(en, sent.Span{Start: 3, End: 4}); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSpanString(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{})
	if got := r.SpanString(en, sent.Span{Start: 1, End: 2}); got != "I saw" {
		t.Errorf("unexpected span text %q", got)
	}
	if got := r.SpanString(en, sent.Span{Start: 7, End: 9}); got != "" {
		t.Errorf("expected empty span text, got %q", got)
	}
}

func TestPairFormats(t *testing.T) {
	p := sent.Pair{
		File: "f",
		English: sent.Side{
			Words:  en,
			Frames: []sent.Frame{{Name: "Perception", Target: sent.Span{Start: 2, End: 2}, Elements: []sent.FrameElement{{Name: "Phenomenon", Span: sent.Span{Start: 3, End: 4}}}}},
		},
		Hebrew:    sent.Side{Words: sent.Sentence{{ID: 1, Head: 0, Form: "ראיתי"}}},
		Alignment: []sent.AlignmentPair{{En: 2, He: 1}},
	}

	tests := []struct {
		format  string
		want    []string
		notWant []string
	}{
		{"text", []string{"EN: I saw the dog", "HE: ראיתי", "[ok"}, []string{"English frames"}},
		{"frames", []string{"Perception [2,2]", "Phenomenon", "the dog", "(none)"}, []string{"Alignment"}},
		{"all", []string{"deprel", "saw", "→"}, nil},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		r := NewRenderer(&buf)
		r.Format = tt.format
		r.Pair(p, annotation.OK)

		out := buf.String()
		for _, w := range tt.want {
			if !strings.Contains(out, w) {
				t.Errorf("%s: expected %q in output:\n%s", tt.format, w, out)
			}
		}
		for _, w := range tt.notWant {
			if strings.Contains(out, w) {
				t.Errorf("%s: unexpected %q in output:\n%s", tt.format, w, out)
			}
		}
	}
}

func TestSentences(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)
	r.Sentences([]string{"a", "b"}, map[int]annotation.Label{1: annotation.PoorFrame})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "none") || !strings.Contains(lines[1], "poor_frame") {
		t.Errorf("unexpected labels %q", lines)
	}
}

func TestNextFormat(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{})
	for _, want := range []string{"frames", "text", "all"} {
		r.NextFormat()
		if r.Format != want {
			t.Errorf("expected %s, got %s", want, r.Format)
		}
	}
}
