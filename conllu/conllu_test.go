package conllu

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const twoSentences = `# sent_id = 1
# text = I saw her.
1	I	I	PRON	PRP	_	2	nsubj	_	_
2	saw	see	VERB	VBD	_	0	root	_	_
3	her	she	PRON	PRP	_	2	obj	_	_
4	.	.	PUNCT	.	_	2	punct	_	_

1-2	אני ראיתי	_	_	_	_	_	_	_	_
1	אני	אני	PRON	PRON	_	2	nsubj	_	_
2	ראיתי	ראה	VERB	VERB	_	0	root	_	_
2.1	_	_	_	_	_	_	_	_	_
3	אותה	את	ADP	ADP	_	2	obj	_	_
`

func TestParse(t *testing.T) {
	sentences, err := Parse(strings.NewReader(twoSentences))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(sentences))
	}

	en := sentences[0]
	if len(en) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(en))
	}
	if en[1].Form != "saw" || en[1].Head != 0 || en[1].Lemma != "see" || en[1].DepRel != "root" {
		t.Errorf("unexpected token: %+v", en[1])
	}
	if en.Text() != "I saw her ." {
		t.Errorf("unexpected text %q", en.Text())
	}

	he := sentences[1]
	if len(he) != 3 {
		t.Fatalf("expected multiword and empty nodes to be skipped, got %d tokens", len(he))
	}
	if he[2].Form != "אותה" || he[2].Head != 2 {
		t.Errorf("unexpected token: %+v", he[2])
	}
}

func TestParseUnderscoreHead(t *testing.T) {
	in := "1\tHi\t_\t_\t_\t_\t_\t_\t_\t_\n"
	sentences, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sentences[0][0].Head != 0 {
		t.Errorf("expected head 0, got %d", sentences[0][0].Head)
	}
	if sentences[0][0].Lemma != "" {
		t.Errorf("expected empty lemma, got %q", sentences[0][0].Lemma)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"short row", "1\tHi\t_\n", ErrMalformedRow},
		{"bad id", "x\tHi\t_\t_\t_\t_\t0\troot\n", ErrMalformedRow},
		{"bad head", "1\tHi\t_\t_\t_\t_\tx\troot\n", ErrMalformedRow},
		{"gap", "1\tHi\t_\t_\t_\t_\t0\troot\n3\tthere\t_\t_\t_\t_\t1\tdep\n", ErrNonContiguous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.conllu")
	if err := os.WriteFile(path, []byte(twoSentences), 0644); err != nil {
		t.Fatal(err)
	}

	sentences, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sentences) != 2 {
		t.Errorf("expected 2 sentences, got %d", len(sentences))
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
