// Package datasettest writes a small parallel corpus for tests.
package datasettest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	// FileA has three sentence pairs: a projectable one, one with a
	// malformed SRL record and one with an ambiguous alignment.
	FileA = "OpenSubtitles_en_tt0111161_he"

	// FileB has the first sentence pair of FileA only.
	FileB = "OpenSubtitles_en_tt0068646_he"
)

var english = []string{
	`# text = I saw the dog .
1	I	I	PRON	PRP	_	2	nsubj	_	_
2	saw	see	VERB	VBD	_	0	root	_	_
3	the	the	DET	DT	_	4	det	_	_
4	dog	dog	NOUN	NN	_	2	obj	_	_
5	.	.	PUNCT	.	_	2	punct	_	_
`,
	`1	Hello	hello	INTJ	UH	_	0	root	_	_
`,
	`1	Run	run	VERB	VB	_	0	root	_	_
2	.	.	PUNCT	.	_	1	punct	_	_
`,
}

var hebrew = []string{
	`1	ראיתי	ראה	VERB	VERB	_	0	root	_	_
2	את	את	ADP	ADP	_	3	case	_	_
3	הכלב	כלב	NOUN	NOUN	_	1	obj	_	_
4	.	.	PUNCT	PUNCT	_	1	punct	_	_
`,
	`1	שלום	שלום	INTJ	INTJ	_	0	root	_	_
`,
	`1	רוץ	רץ	VERB	VERB	_	0	root	_	_
2	.	.	PUNCT	PUNCT	_	1	punct	_	_
`,
}

var frames = []string{
	`{"frames":[{"target":{"name":"Perception_experience","spans":[{"start":1,"end":2,"text":"saw"}]},"annotationSets":[{"rank":0,"score":1.0,"frameElements":[{"name":"Perceiver_passive","spans":[{"start":0,"end":1,"text":"I"}]},{"name":"Phenomenon","spans":[{"start":2,"end":4,"text":"the dog"}]}]}]}],"tokens":["I","saw","the","dog","."]}`,
	`{"frames":[{"annotationSets":[]}],"tokens":["Hello"]}`,
	`{"frames":[{"target":{"name":"Self_motion","spans":[{"start":0,"end":1,"text":"Run"}]},"annotationSets":[{"rank":0,"score":1.0,"frameElements":[]}]}],"tokens":["Run","."]}`,
}

var alignments = []string{
	"0-0 1-0 2-2 3-2 4-3",
	"0-0",
	"0-0 0-1 1-1",
}

// Write creates the corpus below root.
func Write(t *testing.T, root string) {
	t.Helper()

	write(t, root, FileA, len(english))
	write(t, root, FileB, 1)
}

func write(t *testing.T, root, name string, n int) {
	t.Helper()

	files := map[string]string{
		filepath.Join("english_parsed", name):              strings.Join(english[:n], "\n"),
		filepath.Join("hebrew_parsed", name):               strings.Join(hebrew[:n], "\n"),
		filepath.Join("english_srl", name):                 strings.Join(frames[:n], "\n") + "\n",
		filepath.Join("fastalign_outputs", name+".forward"): strings.Join(alignments[:n], "\n") + "\n",
	}

	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}
