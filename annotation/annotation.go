package annotation

import (
	"fmt"
	"strings"
)

// Label is the judgement of a linguist on a sentence pair.
type Label string

const (
	ErrSentence     Label = "err_sent"
	ErrWord         Label = "err_word"
	PoorTranslation Label = "poor_trans"
	PoorSyntax      Label = "poor_syn"
	PoorFrame       Label = "poor_frame"
	OK              Label = "ok"

	// None is shown for sentences without annotation. It is never stored.
	None Label = "none"
)

var descriptions = map[Label]string{
	ErrSentence:     "Error in Sentence Alignment",
	ErrWord:         "Error in Word Alignment",
	PoorTranslation: "Poor Translation",
	PoorSyntax:      "Poor Syntactic Parsing",
	PoorFrame:       "Poor Frame Parsing",
	OK:              "OK",
}

// Labels returns the labels that can be stored, in form order.
func Labels() []Label {
	return []Label{ErrSentence, ErrWord, PoorTranslation, PoorSyntax, PoorFrame, OK}
}

func (l Label) Description() string {
	return descriptions[l]
}

// ParseLabel returns the Label for s.
func ParseLabel(s string) (Label, error) {
	l := Label(strings.TrimSpace(s))
	if _, ok := descriptions[l]; !ok {
		return "", fmt.Errorf("unknown label %q, allowed values are %s", s, strings.Join(labelStrings(), ", "))
	}
	return l, nil
}

func labelStrings() []string {
	var s []string
	for _, l := range Labels() {
		s = append(s, string(l))
	}
	return s
}

// Annotation labels the sentence with index Sentence of the data file File.
type Annotation struct {
	File     string `json:"file"`
	Sentence int    `json:"sentence"`
	Label    Label  `json:"label"`
}
