package sentence

import "strings"

// Token represents a word of a dependency parsed sentence.
type Token struct {
	// 1-based position of the token in the sentence.
	ID int `json:"id"`

	// The ID of the syntactic parent, 0 for the root.
	Head int `json:"head"`

	// The unmodified word
	Form string `json:"form"`

	Lemma  string `json:"lemma,omitempty"`
	UPos   string `json:"upos,omitempty"`
	XPos   string `json:"xpos,omitempty"`
	DepRel string `json:"deprel,omitempty"`
}

// Sentence is an ordered sequence of tokens. Token IDs run 1..N and match
// the position in the slice plus one.
type Sentence []Token

// Text joins the forms of the sentence with a space.
func (s Sentence) Text() string {
	forms := make([]string, len(s))
	for i, t := range s {
		forms[i] = t.Form
	}
	return strings.Join(forms, " ")
}

// Token returns the token with the given id.
func (s Sentence) Token(id int) (Token, bool) {
	if id < 1 || id > len(s) {
		return Token{}, false
	}
	return s[id-1], true
}

// Roots returns the tokens with Head 0. A well formed sentence has exactly
// one.
func (s Sentence) Roots() []Token {
	var roots []Token
	for _, t := range s {
		if t.Head == 0 {
			roots = append(roots, t)
		}
	}
	return roots
}

// Span is a closed range of token IDs, Start and End included.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (sp Span) Contains(id int) bool {
	return id >= sp.Start && id <= sp.End
}

func (sp Span) Len() int {
	if sp.End < sp.Start {
		return 0
	}
	return sp.End - sp.Start + 1
}

// FrameElement is a role labeled argument of a frame.
type FrameElement struct {
	Name string `json:"name"`
	Span Span   `json:"span"`
}

// Frame is one predicate invocation: a target span and its elements.
type Frame struct {
	Name     string         `json:"name"`
	Target   Span           `json:"target"`
	Elements []FrameElement `json:"elements"`
}

// AlignmentPair links an English token ID to a Hebrew token ID.
type AlignmentPair struct {
	En int `json:"en"`
	He int `json:"he"`
}

// Side is one language of a sentence pair.
type Side struct {
	Words  Sentence `json:"words"`
	Frames []Frame  `json:"frames"`
}

// Pair is a parallel sentence record: the English parse and SRL, the Hebrew
// parse with the projected SRL, and the word alignment between them.
type Pair struct {
	File  string `json:"file"`
	Index int    `json:"index"`

	// Third "_" separated field of the file name
	IMDBID string `json:"imdbid"`

	English   Side            `json:"english"`
	Hebrew    Side            `json:"hebrew"`
	Alignment []AlignmentPair `json:"alignment"`

	// Not empty when the SRL record of the sentence could not be decoded
	SRLError string `json:"srl_error,omitempty"`
}
