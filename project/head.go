package project

import (
	sent "github.com/revelaction/srlproj/sentence"
)

// Heads returns the tokens of span whose head lies outside the span. A
// single result is the head of the span; none or several mean the span is
// ambiguous. Span bounds outside the sentence are ignored.
func Heads(s sent.Sentence, span sent.Span) []sent.Token {
	start := max(span.Start, 1)
	end := min(span.End, len(s))

	var heads []sent.Token
	for id := start; id <= end; id++ {
		t := s[id-1]
		if !span.Contains(t.Head) {
			heads = append(heads, t)
		}
	}
	return heads
}

// Subtree returns head and all its transitive dependents sorted by id. It
// returns nil when head is not a token of s.
func Subtree(s sent.Sentence, head sent.Token) []sent.Token {
	ids := newTree(s).subtree(head.ID)
	if ids == nil {
		return nil
	}

	tokens := make([]sent.Token, len(ids))
	for i, id := range ids {
		tokens[i] = s[id-1]
	}
	return tokens
}
