package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/revelaction/srlproj/annotation"
	sent "github.com/revelaction/srlproj/sentence"
)

const Defaultformat = "all"

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"
	//Yellow256  = "\033[1;38;5;202m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

// SupportedFormats returns the formats of a sentence pair, in NextFormat
// order.
//
// all: sentences, frames, tokens and alignment
// frames: sentences and frames
// text: the two sentences only
func SupportedFormats() []string {
	return []string{"all", "frames", "text"}
}

type Renderer struct {
	W io.Writer

	HasColor bool

	HasPrefix bool

	Format string
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w, Format: Defaultformat}
}

// Pair writes the sentence pair p and its label.
func (r *Renderer) Pair(p sent.Pair, label annotation.Label) {
	fmt.Fprintf(r.W, "%s %d %s\n", r.title(p.File), p.Index, r.label(label))
	fmt.Fprintf(r.W, "EN: %s\n", p.English.Words.Text())
	fmt.Fprintf(r.W, "HE: %s\n", p.Hebrew.Words.Text())

	if r.Format == "text" {
		return
	}

	if p.SRLError != "" {
		fmt.Fprintf(r.W, "%s\n", r.color(Red, "SRL: "+p.SRLError))
	}

	fmt.Fprintf(r.W, "\nEnglish frames:\n")
	r.Frames(p.English.Words, p.English.Frames)
	fmt.Fprintf(r.W, "\nHebrew frames:\n")
	r.Frames(p.Hebrew.Words, p.Hebrew.Frames)

	if r.Format == "frames" {
		return
	}

	fmt.Fprintf(r.W, "\nEnglish tokens:\n")
	r.Tokens(p.English.Words)
	fmt.Fprintf(r.W, "\nHebrew tokens:\n")
	r.Tokens(p.Hebrew.Words)

	fmt.Fprintf(r.W, "\nAlignment:\n")
	r.Alignment(p.Alignment, p.English.Words, p.Hebrew.Words)
}

// Frames writes one block per frame: the sentence with the target
// highlighted, then each element with its span.
func (r *Renderer) Frames(s sent.Sentence, frames []sent.Frame) {
	if len(frames) == 0 {
		fmt.Fprintf(r.W, "  (none)\n")
		return
	}

	for _, f := range frames {
		fmt.Fprintf(r.W, "  %s [%d,%d]: %s\n", r.color(Yellow256, f.Name), f.Target.Start, f.Target.End, r.SentenceString(s, f.Target))
		for _, e := range f.Elements {
			fmt.Fprintf(r.W, "    %-20s [%d,%d] %s\n", e.Name, e.Span.Start, e.Span.End, r.SpanString(s, e.Span))
		}
	}
}

// Tokens writes a table of the parse of s.
func (r *Renderer) Tokens(s sent.Sentence) {
	tw := tabwriter.NewWriter(r.W, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "  id\tform\tlemma\tupos\thead\tdeprel\n")
	for _, t := range s {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%d\t%s\n", t.ID, t.Form, t.Lemma, t.UPos, t.Head, t.DepRel)
	}
	tw.Flush()
}

// Alignment writes one line per link with the forms of both tokens.
func (r *Renderer) Alignment(pairs []sent.AlignmentPair, en, he sent.Sentence) {
	for _, p := range pairs {
		enTok, _ := en.Token(p.En)
		heTok, _ := he.Token(p.He)
		fmt.Fprintf(r.W, "  %2d %-15s → %2d %s\n", p.En, enTok.Form, p.He, heTok.Form)
	}
}

// SentenceString returns the text of s with the tokens of span colored.
func (r *Renderer) SentenceString(s sent.Sentence, span sent.Span) string {
	forms := make([]string, len(s))
	for i, t := range s {
		forms[i] = colorToken(t, span, r.HasColor)
	}
	return strings.Join(forms, " ")
}

// SpanString returns the text of the tokens of span.
func (r *Renderer) SpanString(s sent.Sentence, span sent.Span) string {
	var forms []string
	for _, t := range s {
		if span.Contains(t.ID) {
			forms = append(forms, t.Form)
		}
	}
	return strings.Join(forms, " ")
}

// Files writes the data file names with their number of annotations.
func (r *Renderer) Files(names []string, counts map[string]int) {
	for _, name := range names {
		fmt.Fprintf(r.W, "%s%s\n", r.prefix(counts[name]), name)
	}
}

// Sentences writes the English sentences of a data file with their labels.
func (r *Renderer) Sentences(texts []string, labels map[int]annotation.Label) {
	for i, text := range texts {
		label, ok := labels[i]
		if !ok {
			label = annotation.None
		}

		var prefix string
		if r.HasPrefix {
			prefix = PrefixFuncIconHand(i)
		}
		fmt.Fprintf(r.W, "%s%s %s\n", prefix, r.label(label), text)
	}
}

func colorToken(token sent.Token, span sent.Span, hasColor bool) string {
	if !hasColor {
		return token.Form
	}

	if span.Contains(token.ID) {
		return Green256 + token.Form + Off
	}

	return token.Form
}

func (r *Renderer) color(c, s string) string {
	if !r.HasColor {
		return s
	}
	return c + s + Off
}

func (r *Renderer) label(l annotation.Label) string {
	tag := fmt.Sprintf("[%-10s]", l)
	switch l {
	case annotation.None:
		return r.color(Gray, tag)
	case annotation.OK:
		return r.color(Green, tag)
	}
	return r.color(Red, tag)
}

func (r *Renderer) prefix(count int) string {
	if !r.HasPrefix {
		return ""
	}
	return fmt.Sprintf("[%5d] 🔖 ", count)
}

func PrefixFuncIconHand(index int) string {
	return fmt.Sprintf("%4d ✍  ", index)
}

func (r *Renderer) title(file string) string {
	l := len(file)
	var part string
	if l <= 40 {
		part = fmt.Sprintf("%-40s", file)
	} else {
		part = file[:40]
	}

	return r.color(Grey256, part)
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {

	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			switch i {
			case len(supported) - 1:
				r.Format = supported[0]
			default:
				r.Format = supported[i+1]
			}

			break
		}
	}
}

func (r *Renderer) NextPrefix() {

	// toggle
	r.HasPrefix = !r.HasPrefix
}
