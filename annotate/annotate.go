// Package annotate is the interactive labeling session of a data file.
package annotate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/revelaction/srlproj/annotation"
	"github.com/revelaction/srlproj/dataset"
	"github.com/revelaction/srlproj/render"
	"github.com/revelaction/srlproj/storage"
)

const (
	actionLabel = iota
	actionNext
	actionPrev
	actionJump
	actionShow
	actionQuit
)

type command struct {
	action int
	label  annotation.Label
	index  int
}

type Handler struct {
	File     string
	Records  []dataset.Record
	Repo     storage.AnnotationRepository
	Renderer *render.Renderer

	current int
}

func NewHandler(file string, records []dataset.Record, repo storage.AnnotationRepository, r *render.Renderer) *Handler {
	return &Handler{
		File:     file,
		Records:  records,
		Repo:     repo,
		Renderer: r,
	}
}

// Current returns the index of the sentence being labeled.
func (h *Handler) Current() int {
	return h.current
}

// Seek moves to sentence index. A negative index moves to the first sentence
// without annotation, or to the last sentence if all are annotated.
func (h *Handler) Seek(index int) error {
	if len(h.Records) == 0 {
		return errors.New("no sentences to annotate")
	}

	if index >= len(h.Records) {
		return fmt.Errorf("%w: %d (file has %d sentences)", dataset.ErrSentenceOutOfRange, index, len(h.Records))
	}

	if index >= 0 {
		h.current = index
		return nil
	}

	anns, err := h.Repo.ByFile(h.File)
	if err != nil {
		return err
	}

	done := map[int]bool{}
	for _, a := range anns {
		done[a.Sentence] = true
	}

	h.current = len(h.Records) - 1
	for i := range h.Records {
		if !done[i] {
			h.current = i
			break
		}
	}
	return nil
}

func (h *Handler) Run() error {

	w := h.Renderer.W
	fmt.Fprintln(w, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, n: next, p: previous, <index>: jump, 🔧 quit")

	if err := h.show(); err != nil {
		return err
	}

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input(fmt.Sprintf("%4d 🔖 ", h.current), h.completer(),
			prompt.OptionTitle("srlproj annotate"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(w, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintln(w, "Prefix set to "+fmt.Sprintf("%t", h.Renderer.HasPrefix))
				}}),
		)

		history = append(history, in)

		quit, err := h.Execute(in)
		if err != nil {
			fmt.Fprintf(w, "❌ %s\n", err)
			continue
		}

		if quit {
			return nil
		}
	}
}

// Execute runs one line of input. It returns true when the session ends.
func (h *Handler) Execute(in string) (bool, error) {
	cmd, err := parse(in)
	if err != nil {
		return false, err
	}

	switch cmd.action {
	case actionQuit:
		return true, nil

	case actionLabel:
		a := annotation.Annotation{File: h.File, Sentence: h.current, Label: cmd.label}
		if err := h.Repo.Upsert(a); err != nil {
			return false, err
		}
		fmt.Fprintf(h.Renderer.W, "✍  %d %s\n", h.current, cmd.label)

		if h.current == len(h.Records)-1 {
			fmt.Fprintln(h.Renderer.W, "last sentence of the file")
			return false, nil
		}
		h.current++

	case actionNext:
		if h.current < len(h.Records)-1 {
			h.current++
		}

	case actionPrev:
		if h.current > 0 {
			h.current--
		}

	case actionJump:
		if err := h.Seek(cmd.index); err != nil {
			return false, err
		}
	}

	return false, h.show()
}

func (h *Handler) show() error {
	label := annotation.None
	a, err := h.Repo.Get(h.File, h.current)
	switch {
	case err == nil:
		label = a.Label
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}

	h.Renderer.Pair(h.Records[h.current].Pair, label)
	return nil
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {

		s := []prompt.Suggest{}
		word := in.GetWordBeforeCursor()

		if word == "" {
			return s
		}

		for _, l := range annotation.Labels() {
			if strings.HasPrefix(string(l), word) {
				s = append(s, prompt.Suggest{Text: string(l), Description: l.Description()})
			}
		}

		return s
	}
}

func parse(in string) (command, error) {
	tokens := strings.Fields(in)

	if len(tokens) == 0 {
		return command{action: actionShow}, nil
	}

	if len(tokens) > 1 {
		return command{}, errors.New("one label or command per line")
	}

	switch tokens[0] {
	case "quit":
		return command{action: actionQuit}, nil
	case "n", "next":
		return command{action: actionNext}, nil
	case "p", "prev":
		return command{action: actionPrev}, nil
	}

	if i, err := strconv.Atoi(tokens[0]); err == nil {
		if i < 0 {
			return command{}, errors.New("sentence index must be non negative")
		}
		return command{action: actionJump, index: i}, nil
	}

	l, err := annotation.ParseLabel(tokens[0])
	if err != nil {
		return command{}, err
	}
	return command{action: actionLabel, label: l}, nil
}
