// Package srl reads and writes frame-semantic parses stored as one JSON
// object per sentence and per line.
//
// Spans in the files are zero-based and end-exclusive. They are converted to
// closed, one-based sentence.Span values on read and back on write.
package srl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	sent "github.com/revelaction/srlproj/sentence"
)

// ErrMalformedFrame indicates a frame without the target or frame element
// structure. It invalidates the SRL of one sentence only.
var ErrMalformedFrame = errors.New("srl: malformed frame record")

type rawSentence struct {
	Frames *[]rawFrame `json:"frames"`
	Tokens []string    `json:"tokens,omitempty"`
}

type rawFrame struct {
	Target         *rawTarget         `json:"target"`
	AnnotationSets []rawAnnotationSet `json:"annotationSets"`
}

type rawTarget struct {
	Name  string    `json:"name"`
	Spans []rawSpan `json:"spans"`
}

type rawAnnotationSet struct {
	Rank          int                `json:"rank"`
	Score         float64            `json:"score"`
	FrameElements *[]rawFrameElement `json:"frameElements"`
}

type rawFrameElement struct {
	Name  string    `json:"name"`
	Spans []rawSpan `json:"spans"`
}

type rawSpan struct {
	Start *int   `json:"start"`
	End   *int   `json:"end"`
	Text  string `json:"text,omitempty"`
}

// Record is the SRL of one sentence. Err is set, wrapping ErrMalformedFrame,
// when the line was valid JSON but missed a required structure.
type Record struct {
	Frames []sent.Frame
	Err    error
}

// ReadFile reads the JSON lines file at path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Read decodes one Record per line of r. A blank line is a sentence without
// SRL and gets a Record wrapping ErrMalformedFrame, so records stay aligned
// with the sentences of the parse files. Blank lines at the end are ignored.
// A line that is not JSON is an error for the whole input.
func Read(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var records []Record
	lineNum := 0
	blank := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			blank++
			continue
		}

		for ; blank > 0; blank-- {
			records = append(records, Record{Err: fmt.Errorf("%w: empty line %d", ErrMalformedFrame, lineNum-blank)})
		}

		frames, err := Decode(line)
		if err != nil && !errors.Is(err, ErrMalformedFrame) {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		records = append(records, Record{Frames: frames, Err: err})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return records, nil
}

// Decode converts one JSON line to frames.
func Decode(line []byte) ([]sent.Frame, error) {
	var raw rawSentence
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, fmt.Errorf("JSON decoding error: %w", err)
	}

	if raw.Frames == nil {
		return nil, fmt.Errorf("%w: missing frames", ErrMalformedFrame)
	}

	frames := make([]sent.Frame, 0, len(*raw.Frames))
	for i, rf := range *raw.Frames {
		f, err := decodeFrame(rf)
		if err != nil {
			return nil, fmt.Errorf("%w: frame %d: %s", ErrMalformedFrame, i, err)
		}
		frames = append(frames, f)
	}

	return frames, nil
}

func decodeFrame(rf rawFrame) (sent.Frame, error) {
	if rf.Target == nil {
		return sent.Frame{}, errors.New("missing target")
	}

	target, err := decodeSpans(rf.Target.Spans)
	if err != nil {
		return sent.Frame{}, fmt.Errorf("target: %s", err)
	}

	if len(rf.AnnotationSets) == 0 || rf.AnnotationSets[0].FrameElements == nil {
		return sent.Frame{}, errors.New("missing annotationSets[0].frameElements")
	}

	rfes := *rf.AnnotationSets[0].FrameElements
	f := sent.Frame{
		Name:     rf.Target.Name,
		Target:   target,
		Elements: make([]sent.FrameElement, 0, len(rfes)),
	}

	for i, rfe := range rfes {
		span, err := decodeSpans(rfe.Spans)
		if err != nil {
			return sent.Frame{}, fmt.Errorf("frame element %d: %s", i, err)
		}
		f.Elements = append(f.Elements, sent.FrameElement{Name: rfe.Name, Span: span})
	}

	return f, nil
}

// decodeSpans reads spans[0] only.
func decodeSpans(spans []rawSpan) (sent.Span, error) {
	if len(spans) == 0 {
		return sent.Span{}, errors.New("missing spans[0]")
	}

	s := spans[0]
	if s.Start == nil || s.End == nil {
		return sent.Span{}, errors.New("missing start or end")
	}

	return sent.Span{Start: *s.Start + 1, End: *s.End}, nil
}

// Encode writes frames in the file format as a single JSON line (without
// newline). When words is not nil the span texts are filled in.
func Encode(frames []sent.Frame, words sent.Sentence) ([]byte, error) {
	rfs := make([]rawFrame, 0, len(frames))
	for _, f := range frames {
		fes := make([]rawFrameElement, 0, len(f.Elements))
		for _, fe := range f.Elements {
			fes = append(fes, rawFrameElement{
				Name:  fe.Name,
				Spans: []rawSpan{encodeSpan(fe.Span, words)},
			})
		}

		rfs = append(rfs, rawFrame{
			Target: &rawTarget{
				Name:  f.Name,
				Spans: []rawSpan{encodeSpan(f.Target, words)},
			},
			AnnotationSets: []rawAnnotationSet{{FrameElements: &fes}},
		})
	}

	raw := rawSentence{Frames: &rfs}
	for _, t := range words {
		raw.Tokens = append(raw.Tokens, t.Form)
	}

	return json.Marshal(raw)
}

func encodeSpan(sp sent.Span, words sent.Sentence) rawSpan {
	start := sp.Start - 1
	end := sp.End
	rs := rawSpan{Start: &start, End: &end}

	if words != nil && sp.Start >= 1 && sp.End <= len(words) && sp.Start <= sp.End {
		rs.Text = words[sp.Start-1 : sp.End].Text()
	}
	return rs
}
