package project

import (
	"log/slog"

	"github.com/revelaction/srlproj/align"
	sent "github.com/revelaction/srlproj/sentence"
)

// Projector maps English frames to Hebrew token space.
type Projector struct {
	logger *slog.Logger
}

// New creates a Projector.
func New(opts ...Option) *Projector {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Projector{logger: cfg.logger}
}

// Project returns the Hebrew frames of the English frames en. Inputs are not
// modified. Frames whose target can not be projected are left out.
func Project(frames []sent.Frame, pairs []sent.AlignmentPair, en, he sent.Sentence) []sent.Frame {
	projected, _ := New().Project(frames, pairs, en, he)
	return projected
}

// Project projects frames as the package level Project does and reports
// what was projected and dropped.
func (p *Projector) Project(frames []sent.Frame, pairs []sent.AlignmentPair, en, he sent.Sentence) ([]sent.Frame, Report) {
	var rp Report

	idx := align.NewIndex(pairs)
	heTree := newTree(he)

	projected := make([]sent.Frame, 0, len(frames))
	for _, f := range frames {
		target, reason, ok := projectSpan(f.Target, idx, en, heTree)
		if !ok {
			rp.TargetsDropped++
			rp.Drops[reason]++
			p.logger.Debug("frame not projected", "frame", f.Name, "start", f.Target.Start, "end", f.Target.End, "reason", reason)
			continue
		}
		rp.TargetsProjected++

		hf := sent.Frame{
			Name:     f.Name,
			Target:   target,
			Elements: make([]sent.FrameElement, 0, len(f.Elements)),
		}

		for _, fe := range f.Elements {
			span, reason, ok := projectSpan(fe.Span, idx, en, heTree)
			if !ok {
				rp.ElementsDropped++
				rp.Drops[reason]++
				p.logger.Debug("frame element not projected", "frame", f.Name, "element", fe.Name, "start", fe.Span.Start, "end", fe.Span.End, "reason", reason)
				continue
			}
			rp.ElementsProjected++
			hf.Elements = append(hf.Elements, sent.FrameElement{Name: fe.Name, Span: span})
		}

		projected = append(projected, hf)
	}

	return projected, rp
}

func projectSpan(span sent.Span, idx align.Index, en sent.Sentence, he *tree) (sent.Span, DropReason, bool) {
	heads := Heads(en, span)
	if len(heads) != 1 {
		return sent.Span{}, AmbiguousHead, false
	}

	aligned := idx.Lookup(heads[0].ID)
	switch {
	case len(aligned) == 0:
		return sent.Span{}, Unaligned, false
	case len(aligned) > 1:
		return sent.Span{}, AmbiguousAlignment, false
	case !he.valid(aligned[0]):
		return sent.Span{}, OutOfRange, false
	}

	ids := he.subtree(aligned[0])
	return sent.Span{Start: ids[0], End: ids[len(ids)-1]}, 0, true
}
