package stat

import (
	"github.com/revelaction/srlproj/align"
	"github.com/revelaction/srlproj/dataset"
	"github.com/revelaction/srlproj/project"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int

	// Sentences whose SRL record could not be decoded
	NumMalformed int

	NumFrames int

	// Projection outcome summed over all sentences
	Projection project.Report

	Alignment align.GroupStats
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{TokensPerSentenceDis: map[int]int{}}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the records to the stats. It can be called once per data
// file.
func (h *Handler) Aggregate(records []dataset.Record) {
	h.stats.NumSentences += len(records)

	for _, r := range records {
		h.stats.NumTokens += len(r.English.Words)
		h.stats.TokensPerSentenceDis[len(r.English.Words)]++
		h.stats.NumFrames += len(r.English.Frames)
		h.stats.Projection.Add(r.Report)

		if r.SRLError != "" {
			h.stats.NumMalformed++
		}

		gs := align.Groups(r.Alignment)
		h.stats.Alignment.OneToOne += gs.OneToOne
		h.stats.Alignment.OneToMany += gs.OneToMany
	}

	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
	}
}
