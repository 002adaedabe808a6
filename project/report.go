package project

// DropReason tells why a span was not projected.
type DropReason int

const (
	// AmbiguousHead: the span has zero or several tokens with a head
	// outside the span.
	AmbiguousHead DropReason = iota

	// Unaligned: the span head has no aligned Hebrew token.
	Unaligned

	// AmbiguousAlignment: the span head is aligned to several Hebrew tokens.
	AmbiguousAlignment

	// OutOfRange: the aligned Hebrew id is not a token of the Hebrew
	// sentence.
	OutOfRange

	numReasons
)

func (r DropReason) String() string {
	switch r {
	case AmbiguousHead:
		return "ambiguous_head"
	case Unaligned:
		return "unaligned"
	case AmbiguousAlignment:
		return "ambiguous_alignment"
	case OutOfRange:
		return "out_of_range"
	}
	return "unknown"
}

// Reasons returns all drop reasons.
func Reasons() []DropReason {
	return []DropReason{AmbiguousHead, Unaligned, AmbiguousAlignment, OutOfRange}
}

// Report counts the outcome of a projection.
type Report struct {
	TargetsProjected  int `json:"targets_projected"`
	TargetsDropped    int `json:"targets_dropped"`
	ElementsProjected int `json:"elements_projected"`
	ElementsDropped   int `json:"elements_dropped"`

	Drops [numReasons]int `json:"drops"`
}

// Dropped returns the number of spans dropped for reason r.
func (rp Report) Dropped(r DropReason) int {
	if r < 0 || r >= numReasons {
		return 0
	}
	return rp.Drops[r]
}

// Add accumulates other into rp.
func (rp *Report) Add(other Report) {
	rp.TargetsProjected += other.TargetsProjected
	rp.TargetsDropped += other.TargetsDropped
	rp.ElementsProjected += other.ElementsProjected
	rp.ElementsDropped += other.ElementsDropped
	for i := range rp.Drops {
		rp.Drops[i] += other.Drops[i]
	}
}
