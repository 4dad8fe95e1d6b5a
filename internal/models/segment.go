package models

// Segment is a contiguous slice of session time attributed to one domain and
// one category. Timestamps are unix milliseconds. End == 0 means the segment
// is still open; within a session only the last segment may be open.
type Segment struct {
	Color  string `json:"color"`
	Domain string `json:"domain,omitempty"`
	Start  int64  `json:"start"`
	End    int64  `json:"end,omitempty"`
}

func (s *Segment) IsOpen() bool {
	return s.End == 0
}

// EffectiveEnd substitutes now for an open segment's end.
func (s *Segment) EffectiveEnd(now int64) int64 {
	if s.End == 0 {
		return now
	}
	return s.End
}

func (s *Segment) DurationMs(now int64) int64 {
	return s.EffectiveEnd(now) - s.Start
}

// LiveSnapshot is the point-in-time copy of an in-progress session that is
// persisted on every mutation and handed to render surfaces.
type LiveSnapshot struct {
	StartTime int64     `json:"startTime"`
	Segments  []Segment `json:"segments"`
}
