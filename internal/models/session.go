package models

// DomainStat is one row of a session's per-domain breakdown.
type DomainStat struct {
	Domain     string `json:"domain"`
	Color      string `json:"color"`
	TotalMs    int64  `json:"totalMs"`
	VisitCount int    `json:"visitCount"`
}

// Session is the immutable record built once at lock-out from the live
// segment list. All open segments are closed at build time.
type Session struct {
	ID              string           `json:"id"`
	DeviceID        string           `json:"deviceId"`
	SessionStart    int64            `json:"sessionStart"`
	SessionEnd      int64            `json:"sessionEnd"`
	TotalMs         int64            `json:"totalMs"`
	CategorySummary map[string]int64 `json:"categorySummary"`
	PerDomain       []DomainStat     `json:"perDomain"`
	Segments        []Segment        `json:"segments"`
	CreatedAt       string           `json:"createdAt"`
}

// SessionIndexEntry is the summary row kept in a device's newest-first index.
type SessionIndexEntry struct {
	ID              string           `json:"id"`
	SessionStart    int64            `json:"sessionStart"`
	SessionEnd      int64            `json:"sessionEnd"`
	TotalMs         int64            `json:"totalMs"`
	CategorySummary map[string]int64 `json:"categorySummary"`
	CreatedAt       string           `json:"createdAt"`
}

func (s *Session) IndexEntry() SessionIndexEntry {
	return SessionIndexEntry{
		ID:              s.ID,
		SessionStart:    s.SessionStart,
		SessionEnd:      s.SessionEnd,
		TotalMs:         s.TotalMs,
		CategorySummary: s.CategorySummary,
		CreatedAt:       s.CreatedAt,
	}
}
