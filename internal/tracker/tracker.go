// Package tracker owns the in-progress session's segment list. It is the
// single writer: every mutation happens under one mutex, so racing tab and
// navigation events apply in arrival order.
package tracker

import (
	"fsd/internal/models"
	"sync"
)

// EventKind distinguishes the two activity event flavors. Tab switches
// always open a fresh segment — dwell time on a revisited tab counts
// separately. URL updates on the same tab are deduped when neither domain
// nor category changed.
type EventKind int

const (
	TabSwitch EventKind = iota
	URLUpdate
)

// Tracker is the two-state session machine: inactive until Start, active
// until Stop. The onMutate hook fires with a fresh snapshot after every
// segment-list change, outside the lock.
type Tracker struct {
	mu        sync.Mutex
	active    bool
	startTime int64
	segments  []models.Segment
	onMutate  func(models.LiveSnapshot)
}

func New() *Tracker {
	return &Tracker{}
}

// SetOnMutate installs the persistence/broadcast hook. Must be called
// before the tracker receives events.
func (t *Tracker) SetOnMutate(fn func(models.LiveSnapshot)) {
	t.onMutate = fn
}

func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *Tracker) SegmentCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.segments)
}

// Start transitions inactive→active with a single open segment for the
// current activity. No-op while active.
func (t *Tracker) Start(now int64, domain, color string) {
	t.mu.Lock()
	if t.active {
		t.mu.Unlock()
		return
	}
	t.active = true
	t.startTime = now
	t.segments = []models.Segment{{Color: color, Domain: domain, Start: now}}
	snap := t.snapshotLocked()
	t.mu.Unlock()

	t.notify(snap)
}

// ActivityChanged closes the open segment and opens a new one for the new
// activity. URL updates that change neither domain nor color are dropped;
// tab switches always cut a segment. No-op while inactive.
func (t *Tracker) ActivityChanged(kind EventKind, now int64, domain, color string) {
	t.mu.Lock()
	if !t.active {
		t.mu.Unlock()
		return
	}

	if last := t.openSegmentLocked(); last != nil {
		if kind == URLUpdate && last.Color == color && last.Domain == domain {
			t.mu.Unlock()
			return
		}
		last.End = now
	}

	t.segments = append(t.segments, models.Segment{Color: color, Domain: domain, Start: now})
	snap := t.snapshotLocked()
	t.mu.Unlock()

	t.notify(snap)
}

// UpdateSegmentColor retro-colors the still-open segment that started at
// segmentStart, used when an async content classification lands after the
// segment was opened. Returns false when the segment has already been
// closed or superseded, or the color is unchanged.
func (t *Tracker) UpdateSegmentColor(segmentStart int64, color string) bool {
	t.mu.Lock()
	if !t.active {
		t.mu.Unlock()
		return false
	}

	seg := t.openSegmentLocked()
	if seg == nil || seg.Start != segmentStart || seg.Color == color {
		t.mu.Unlock()
		return false
	}
	seg.Color = color
	snap := t.snapshotLocked()
	t.mu.Unlock()

	t.notify(snap)
	return true
}

// Stop closes the open segment, returns the finalized snapshot and resets
// to inactive. The second return is false when no session was running.
func (t *Tracker) Stop(now int64) (models.LiveSnapshot, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return models.LiveSnapshot{}, false
	}

	if seg := t.openSegmentLocked(); seg != nil {
		seg.End = now
	}
	snap := t.snapshotLocked()

	t.active = false
	t.startTime = 0
	t.segments = nil
	return snap, true
}

// Snapshot returns a copy of the live state; false while inactive.
func (t *Tracker) Snapshot() (models.LiveSnapshot, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return models.LiveSnapshot{}, false
	}
	return t.snapshotLocked(), true
}

// Restore resumes a previously persisted session after a process restart.
func (t *Tracker) Restore(snap models.LiveSnapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if snap.StartTime == 0 {
		return
	}
	t.active = true
	t.startTime = snap.StartTime
	t.segments = append([]models.Segment(nil), snap.Segments...)
}

// openSegmentLocked returns the trailing open segment, nil when the list is
// empty or already closed. Only the last segment may ever be open.
func (t *Tracker) openSegmentLocked() *models.Segment {
	if len(t.segments) == 0 {
		return nil
	}
	last := &t.segments[len(t.segments)-1]
	if !last.IsOpen() {
		return nil
	}
	return last
}

func (t *Tracker) snapshotLocked() models.LiveSnapshot {
	return models.LiveSnapshot{
		StartTime: t.startTime,
		Segments:  append([]models.Segment(nil), t.segments...),
	}
}

func (t *Tracker) notify(snap models.LiveSnapshot) {
	if t.onMutate != nil {
		t.onMutate(snap)
	}
}
