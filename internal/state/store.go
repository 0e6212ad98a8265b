// Package state holds the reconciled client-side caches: the latest known
// match and odds snapshots, and the authenticated user with balance. All
// mutation goes through the store; the channel layer only hands it typed
// updates, so tests can drive it without a live connection.
package state

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/betbot/sportsbook/internal/domain"
	"github.com/betbot/sportsbook/internal/metrics"
	"github.com/betbot/sportsbook/pkg/sigchan"
)

var log = logrus.WithField("component", "state")

// Snapshot is the latest known view of one match.
type Snapshot struct {
	Event domain.Event
	Odds  *domain.MatchOdds
}

type matchEntry struct {
	event domain.Event
	odds  *domain.MatchOdds

	// Last applied server timestamps, used to drop reordered updates.
	// Zero-timestamp updates are always applied (last writer wins).
	lastOddsAt  time.Time
	lastMatchAt time.Time
}

// Store is the process-wide reconciled cache. Reads return copies; writers
// win in arrival order per field.
type Store struct {
	mu      sync.RWMutex
	matches map[int64]*matchEntry
	user    *domain.User

	changes *sigchan.Chan
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		matches: make(map[int64]*matchEntry),
		changes: sigchan.New(1),
	}
}

// Changes signals after every applied mutation so views can re-render.
// Signals coalesce; receivers should re-read whatever they display.
func (s *Store) Changes() <-chan struct{} {
	return s.changes.C()
}

// SetMatches replaces the known matches from an initial REST load, keeping
// any odds already reconciled for ids that survive the reload.
func (s *Store) SetMatches(events []domain.Event) {
	s.mu.Lock()
	next := make(map[int64]*matchEntry, len(events))
	for _, ev := range events {
		entry := &matchEntry{event: ev}
		if prev, ok := s.matches[ev.ID]; ok {
			entry.odds = prev.odds
			entry.lastOddsAt = prev.lastOddsAt
		}
		next[ev.ID] = entry
	}
	s.matches = next
	s.mu.Unlock()
	s.changes.Emit()
}

// UpsertMatch inserts or overwrites a single match snapshot.
func (s *Store) UpsertMatch(ev domain.Event) {
	s.mu.Lock()
	if entry, ok := s.matches[ev.ID]; ok {
		entry.event = ev
	} else {
		s.matches[ev.ID] = &matchEntry{event: ev}
	}
	s.mu.Unlock()
	s.changes.Emit()
}

// ApplyOdds overwrites the odds snapshot for a match. An update older than
// the last applied one for that match is discarded and false is returned.
func (s *Store) ApplyOdds(matchID int64, odds domain.MatchOdds, at time.Time) bool {
	s.mu.Lock()
	entry, ok := s.matches[matchID]
	if !ok {
		// Odds can arrive before the match itself is loaded; keep them so
		// the snapshot is complete once the event shows up.
		entry = &matchEntry{event: domain.Event{ID: matchID}}
		s.matches[matchID] = entry
	}
	if !at.IsZero() && !entry.lastOddsAt.IsZero() && at.Before(entry.lastOddsAt) {
		s.mu.Unlock()
		metrics.StaleUpdatesDropped.Inc()
		log.WithField("match_id", matchID).Debug("stale odds update dropped")
		return false
	}
	o := odds
	entry.odds = &o
	if !at.IsZero() {
		entry.lastOddsAt = at
	}
	s.mu.Unlock()
	s.changes.Emit()
	return true
}

// MergeMatch merges score, status and minute into a match. Absent fields are
// left untouched. Updates older than the last applied one are discarded.
func (s *Store) MergeMatch(matchID int64, score *domain.Score, status domain.EventStatus, minute *int, at time.Time) bool {
	s.mu.Lock()
	entry, ok := s.matches[matchID]
	if !ok {
		entry = &matchEntry{event: domain.Event{ID: matchID}}
		s.matches[matchID] = entry
	}
	if !at.IsZero() && !entry.lastMatchAt.IsZero() && at.Before(entry.lastMatchAt) {
		s.mu.Unlock()
		metrics.StaleUpdatesDropped.Inc()
		log.WithField("match_id", matchID).Debug("stale match update dropped")
		return false
	}
	if score != nil {
		sc := *score
		entry.event.Score = &sc
	}
	if status != "" {
		entry.event.Status = status
	}
	if minute != nil {
		entry.event.Minute = *minute
	}
	if !at.IsZero() {
		entry.lastMatchAt = at
	}
	s.mu.Unlock()
	s.changes.Emit()
	return true
}

// Match returns a copy of the latest snapshot for a match.
func (s *Store) Match(matchID int64) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.matches[matchID]
	if !ok {
		return Snapshot{}, false
	}
	return entry.snapshot(), true
}

// Matches returns copies of all known match snapshots.
func (s *Store) Matches() []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Snapshot, 0, len(s.matches))
	for _, entry := range s.matches {
		out = append(out, entry.snapshot())
	}
	return out
}

func (e *matchEntry) snapshot() Snapshot {
	snap := Snapshot{Event: e.event}
	if e.event.Score != nil {
		sc := *e.event.Score
		snap.Event.Score = &sc
	}
	if e.odds != nil {
		o := *e.odds
		snap.Odds = &o
	}
	return snap
}

// SetUser installs the authenticated user, or clears it when u is nil.
func (s *Store) SetUser(u *domain.User) {
	s.mu.Lock()
	if u == nil {
		s.user = nil
	} else {
		copied := *u
		s.user = &copied
	}
	s.mu.Unlock()
	s.changes.Emit()
}

// User returns a copy of the authenticated user, or nil when logged out.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

// SetBalance overwrites the current user's balance. It is a no-op when no
// user is logged in, since there is nothing to attach the balance to.
func (s *Store) SetBalance(balance decimal.Decimal) bool {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		log.Warn("balance update with no authenticated user, ignored")
		return false
	}
	s.user.Balance = balance
	s.mu.Unlock()
	s.changes.Emit()
	return true
}
