// Package betslip implements the in-progress wager: an ordered set of
// selections plus a stake, with derived totals and submission.
package betslip

import "github.com/betbot/sportsbook/internal/domain"

// Selection is a chosen outcome together with denormalized snapshots of its
// parent event and market, so the slip can render without re-fetching.
type Selection struct {
	OutcomeID int64
	Event     domain.Event
	Market    domain.Market
	Outcome   domain.Outcome
}

// SelectionSet is an insertion-ordered collection of selections, unique by
// outcome id. The zero value is ready to use.
type SelectionSet struct {
	sels []Selection
}

// Add appends sel to the set. Adding an outcome that is already present is a
// no-op and returns false; toggling on a second click is the caller's job.
func (s *SelectionSet) Add(sel Selection) bool {
	if s.Contains(sel.OutcomeID) {
		return false
	}
	s.sels = append(s.sels, sel)
	return true
}

// Remove deletes the selection for the given outcome, preserving the order of
// the rest. Returns false when the outcome was not in the set.
func (s *SelectionSet) Remove(outcomeID int64) bool {
	for i, sel := range s.sels {
		if sel.OutcomeID == outcomeID {
			s.sels = append(s.sels[:i], s.sels[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the set.
func (s *SelectionSet) Clear() {
	s.sels = nil
}

// Contains reports whether the outcome is already selected.
func (s *SelectionSet) Contains(outcomeID int64) bool {
	for _, sel := range s.sels {
		if sel.OutcomeID == outcomeID {
			return true
		}
	}
	return false
}

// Len returns the number of selections.
func (s *SelectionSet) Len() int {
	return len(s.sels)
}

// Selections returns a copy of the selections in insertion order.
func (s *SelectionSet) Selections() []Selection {
	out := make([]Selection, len(s.sels))
	copy(out, s.sels)
	return out
}

// OutcomeIDs returns the selected outcome ids in insertion order.
func (s *SelectionSet) OutcomeIDs() []int64 {
	ids := make([]int64, len(s.sels))
	for i, sel := range s.sels {
		ids[i] = sel.OutcomeID
	}
	return ids
}
