package betslip

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/betbot/sportsbook/internal/domain"
	"github.com/betbot/sportsbook/internal/metrics"
)

var log = logrus.WithField("component", "betslip")

// BettingService places a wager with the platform. Implemented by the REST
// client; the slip never talks to the network directly.
type BettingService interface {
	PlaceBet(ctx context.Context, stake decimal.Decimal, outcomeIDs []int64) (*domain.Bet, error)
}

// AuthState reports whether a user session is active.
type AuthState interface {
	Authenticated() bool
}

// Slip is the bet-slip engine: selections plus stake, with derived totals.
// Derived values are always recomputed from current state, never cached.
type Slip struct {
	mu      sync.Mutex
	set     SelectionSet
	stake   decimal.Decimal
	placing bool

	svc  BettingService
	auth AuthState
}

// NewSlip returns an empty slip bound to its collaborators.
func NewSlip(svc BettingService, auth AuthState) *Slip {
	return &Slip{svc: svc, auth: auth}
}

// Add inserts a selection. Duplicate outcomes are rejected and reported with
// a false return; the caller decides whether that means toggle-off.
func (s *Slip) Add(sel Selection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Add(sel)
}

// Remove drops the selection for the given outcome if present.
func (s *Slip) Remove(outcomeID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Remove(outcomeID)
}

// Clear empties the slip and resets the stake to zero.
func (s *Slip) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set.Clear()
	s.stake = decimal.Zero
}

// SetStake records the stake without validating it. Positivity is enforced at
// submission time so the UI can hold a transient value.
func (s *Slip) SetStake(amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stake = amount
}

// Stake returns the current stake.
func (s *Slip) Stake() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stake
}

// Len returns the number of selections on the slip.
func (s *Slip) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Len()
}

// Selections returns a copy of the current selections in insertion order.
func (s *Slip) Selections() []Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Selections()
}

// TotalOdds is the product of the selection prices, with unpriced outcomes
// counting as 1. An empty slip yields 0, not the mathematical empty product
// of 1: a slip with nothing on it must not display as a guaranteed return.
func (s *Slip) TotalOdds() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalOddsLocked()
}

func (s *Slip) totalOddsLocked() decimal.Decimal {
	if s.set.Len() == 0 {
		return decimal.Zero
	}
	total := decimal.NewFromInt(1)
	for _, sel := range s.set.sels {
		if sel.Outcome.CurrentOdds != nil {
			total = total.Mul(*sel.Outcome.CurrentOdds)
		}
	}
	return total
}

// PotentialPayout is stake times total odds.
func (s *Slip) PotentialPayout() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stake.Mul(s.totalOddsLocked())
}

// PlaceBet validates the slip and submits it. Validation failures return a
// *ValidationError without touching the network. On acceptance the slip is
// cleared; on rejection it is left intact so the user can retry. Only one
// submission may be in flight at a time; the request itself cannot be
// aborted once sent, ctx covers only the network wait.
func (s *Slip) PlaceBet(ctx context.Context) (*domain.Bet, error) {
	s.mu.Lock()
	if s.placing {
		s.mu.Unlock()
		return nil, &ValidationError{Reason: "a bet is already in flight"}
	}
	if s.set.Len() == 0 {
		s.mu.Unlock()
		return nil, &ValidationError{Reason: "no selections"}
	}
	if !s.stake.IsPositive() {
		s.mu.Unlock()
		return nil, &ValidationError{Reason: "stake must be positive"}
	}
	if s.auth == nil || !s.auth.Authenticated() {
		s.mu.Unlock()
		return nil, &ValidationError{Reason: "not authenticated"}
	}
	stake := s.stake
	ids := s.set.OutcomeIDs()
	s.placing = true
	s.mu.Unlock()

	bet, err := s.svc.PlaceBet(ctx, stake, ids)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.placing = false
	if err != nil {
		metrics.BetsRejected.Inc()
		log.WithError(err).Warn("bet submission rejected, slip preserved")
		return nil, err
	}
	s.set.Clear()
	s.stake = decimal.Zero
	metrics.BetsPlaced.Inc()
	log.WithFields(logrus.Fields{
		"bet_id": bet.ID,
		"stake":  stake.String(),
	}).Info("bet placed")
	return bet, nil
}
