package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MatchOdds is the server's authoritative price set for one match.
// The client only mirrors these values; it never derives them.
type MatchOdds struct {
	MatchID   int64            `json:"matchId"`
	HomeWin   decimal.Decimal  `json:"homeWin"`
	Draw      decimal.Decimal  `json:"draw"`
	AwayWin   decimal.Decimal  `json:"awayWin"`
	Over25    *decimal.Decimal `json:"over25,omitempty"`
	Under25   *decimal.Decimal `json:"under25,omitempty"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
