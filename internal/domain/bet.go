package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BetStatus is the settlement state of a placed wager.
type BetStatus string

const (
	BetPending   BetStatus = "PENDING"
	BetWon       BetStatus = "WON"
	BetLost      BetStatus = "LOST"
	BetCancelled BetStatus = "CANCELLED"
	BetRefunded  BetStatus = "REFUNDED"
)

// Bet is a wager accepted by the server. TotalOdds and PotentialPayout are
// the server's figures, which may differ from the slip's local preview if
// prices moved between display and acceptance.
type Bet struct {
	ID              int64           `json:"betId"`
	UserID          int64           `json:"userId"`
	StakeAmount     decimal.Decimal `json:"stakeAmount"`
	TotalOdds       decimal.Decimal `json:"totalOdds"`
	PotentialPayout decimal.Decimal `json:"potentialPayout"`
	Status          BetStatus       `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}
