package domain

import "github.com/shopspring/decimal"

// Outcome is one possible result within a market, priced by the server.
// CurrentOdds is nil until the server has priced the outcome.
type Outcome struct {
	ID          int64            `json:"outcomeId"`
	Name        string           `json:"name"`
	CurrentOdds *decimal.Decimal `json:"currentOdds,omitempty"`
	Active      bool             `json:"isActive"`
}

// Odds returns the outcome's price, or 1 when it has not been priced yet.
func (o Outcome) Odds() decimal.Decimal {
	if o.CurrentOdds == nil {
		return decimal.NewFromInt(1)
	}
	return *o.CurrentOdds
}

// Market is a named group of mutually exclusive outcomes for one event.
// Outcome order is server-defined and display-relevant.
type Market struct {
	ID       int64     `json:"marketId"`
	Name     string    `json:"name"`
	Outcomes []Outcome `json:"outcomes"`
}
