// Package stream owns the real-time channel: the websocket connection
// lifecycle and the routing of pushed updates into the reconciled state.
package stream

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/betbot/sportsbook/internal/domain"
)

// Server-pushed event types. Anything else is ignored so the server can add
// new events without breaking older clients.
const (
	EventOddsUpdate    = "odds_update"
	EventMatchUpdate   = "match_update"
	EventBalanceUpdate = "balance_update"
	EventNotification  = "notification"
)

// Client-emitted event types.
const (
	eventAuth             = "auth"
	eventSubscribe        = "subscribe"
	eventSubscribeMatch   = "subscribe_match"
	eventUnsubscribeMatch = "unsubscribe_match"
)

// Channels subscribed on every successful connect.
var defaultChannels = []string{"odds", "matches"}

// Envelope is one frame on the wire, in either direction.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// clientMessage is an outbound frame before encoding.
type clientMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// authPayload is the credentials attached at connect time. A token change
// while connected does not re-authenticate the live channel; that takes a
// fresh Connect.
type authPayload struct {
	Token string `json:"token"`
}

// OddsUpdate overwrites the odds snapshot for one match.
type OddsUpdate struct {
	MatchID int64            `json:"matchId"`
	Odds    domain.MatchOdds `json:"odds"`
}

// MatchUpdate merges score/status/minute into one match. Timestamp, when the
// server provides it, lets the store drop reordered updates.
type MatchUpdate struct {
	MatchID   int64              `json:"matchId"`
	Score     *domain.Score      `json:"score,omitempty"`
	Status    domain.EventStatus `json:"status"`
	Minute    *int               `json:"minute,omitempty"`
	Timestamp time.Time          `json:"timestamp,omitempty"`
}

// BalanceUpdate overwrites the authenticated user's balance.
type BalanceUpdate struct {
	Balance decimal.Decimal `json:"balance"`
}

// Notification is a user-facing message; it never mutates state.
type Notification struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
