package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/betbot/sportsbook/internal/domain"
)

// PlaceBetRequest is the wager submission payload. ClientRef is a
// client-generated id so a retried submission can be deduplicated.
type PlaceBetRequest struct {
	StakeAmount decimal.Decimal `json:"stakeAmount"`
	OutcomeIDs  []int64         `json:"outcomeIds"`
	ClientRef   string          `json:"clientRef,omitempty"`
}

// BetHistoryPage is one page of settled and pending wagers.
type BetHistoryPage struct {
	Content       []domain.Bet `json:"content"`
	TotalElements int64        `json:"totalElements"`
	TotalPages    int          `json:"totalPages"`
	Number        int          `json:"number"`
	Size          int          `json:"size"`
}

// BetStats is the account's aggregate betting record.
type BetStats struct {
	TotalBets    int64           `json:"totalBets"`
	TotalWagered decimal.Decimal `json:"totalWagered"`
	TotalWon     decimal.Decimal `json:"totalWon"`
	TotalLost    decimal.Decimal `json:"totalLost"`
	WinRate      float64         `json:"winRate"`
}

// PlaceBet submits a wager. A refusal comes back as *SubmissionError with
// the server's message; transport failures are wrapped errors. There is no
// abort once the request is sent; ctx only bounds the wait for the answer.
func (c *Client) PlaceBet(ctx context.Context, stake decimal.Decimal, outcomeIDs []int64) (*domain.Bet, error) {
	req := PlaceBetRequest{
		StakeAmount: stake,
		OutcomeIDs:  outcomeIDs,
		ClientRef:   uuid.NewString(),
	}
	out := &domain.Bet{}
	resp, err := c.newRequest(ctx).
		SetBody(req).
		SetResult(out).
		SetError(&errorBody{}).
		Post("/v1/bets")
	if err != nil {
		return nil, errors.Wrap(err, "place bet")
	}
	if resp.IsSuccess() {
		return out, nil
	}
	if resp.StatusCode() == 401 && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	body, _ := resp.Error().(*errorBody)
	msg := body.text()
	if msg == "" {
		msg = fmt.Sprintf("unexpected status %d", resp.StatusCode())
	}
	return nil, &SubmissionError{StatusCode: resp.StatusCode(), Message: msg}
}

// BetHistory fetches one page of the account's wagers, newest first.
func (c *Client) BetHistory(ctx context.Context, page, size int) (*BetHistoryPage, error) {
	out := &BetHistoryPage{}
	resp, err := c.newRequest(ctx).
		SetQueryParam("page", fmt.Sprint(page)).
		SetQueryParam("size", fmt.Sprint(size)).
		SetResult(out).
		SetError(&errorBody{}).
		Get("/v1/bets/history")
	if err := c.checkResponse(resp, err, "bet history"); err != nil {
		return nil, err
	}
	return out, nil
}

// BetStats fetches the account's aggregate betting record.
func (c *Client) BetStats(ctx context.Context) (*BetStats, error) {
	out := &BetStats{}
	resp, err := c.newRequest(ctx).
		SetResult(out).
		SetError(&errorBody{}).
		Get("/v1/bets/stats")
	if err := c.checkResponse(resp, err, "bet stats"); err != nil {
		return nil, err
	}
	return out, nil
}

// CancelBet voids a pending wager where the platform still allows it.
func (c *Client) CancelBet(ctx context.Context, betID int64) (*domain.Bet, error) {
	out := &domain.Bet{}
	resp, err := c.newRequest(ctx).
		SetResult(out).
		SetError(&errorBody{}).
		Delete(pathf("/v1/bets/%d", betID))
	if err := c.checkResponse(resp, err, "cancel bet"); err != nil {
		return nil, err
	}
	return out, nil
}
