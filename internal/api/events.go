package api

import (
	"context"

	"github.com/betbot/sportsbook/internal/domain"
)

// UpcomingEvents lists matches that have not started yet.
func (c *Client) UpcomingEvents(ctx context.Context) ([]domain.Event, error) {
	var out []domain.Event
	resp, err := c.newRequest(ctx).
		SetResult(&out).
		SetError(&errorBody{}).
		Get("/v1/events/upcoming")
	if err := c.checkResponse(resp, err, "upcoming events"); err != nil {
		return nil, err
	}
	return out, nil
}

// LiveEvents lists matches currently in play.
func (c *Client) LiveEvents(ctx context.Context) ([]domain.Event, error) {
	var out []domain.Event
	resp, err := c.newRequest(ctx).
		SetResult(&out).
		SetError(&errorBody{}).
		Get("/v1/events/live")
	if err := c.checkResponse(resp, err, "live events"); err != nil {
		return nil, err
	}
	return out, nil
}

// Markets lists the markets and priced outcomes for one event.
func (c *Client) Markets(ctx context.Context, eventID int64) ([]domain.Market, error) {
	var out []domain.Market
	resp, err := c.newRequest(ctx).
		SetResult(&out).
		SetError(&errorBody{}).
		Get(pathf("/v1/events/%d/markets", eventID))
	if err := c.checkResponse(resp, err, "event markets"); err != nil {
		return nil, err
	}
	return out, nil
}
