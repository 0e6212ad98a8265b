package api

import (
	"context"

	"github.com/betbot/sportsbook/internal/domain"
)

// CurrentUser fetches the authenticated user, including the balance the
// push channel will keep current afterwards.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	out := &domain.User{}
	resp, err := c.newRequest(ctx).
		SetResult(out).
		SetError(&errorBody{}).
		Get("/v1/users/me")
	if err := c.checkResponse(resp, err, "current user"); err != nil {
		return nil, err
	}
	return out, nil
}
