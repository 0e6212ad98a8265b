package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the authenticated account, including the balance kept current by
// balance_update pushes.
type User struct {
	ID        int64           `json:"userId"`
	Email     string          `json:"email"`
	Balance   decimal.Decimal `json:"balance"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}
