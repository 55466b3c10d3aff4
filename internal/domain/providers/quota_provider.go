package providers

import (
	"context"
)

// UnlimitedQuota is the sentinel limit for callers with no monthly cap.
// Any limit <= 0 is treated as unlimited.
const UnlimitedQuota = 0

// QuotaProvider defines monthly usage accounting per caller identity
type QuotaProvider interface {
	// CheckAndIncrement atomically checks the caller's usage for the
	// current calendar month against the limit and increments it.
	// Returns a rate-limited error when the limit is already reached.
	CheckAndIncrement(ctx context.Context, identityKey string, monthlyLimit int) error
}
