package ports

import (
	"context"

	"freight/internal/core/domain/model/pricing"
)

// DiscountRepository reads per-customer rate overrides.
type DiscountRepository interface {
	// FindByUserID returns errs.ErrObjectNotFound when the customer has no override.
	FindByUserID(ctx context.Context, userID int64) (*pricing.ClientDiscount, error)
}
