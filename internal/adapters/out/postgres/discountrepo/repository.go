package discountrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/pricing"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDiscountRepository implements ports.DiscountRepository using GORM.
type GormDiscountRepository struct {
	db *gorm.DB
}

func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

func (r *GormDiscountRepository) FindByUserID(ctx context.Context, userID int64) (*pricing.ClientDiscount, error) {
	var dto DiscountDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("discount", userID)
		}
		return nil, err
	}
	return toDomain(dto)
}
