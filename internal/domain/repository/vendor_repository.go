package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/domain/entity"
)

type VendorRepository interface {
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entity.VendorProfile, error)
}
