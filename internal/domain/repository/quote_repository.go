package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/domain/entity"
)

type QuoteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	FindByRFQID(ctx context.Context, rfqID uuid.UUID) ([]*entity.Quote, error)
	FindByRFQAndVendor(ctx context.Context, rfqID, vendorID uuid.UUID) ([]*entity.Quote, error)
	Update(ctx context.Context, quote *entity.Quote) error
}
