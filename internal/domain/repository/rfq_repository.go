package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/domain/entity"
)

type RFQRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RFQ, error)
	Update(ctx context.Context, rfq *entity.RFQ) error
}
