package quote

import (
	"context"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/domain/entity"
	"github.com/sokohub/rfq-backend/internal/domain/repository"
	"github.com/sokohub/rfq-backend/internal/domain/valueobject"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
)

type UpdateQuoteStatusUseCase struct {
	quoteRepo repository.QuoteRepository
	rfqRepo   repository.RFQRepository
}

func NewUpdateQuoteStatusUseCase(quoteRepo repository.QuoteRepository, rfqRepo repository.RFQRepository) *UpdateQuoteStatusUseCase {
	return &UpdateQuoteStatusUseCase{
		quoteRepo: quoteRepo,
		rfqRepo:   rfqRepo,
	}
}

func (uc *UpdateQuoteStatusUseCase) Execute(ctx context.Context, quoteID, actorID uuid.UUID, newStatus string) (*entity.Quote, error) {
	quote, err := uc.quoteRepo.FindByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	rfq, err := uc.rfqRepo.FindByID(ctx, quote.RFQID)
	if err != nil {
		return nil, err
	}

	if !rfq.IsOwnedBy(actorID) {
		return nil, apperror.ErrForbidden
	}

	switch newStatus {
	case string(valueobject.QuoteStatusAccepted):
		if err := quote.Accept(); err != nil {
			return nil, err
		}

	case string(valueobject.QuoteStatusRejected):
		if err := quote.Reject(); err != nil {
			return nil, err
		}

	default:
		return nil, apperror.New(apperror.ErrCodeValidation, "некорректный статус котировки")
	}

	if err := uc.quoteRepo.Update(ctx, quote); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить котировку")
	}

	return quote, nil
}
