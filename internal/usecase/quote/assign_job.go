package quote

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/domain/entity"
	"github.com/sokohub/rfq-backend/internal/domain/repository"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
)

type AssignJobInput struct {
	QuoteID   uuid.UUID
	ActorID   uuid.UUID
	StartDate *time.Time
	Notes     *string
}

type AssignJobUseCase struct {
	quoteRepo   repository.QuoteRepository
	rfqRepo     repository.RFQRepository
	projectRepo repository.ProjectRepository
}

func NewAssignJobUseCase(quoteRepo repository.QuoteRepository, rfqRepo repository.RFQRepository, projectRepo repository.ProjectRepository) *AssignJobUseCase {
	return &AssignJobUseCase{
		quoteRepo:   quoteRepo,
		rfqRepo:     rfqRepo,
		projectRepo: projectRepo,
	}
}

func (uc *AssignJobUseCase) Execute(ctx context.Context, input AssignJobInput) (*entity.Project, error) {
	quote, err := uc.quoteRepo.FindByID(ctx, input.QuoteID)
	if err != nil {
		return nil, err
	}

	rfq, err := uc.rfqRepo.FindByID(ctx, quote.RFQID)
	if err != nil {
		return nil, err
	}

	if !rfq.IsOwnedBy(input.ActorID) {
		return nil, apperror.ErrForbidden
	}

	if !quote.IsAccepted() {
		return nil, apperror.ErrQuoteNotAccepted
	}

	startDate := time.Now()
	if input.StartDate != nil {
		startDate = *input.StartDate
	}

	project := entity.NewProject(rfq, quote, startDate, input.Notes)

	if err := uc.projectRepo.CreateWithAward(ctx, project); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать проект")
	}

	return project, nil
}
