package quote_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/domain/valueobject"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
	"github.com/sokohub/rfq-backend/internal/usecase/quote"
)

func TestAssignJobUseCase_Success(t *testing.T) {
	rfqRepo := newMockRFQRepository()
	quoteRepo := newMockQuoteRepository()
	projectRepo := newMockProjectRepository()
	uc := quote.NewAssignJobUseCase(quoteRepo, rfqRepo, projectRepo)

	creatorID := uuid.New()
	vendorID := uuid.New()

	rfq := createTestRFQ(creatorID, valueobject.RFQVisibilityPublic)
	rfqRepo.rfqs[rfq.ID] = rfq

	q := createTestQuote(rfq.ID, vendorID, 45000)
	q.Status = valueobject.QuoteStatusAccepted
	quoteRepo.quotes[q.ID] = q

	project, err := uc.Execute(context.Background(), quote.AssignJobInput{
		QuoteID: q.ID,
		ActorID: creatorID,
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if project.RFQID != rfq.ID || project.QuoteID != q.ID {
		t.Error("проект должен ссылаться на заявку и котировку")
	}
	if project.VendorID != vendorID || project.CreatorID != creatorID {
		t.Error("проект должен связывать автора и поставщика")
	}
	if len(projectRepo.projects) != 1 {
		t.Errorf("ожидался 1 сохранённый проект, получено %d", len(projectRepo.projects))
	}
}

func TestAssignJobUseCase_RequiresAcceptedQuote(t *testing.T) {
	rfqRepo := newMockRFQRepository()
	quoteRepo := newMockQuoteRepository()
	projectRepo := newMockProjectRepository()
	uc := quote.NewAssignJobUseCase(quoteRepo, rfqRepo, projectRepo)

	creatorID := uuid.New()
	rfq := createTestRFQ(creatorID, valueobject.RFQVisibilityPublic)
	rfqRepo.rfqs[rfq.ID] = rfq

	q := createTestQuote(rfq.ID, uuid.New(), 45000)
	quoteRepo.quotes[q.ID] = q

	_, err := uc.Execute(context.Background(), quote.AssignJobInput{
		QuoteID: q.ID,
		ActorID: creatorID,
	})
	if !errors.Is(err, apperror.ErrQuoteNotAccepted) {
		t.Fatalf("ожидалась ошибка непринятой котировки, получено %v", err)
	}
	if len(projectRepo.projects) != 0 {
		t.Error("проект не должен создаваться")
	}
}

func TestAssignJobUseCase_CreatorOnly(t *testing.T) {
	rfqRepo := newMockRFQRepository()
	quoteRepo := newMockQuoteRepository()
	projectRepo := newMockProjectRepository()
	uc := quote.NewAssignJobUseCase(quoteRepo, rfqRepo, projectRepo)

	vendorID := uuid.New()
	rfq := createTestRFQ(uuid.New(), valueobject.RFQVisibilityPublic)
	rfqRepo.rfqs[rfq.ID] = rfq

	q := createTestQuote(rfq.ID, vendorID, 45000)
	q.Status = valueobject.QuoteStatusAccepted
	quoteRepo.quotes[q.ID] = q

	_, err := uc.Execute(context.Background(), quote.AssignJobInput{
		QuoteID: q.ID,
		ActorID: vendorID,
	})
	if !apperror.IsForbidden(err) {
		t.Fatalf("ожидался запрет доступа, получено %v", err)
	}
}

func TestAssignJobUseCase_QuoteNotFound(t *testing.T) {
	uc := quote.NewAssignJobUseCase(newMockQuoteRepository(), newMockRFQRepository(), newMockProjectRepository())

	_, err := uc.Execute(context.Background(), quote.AssignJobInput{
		QuoteID: uuid.New(),
		ActorID: uuid.New(),
	})
	if !apperror.IsNotFound(err) {
		t.Fatalf("ожидалась ошибка not found, получено %v", err)
	}
}
