package quote_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/domain/valueobject"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
	"github.com/sokohub/rfq-backend/internal/usecase/quote"
)

func TestUpdateQuoteStatusUseCase_Accept(t *testing.T) {
	rfqRepo := newMockRFQRepository()
	quoteRepo := newMockQuoteRepository()
	uc := quote.NewUpdateQuoteStatusUseCase(quoteRepo, rfqRepo)

	creatorID := uuid.New()
	rfq := createTestRFQ(creatorID, valueobject.RFQVisibilityPublic)
	rfqRepo.rfqs[rfq.ID] = rfq

	q := createTestQuote(rfq.ID, uuid.New(), 45000)
	quoteRepo.quotes[q.ID] = q

	updated, err := uc.Execute(context.Background(), q.ID, creatorID, "accepted")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if updated.Status != valueobject.QuoteStatusAccepted {
		t.Errorf("ожидался статус accepted, получен %s", updated.Status)
	}
}

func TestUpdateQuoteStatusUseCase_MultipleAccepts(t *testing.T) {
	rfqRepo := newMockRFQRepository()
	quoteRepo := newMockQuoteRepository()
	uc := quote.NewUpdateQuoteStatusUseCase(quoteRepo, rfqRepo)

	creatorID := uuid.New()
	rfq := createTestRFQ(creatorID, valueobject.RFQVisibilityPublic)
	rfqRepo.rfqs[rfq.ID] = rfq

	qa := createTestQuote(rfq.ID, uuid.New(), 45000)
	qb := createTestQuote(rfq.ID, uuid.New(), 38500)
	quoteRepo.quotes[qa.ID] = qa
	quoteRepo.quotes[qb.ID] = qb

	if _, err := uc.Execute(context.Background(), qa.ID, creatorID, "accepted"); err != nil {
		t.Fatalf("первое принятие: %v", err)
	}
	if _, err := uc.Execute(context.Background(), qb.ID, creatorID, "accepted"); err != nil {
		t.Fatalf("второе принятие не должно блокироваться: %v", err)
	}

	if qa.Status != valueobject.QuoteStatusAccepted || qb.Status != valueobject.QuoteStatusAccepted {
		t.Error("обе котировки должны остаться принятыми")
	}
}

func TestUpdateQuoteStatusUseCase_NotCreator(t *testing.T) {
	rfqRepo := newMockRFQRepository()
	quoteRepo := newMockQuoteRepository()
	uc := quote.NewUpdateQuoteStatusUseCase(quoteRepo, rfqRepo)

	rfq := createTestRFQ(uuid.New(), valueobject.RFQVisibilityPublic)
	rfqRepo.rfqs[rfq.ID] = rfq

	vendorID := uuid.New()
	q := createTestQuote(rfq.ID, vendorID, 45000)
	quoteRepo.quotes[q.ID] = q

	// Даже сам поставщик не может сменить статус своей котировки.
	_, err := uc.Execute(context.Background(), q.ID, vendorID, "accepted")
	if !apperror.IsForbidden(err) {
		t.Fatalf("ожидался запрет доступа, получено %v", err)
	}
	if q.Status != valueobject.QuoteStatusSubmitted {
		t.Error("статус котировки не должен меняться")
	}
}

func TestUpdateQuoteStatusUseCase_InvalidStatus(t *testing.T) {
	rfqRepo := newMockRFQRepository()
	quoteRepo := newMockQuoteRepository()
	uc := quote.NewUpdateQuoteStatusUseCase(quoteRepo, rfqRepo)

	creatorID := uuid.New()
	rfq := createTestRFQ(creatorID, valueobject.RFQVisibilityPublic)
	rfqRepo.rfqs[rfq.ID] = rfq

	q := createTestQuote(rfq.ID, uuid.New(), 45000)
	quoteRepo.quotes[q.ID] = q

	if _, err := uc.Execute(context.Background(), q.ID, creatorID, "withdrawn"); err == nil {
		t.Fatal("ожидалась ошибка валидации статуса")
	}
}
