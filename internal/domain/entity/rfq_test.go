package entity_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/domain/entity"
	"github.com/sokohub/rfq-backend/internal/domain/valueobject"
)

func TestNewRFQ(t *testing.T) {
	creatorID := uuid.New()

	rfq, err := entity.NewRFQ(creatorID, "Поставка цемента", "50 мешков", "public", nil)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if rfq.Status != valueobject.RFQStatusOpen {
		t.Errorf("новая заявка должна быть открытой, получен статус %s", rfq.Status)
	}
	if !rfq.IsPublic() || !rfq.IsOwnedBy(creatorID) {
		t.Error("заявка должна быть публичной и принадлежать автору")
	}

	if _, err := entity.NewRFQ(creatorID, "", "описание", "public", nil); err == nil {
		t.Error("пустое название должно отклоняться")
	}
	if _, err := entity.NewRFQ(creatorID, "название", "описание", "hidden", nil); err == nil {
		t.Error("неизвестная видимость должна отклоняться")
	}
}

func TestRFQLifecycle(t *testing.T) {
	rfq, err := entity.NewRFQ(uuid.New(), "Поставка песка", "10 тонн", "public", nil)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if err := rfq.Close(); err != nil {
		t.Fatalf("открытая заявка должна закрываться: %v", err)
	}
	if rfq.IsOpen() {
		t.Error("после закрытия заявка не должна быть открытой")
	}

	// Закрытую заявку ещё можно передать в работу.
	if err := rfq.Award(); err != nil {
		t.Fatalf("закрытая заявка должна переходить в awarded: %v", err)
	}

	if err := rfq.Close(); err == nil {
		t.Error("заявку в статусе awarded нельзя закрыть повторно")
	}
	if err := rfq.Award(); err == nil {
		t.Error("повторное назначение должно отклоняться")
	}
}

func TestNewQuoteDefaults(t *testing.T) {
	q, err := entity.NewQuote(uuid.New(), uuid.New(), 45000, "", "2 недели", nil)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if q.Price.Currency != "KES" {
		t.Errorf("валюта по умолчанию должна быть KES, получено %s", q.Price.Currency)
	}
	if q.Status != valueobject.QuoteStatusSubmitted {
		t.Errorf("новая котировка должна иметь статус submitted, получен %s", q.Status)
	}

	if _, err := entity.NewQuote(uuid.New(), uuid.New(), 0, "KES", "2 недели", nil); err == nil {
		t.Error("нулевая сумма должна отклоняться")
	}
	if _, err := entity.NewQuote(uuid.New(), uuid.New(), 45000, "KES", "", nil); err == nil {
		t.Error("пустой срок поставки должен отклоняться")
	}
}

func TestQuoteStatusTransitions(t *testing.T) {
	q, err := entity.NewQuote(uuid.New(), uuid.New(), 45000, "KES", "2 недели", nil)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if err := q.Accept(); err != nil {
		t.Fatalf("поданную котировку можно принять: %v", err)
	}
	if !q.IsAccepted() {
		t.Error("котировка должна быть принятой")
	}
	if err := q.Reject(); err == nil {
		t.Error("принятую котировку нельзя отклонить")
	}
	if err := q.Accept(); err == nil {
		t.Error("повторное принятие должно отклоняться")
	}
}
