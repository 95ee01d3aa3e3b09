package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/domain/valueobject"
)

func TestQuoteRowToEntity(t *testing.T) {
	row := quoteRow{
		ID:        uuid.New(),
		RFQID:     uuid.New(),
		VendorID:  uuid.New(),
		Amount:    15000,
		Currency:  "KES",
		Timeline:  "2 weeks",
		Status:    "submitted",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	quote, err := row.toEntity()
	if err != nil {
		t.Fatalf("toEntity вернул ошибку: %v", err)
	}
	if quote.Status != valueobject.QuoteStatusSubmitted {
		t.Fatalf("статус должен быть submitted, получили %s", quote.Status)
	}
	if quote.Price.Amount != 15000 || quote.Price.Currency != "KES" {
		t.Fatalf("цена сконвертирована неверно: %+v", quote.Price)
	}

	// Неизвестный статус из базы — ошибка, а не нулевое значение
	row.Status = "withdrawn"
	if _, err := row.toEntity(); err == nil {
		t.Fatal("неизвестный статус должен вернуть ошибку")
	}
}

func TestRFQRowToEntity(t *testing.T) {
	row := rfqRow{
		ID:         uuid.New(),
		CreatorID:  uuid.New(),
		Title:      "Поставка стройматериалов",
		Visibility: "public",
		Status:     "open",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	rfq, err := row.toEntity()
	if err != nil {
		t.Fatalf("toEntity вернул ошибку: %v", err)
	}
	if rfq.Status != valueobject.RFQStatusOpen || rfq.Visibility != valueobject.RFQVisibilityPublic {
		t.Fatalf("статус и видимость сконвертированы неверно: %s/%s", rfq.Status, rfq.Visibility)
	}

	row.Status = "archived"
	if _, err := row.toEntity(); err == nil {
		t.Fatal("неизвестный статус должен вернуть ошибку")
	}

	row.Status = "open"
	row.Visibility = "internal"
	if _, err := row.toEntity(); err == nil {
		t.Fatal("неизвестная видимость должна вернуть ошибку")
	}
}
