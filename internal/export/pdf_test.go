package export

import (
	"bytes"
	"testing"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/models"
)

func TestPDF(t *testing.T) {
	quotes, vendors := sampleQuotes()
	rfq := &models.RFQ{
		ID:    uuid.New(),
		Title: "Supply of office furniture",
	}

	data, err := PDF(rfq, quotes, vendors)
	if err != nil {
		t.Fatalf("PDF вернул ошибку: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("ожидался PDF документ")
	}
}

func TestPDFManyQuotesPaginates(t *testing.T) {
	rfq := &models.RFQ{ID: uuid.New(), Title: "Fleet maintenance services"}

	var quotes []models.Quote
	vendors := map[uuid.UUID]models.VendorProfile{}
	for i := 0; i < 60; i++ {
		vendorID := uuid.New()
		quotes = append(quotes, models.Quote{
			VendorID: vendorID,
			Amount:   float64(1000 + i),
			Timeline: "1 week",
			Status:   models.QuoteStatusSubmitted,
		})
		vendors[vendorID] = models.VendorProfile{UserID: vendorID, DisplayName: "Vendor"}
	}

	data, err := PDF(rfq, quotes, vendors)
	if err != nil {
		t.Fatalf("PDF вернул ошибку: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("пустой документ")
	}
}

func TestPDFEmpty(t *testing.T) {
	rfq := &models.RFQ{ID: uuid.New(), Title: "Anything"}
	if _, err := PDF(rfq, nil, nil); err != ErrNoQuotes {
		t.Fatalf("ожидался ErrNoQuotes, получили %v", err)
	}
}
