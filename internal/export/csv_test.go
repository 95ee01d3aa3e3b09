package export

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func sampleQuotes() ([]models.Quote, map[uuid.UUID]models.VendorProfile) {
	vendorA := uuid.New()
	vendorB := uuid.New()

	quotes := []models.Quote{
		{
			ID:        uuid.New(),
			VendorID:  vendorA,
			Amount:    45000,
			Currency:  models.DefaultCurrency,
			Timeline:  "2 weeks",
			Status:    models.QuoteStatusSubmitted,
			CreatedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:        uuid.New(),
			VendorID:  vendorB,
			Amount:    38500.5,
			Currency:  models.DefaultCurrency,
			Timeline:  "10 days",
			Status:    models.QuoteStatusAccepted,
			CreatedAt: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC),
		},
	}

	vendors := map[uuid.UUID]models.VendorProfile{
		vendorA: {UserID: vendorA, DisplayName: "Mwangi Supplies", Rating: floatPtr(4.5)},
		// у vendorB карточки нет
	}

	return quotes, vendors
}

func TestCSV(t *testing.T) {
	quotes, vendors := sampleQuotes()

	data, err := CSV(quotes, vendors)
	if err != nil {
		t.Fatalf("CSV вернул ошибку: %v", err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) != 3 {
		t.Fatalf("ожидалось 3 строки (заголовок + 2 котировки), получили %d", len(lines))
	}

	if lines[0] != `"Vendor","Rating","Price (KSh)","Timeline","Status","Submitted"` {
		t.Fatalf("неверный заголовок: %s", lines[0])
	}

	if lines[1] != `"Mwangi Supplies","4.5","45000","2 weeks","submitted","2026-03-14"` {
		t.Fatalf("неверная первая строка: %s", lines[1])
	}

	// Поставщик без карточки и дробная сумма
	if lines[2] != `"Unknown Vendor","N/A","38500.5","10 days","accepted","2026-03-15"` {
		t.Fatalf("неверная вторая строка: %s", lines[2])
	}

	if strings.HasSuffix(string(data), "\n") {
		t.Fatal("после последней строки не должно быть перевода строки")
	}
}

func TestCSVQuotesEmbeddedQuotes(t *testing.T) {
	vendorID := uuid.New()
	quotes := []models.Quote{
		{
			VendorID:  vendorID,
			Amount:    1000,
			Timeline:  `"urgent", 3 days`,
			Status:    models.QuoteStatusSubmitted,
			CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	vendors := map[uuid.UUID]models.VendorProfile{
		vendorID: {UserID: vendorID, DisplayName: `Acme "K" Ltd`},
	}

	data, err := CSV(quotes, vendors)
	if err != nil {
		t.Fatalf("CSV вернул ошибку: %v", err)
	}

	lines := strings.Split(string(data), "\n")
	if lines[1] != `"Acme ""K"" Ltd","N/A","1000","""urgent"", 3 days","submitted","2026-01-01"` {
		t.Fatalf("кавычки должны удваиваться: %s", lines[1])
	}
}

func TestCSVEmpty(t *testing.T) {
	if _, err := CSV(nil, nil); err != ErrNoQuotes {
		t.Fatalf("ожидался ErrNoQuotes, получили %v", err)
	}
}

func TestFilename(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000")
	if got := Filename(id, "csv"); got != "quotes-a1b2c3d4.csv" {
		t.Fatalf("filename = %s", got)
	}
	if got := Filename(id, "pdf"); got != "quotes-a1b2c3d4.pdf" {
		t.Fatalf("filename = %s", got)
	}
}
