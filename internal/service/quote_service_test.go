package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/models"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
	"github.com/sokohub/rfq-backend/internal/repository"
)

// mockRFQReader реализует RFQReader для тестов.
type mockRFQReader struct {
	rfqs map[uuid.UUID]*models.RFQ
}

func newMockRFQReader() *mockRFQReader {
	return &mockRFQReader{rfqs: make(map[uuid.UUID]*models.RFQ)}
}

func (m *mockRFQReader) GetByID(ctx context.Context, id uuid.UUID) (*models.RFQ, error) {
	if rfq, ok := m.rfqs[id]; ok {
		return rfq, nil
	}
	return nil, repository.ErrRFQNotFound
}

// mockQuoteStore реализует QuoteStore для тестов.
type mockQuoteStore struct {
	quotes   map[uuid.UUID]*models.Quote
	profiles map[uuid.UUID]models.VendorProfile
}

func newMockQuoteStore() *mockQuoteStore {
	return &mockQuoteStore{
		quotes:   make(map[uuid.UUID]*models.Quote),
		profiles: make(map[uuid.UUID]models.VendorProfile),
	}
}

func (m *mockQuoteStore) Create(ctx context.Context, quote *models.Quote) error {
	for _, q := range m.quotes {
		if q.RFQID == quote.RFQID && q.VendorID == quote.VendorID {
			return repository.ErrQuoteDuplicate
		}
	}
	quote.ID = uuid.New()
	quote.CreatedAt = time.Now()
	m.quotes[quote.ID] = quote
	return nil
}

func (m *mockQuoteStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	if q, ok := m.quotes[id]; ok {
		return q, nil
	}
	return nil, repository.ErrQuoteNotFound
}

func (m *mockQuoteStore) ListByRFQ(ctx context.Context, rfqID uuid.UUID) ([]models.Quote, error) {
	var out []models.Quote
	for _, q := range m.quotes {
		if q.RFQID == rfqID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (m *mockQuoteStore) ListByRFQAndVendor(ctx context.Context, rfqID, vendorID uuid.UUID) ([]models.Quote, error) {
	var out []models.Quote
	for _, q := range m.quotes {
		if q.RFQID == rfqID && q.VendorID == vendorID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (m *mockQuoteStore) ListByVendor(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]models.Quote, error) {
	var out []models.Quote
	for _, q := range m.quotes {
		if q.VendorID == vendorID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (m *mockQuoteStore) Update(ctx context.Context, quote *models.Quote) error {
	if _, ok := m.quotes[quote.ID]; !ok {
		return repository.ErrQuoteNotFound
	}
	m.quotes[quote.ID] = quote
	return nil
}

func (m *mockQuoteStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	q, ok := m.quotes[id]
	if !ok {
		return repository.ErrQuoteNotFound
	}
	q.Status = status
	return nil
}

func (m *mockQuoteStore) GetVendorProfiles(ctx context.Context, vendorIDs []uuid.UUID) ([]models.VendorProfile, error) {
	var out []models.VendorProfile
	for _, id := range vendorIDs {
		if p, ok := m.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func floatPtr(v float64) *float64 { return &v }

func TestQuoteService_ResolveViewer(t *testing.T) {
	creator := uuid.New()
	vendor := uuid.New()
	stranger := uuid.New()

	service := NewQuoteService(newMockRFQReader(), newMockQuoteStore(), nil)

	public := &models.RFQ{CreatorID: creator, Visibility: models.RFQVisibilityPublic}
	private := &models.RFQ{CreatorID: creator, Visibility: models.RFQVisibilityPrivate}

	if got := service.ResolveViewer(public, creator, models.RoleBuyer); got != ViewerCreator {
		t.Fatalf("автор должен быть creator, получили %s", got)
	}
	if got := service.ResolveViewer(private, creator, models.RoleBuyer); got != ViewerCreator {
		t.Fatalf("автор приватной заявки должен быть creator, получили %s", got)
	}
	if got := service.ResolveViewer(public, vendor, models.RoleVendor); got != ViewerVendor {
		t.Fatalf("поставщик на публичной заявке должен быть vendor, получили %s", got)
	}
	if got := service.ResolveViewer(private, vendor, models.RoleVendor); got != ViewerUnauthorized {
		t.Fatalf("поставщик не должен видеть приватную заявку")
	}
	if got := service.ResolveViewer(public, stranger, models.RoleBuyer); got != ViewerVendor {
		t.Fatalf("не-автор на публичной заявке получает роль vendor, получили %s", got)
	}
	if got := service.ResolveViewer(private, stranger, models.RoleBuyer); got != ViewerUnauthorized {
		t.Fatalf("чужой покупатель не должен видеть приватную заявку")
	}
}

func TestQuoteService_GetComparison(t *testing.T) {
	rfqs := newMockRFQReader()
	quotes := newMockQuoteStore()
	service := NewQuoteService(rfqs, quotes, nil)
	ctx := context.Background()

	creator := uuid.New()
	vendorA := uuid.New()
	vendorB := uuid.New()

	rfq := &models.RFQ{
		ID:         uuid.New(),
		CreatorID:  creator,
		Visibility: models.RFQVisibilityPublic,
		Status:     models.RFQStatusOpen,
	}
	rfqs.rfqs[rfq.ID] = rfq

	quotes.profiles[vendorA] = models.VendorProfile{
		UserID:      vendorA,
		DisplayName: "Mwangi Supplies",
		Rating:      floatPtr(4.5),
	}

	for _, q := range []*models.Quote{
		{ID: uuid.New(), RFQID: rfq.ID, VendorID: vendorA, Amount: 12000, Status: models.QuoteStatusSubmitted},
		{ID: uuid.New(), RFQID: rfq.ID, VendorID: vendorB, Amount: 9500, Status: models.QuoteStatusSubmitted},
	} {
		quotes.quotes[q.ID] = q
	}

	// Автор видит обе котировки
	cmp, err := service.GetComparison(ctx, rfq.ID, creator, models.RoleBuyer)
	if err != nil {
		t.Fatalf("GetComparison вернул ошибку: %v", err)
	}
	if len(cmp.Quotes) != 2 {
		t.Fatalf("автор должен видеть 2 котировки, получили %d", len(cmp.Quotes))
	}
	if cmp.Stats == nil || cmp.Stats.Count != 2 {
		t.Fatalf("ожидались агрегаты по двум котировкам")
	}
	if cmp.Stats.LowestPrice != 9500 {
		t.Fatalf("минимальная цена должна быть 9500, получили %v", cmp.Stats.LowestPrice)
	}

	// Котировка без карточки поставщика отдаётся с nil Vendor
	for _, eq := range cmp.Quotes {
		if eq.Quote.VendorID == vendorB && eq.Vendor != nil {
			t.Fatalf("у поставщика без карточки Vendor должен быть nil")
		}
		if eq.Quote.VendorID == vendorA && eq.Vendor == nil {
			t.Fatalf("карточка поставщика должна быть подгружена")
		}
	}

	// Поставщик видит только свою котировку
	cmp, err = service.GetComparison(ctx, rfq.ID, vendorA, models.RoleVendor)
	if err != nil {
		t.Fatalf("GetComparison для поставщика вернул ошибку: %v", err)
	}
	if len(cmp.Quotes) != 1 || cmp.Quotes[0].Quote.VendorID != vendorA {
		t.Fatalf("поставщик должен видеть только свою котировку")
	}

	// Чужой покупатель на публичной заявке получает пустой список
	cmp, err = service.GetComparison(ctx, rfq.ID, uuid.New(), models.RoleBuyer)
	if err != nil {
		t.Fatalf("GetComparison для чужого покупателя вернул ошибку: %v", err)
	}
	if len(cmp.Quotes) != 0 || cmp.Stats != nil {
		t.Fatalf("чужой покупатель не должен видеть чужие котировки")
	}

	// Приватная заявка закрыта для не-авторов
	rfq.Visibility = models.RFQVisibilityPrivate
	if _, err := service.GetComparison(ctx, rfq.ID, uuid.New(), models.RoleBuyer); !apperror.IsForbidden(err) {
		t.Fatalf("ожидался отказ в доступе, получили %v", err)
	}
	rfq.Visibility = models.RFQVisibilityPublic
}

func TestBuildStats(t *testing.T) {
	vendorA := uuid.New()
	vendorB := uuid.New()

	quotes := []models.Quote{
		{VendorID: vendorA, Amount: 10000},
		{VendorID: vendorB, Amount: 15001},
	}
	vendors := map[uuid.UUID]models.VendorProfile{
		vendorA: {UserID: vendorA, Rating: floatPtr(3.8)},
		// у vendorB рейтинга нет, он учитывается как ноль
	}

	stats := BuildStats(quotes, vendors)
	if stats == nil {
		t.Fatal("агрегаты не должны быть nil при непустом наборе")
	}
	if stats.Count != 2 {
		t.Fatalf("count = %d, ожидали 2", stats.Count)
	}
	if stats.LowestPrice != 10000 {
		t.Fatalf("lowest = %v, ожидали 10000", stats.LowestPrice)
	}
	if stats.AveragePrice != 12501 {
		t.Fatalf("средняя цена должна округляться, получили %v", stats.AveragePrice)
	}
	if stats.TopRating != 3.8 {
		t.Fatalf("top rating = %v, ожидали 3.8", stats.TopRating)
	}

	if BuildStats(nil, nil) != nil {
		t.Fatal("для пустого набора агрегаты должны отсутствовать")
	}
}

func TestQuoteService_SubmitQuote(t *testing.T) {
	rfqs := newMockRFQReader()
	quotes := newMockQuoteStore()
	service := NewQuoteService(rfqs, quotes, nil)
	ctx := context.Background()

	creator := uuid.New()
	vendor := uuid.New()

	rfq := &models.RFQ{
		ID:         uuid.New(),
		CreatorID:  creator,
		Visibility: models.RFQVisibilityPublic,
		Status:     models.RFQStatusOpen,
	}
	rfqs.rfqs[rfq.ID] = rfq

	quote, err := service.SubmitQuote(ctx, SubmitQuoteInput{
		RFQID:    rfq.ID,
		VendorID: vendor,
		Amount:   25000,
		Timeline: "2 weeks",
	})
	if err != nil {
		t.Fatalf("SubmitQuote вернул ошибку: %v", err)
	}
	if quote.Status != models.QuoteStatusSubmitted {
		t.Fatalf("новая котировка должна быть submitted, получили %s", quote.Status)
	}
	if quote.Currency != models.DefaultCurrency {
		t.Fatalf("валюта по умолчанию должна быть %s", models.DefaultCurrency)
	}

	// Повторная котировка того же поставщика отклоняется
	_, err = service.SubmitQuote(ctx, SubmitQuoteInput{
		RFQID:    rfq.ID,
		VendorID: vendor,
		Amount:   20000,
		Timeline: "1 week",
	})
	if err == nil {
		t.Fatal("ожидался конфликт при повторной котировке")
	}

	// Автор не может откликнуться на свою заявку
	_, err = service.SubmitQuote(ctx, SubmitQuoteInput{
		RFQID:    rfq.ID,
		VendorID: creator,
		Amount:   1000,
		Timeline: "1 day",
	})
	if !apperror.IsForbidden(err) {
		t.Fatalf("ожидался отказ для автора заявки, получили %v", err)
	}

	// Закрытая заявка не принимает котировки
	rfq.Status = models.RFQStatusClosed
	_, err = service.SubmitQuote(ctx, SubmitQuoteInput{
		RFQID:    rfq.ID,
		VendorID: uuid.New(),
		Amount:   1000,
		Timeline: "1 day",
	})
	if !apperror.IsPrecondition(err) {
		t.Fatalf("ожидалась ошибка precondition, получили %v", err)
	}
}

func TestQuoteService_UpdateMyQuote(t *testing.T) {
	rfqs := newMockRFQReader()
	quotes := newMockQuoteStore()
	service := NewQuoteService(rfqs, quotes, nil)
	ctx := context.Background()

	vendor := uuid.New()
	other := uuid.New()

	quote := &models.Quote{
		ID:       uuid.New(),
		RFQID:    uuid.New(),
		VendorID: vendor,
		Amount:   30000,
		Currency: models.DefaultCurrency,
		Timeline: "3 weeks",
		Status:   models.QuoteStatusSubmitted,
	}
	quotes.quotes[quote.ID] = quote

	updated, err := service.UpdateMyQuote(ctx, UpdateQuoteInput{
		QuoteID:  quote.ID,
		VendorID: vendor,
		Amount:   27500,
		Timeline: "2 weeks",
	})
	if err != nil {
		t.Fatalf("UpdateMyQuote вернул ошибку: %v", err)
	}
	if updated.Amount != 27500 || updated.Timeline != "2 weeks" {
		t.Fatalf("условия котировки не обновились: %+v", updated)
	}
	if updated.Currency != models.DefaultCurrency {
		t.Fatalf("пустая валюта не должна затирать текущую, получили %q", updated.Currency)
	}

	// Чужую котировку править нельзя
	_, err = service.UpdateMyQuote(ctx, UpdateQuoteInput{
		QuoteID:  quote.ID,
		VendorID: other,
		Amount:   100,
		Timeline: "1 day",
	})
	if !apperror.IsForbidden(err) {
		t.Fatalf("ожидался отказ для чужой котировки, получили %v", err)
	}

	// После решения автора заявки котировка зафиксирована
	quote.Status = models.QuoteStatusAccepted
	_, err = service.UpdateMyQuote(ctx, UpdateQuoteInput{
		QuoteID:  quote.ID,
		VendorID: vendor,
		Amount:   26000,
		Timeline: "2 weeks",
	})
	if !apperror.IsPrecondition(err) {
		t.Fatalf("ожидалась ошибка precondition, получили %v", err)
	}
}

func TestQuoteService_AcceptAndReject(t *testing.T) {
	rfqs := newMockRFQReader()
	quotes := newMockQuoteStore()
	service := NewQuoteService(rfqs, quotes, nil)
	ctx := context.Background()

	creator := uuid.New()
	vendorA := uuid.New()
	vendorB := uuid.New()

	rfq := &models.RFQ{
		ID:         uuid.New(),
		CreatorID:  creator,
		Visibility: models.RFQVisibilityPublic,
		Status:     models.RFQStatusOpen,
	}
	rfqs.rfqs[rfq.ID] = rfq

	quoteA := &models.Quote{ID: uuid.New(), RFQID: rfq.ID, VendorID: vendorA, Amount: 10000, Status: models.QuoteStatusSubmitted}
	quoteB := &models.Quote{ID: uuid.New(), RFQID: rfq.ID, VendorID: vendorB, Amount: 12000, Status: models.QuoteStatusSubmitted}
	quotes.quotes[quoteA.ID] = quoteA
	quotes.quotes[quoteB.ID] = quoteB

	// Не автор не может менять статус
	if _, err := service.AcceptQuote(ctx, vendorA, quoteA.ID); !apperror.IsForbidden(err) {
		t.Fatalf("поставщик не должен принимать котировки, получили %v", err)
	}

	updated, err := service.AcceptQuote(ctx, creator, quoteA.ID)
	if err != nil {
		t.Fatalf("AcceptQuote вернул ошибку: %v", err)
	}
	if updated.Status != models.QuoteStatusAccepted {
		t.Fatalf("статус должен быть accepted, получили %s", updated.Status)
	}

	// Принятие одной котировки не меняет другие
	if quoteB.Status != models.QuoteStatusSubmitted {
		t.Fatalf("другие котировки не должны меняться, получили %s", quoteB.Status)
	}

	// Автор может принять несколько котировок
	if _, err := service.AcceptQuote(ctx, creator, quoteB.ID); err != nil {
		t.Fatalf("принятие второй котировки вернуло ошибку: %v", err)
	}

	// accepted — терминальный статус, принятую котировку нельзя ни
	// отклонить, ни принять повторно
	if _, err := service.RejectQuote(ctx, creator, quoteA.ID); !apperror.IsBadRequest(err) {
		t.Fatalf("отклонение принятой котировки должно вернуть bad request, получили %v", err)
	}
	if quoteA.Status != models.QuoteStatusAccepted {
		t.Fatalf("статус принятой котировки не должен меняться, получили %s", quoteA.Status)
	}
	if _, err := service.AcceptQuote(ctx, creator, quoteA.ID); !apperror.IsBadRequest(err) {
		t.Fatalf("повторное принятие должно вернуть bad request, получили %v", err)
	}

	rejected, err := service.RejectQuote(ctx, creator, uuid.New())
	if err == nil || rejected != nil {
		t.Fatal("отклонение несуществующей котировки должно вернуть ошибку")
	}

	// rejected тоже терминален
	quoteC := &models.Quote{ID: uuid.New(), RFQID: rfq.ID, VendorID: uuid.New(), Amount: 8000, Status: models.QuoteStatusSubmitted}
	quotes.quotes[quoteC.ID] = quoteC
	res, err := service.RejectQuote(ctx, creator, quoteC.ID)
	if err != nil {
		t.Fatalf("RejectQuote вернул ошибку: %v", err)
	}
	if res.Status != models.QuoteStatusRejected {
		t.Fatalf("статус должен быть rejected, получили %s", res.Status)
	}
	if _, err := service.AcceptQuote(ctx, creator, quoteC.ID); !apperror.IsBadRequest(err) {
		t.Fatalf("принятие отклонённой котировки должно вернуть bad request, получили %v", err)
	}
}
