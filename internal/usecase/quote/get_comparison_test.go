package quote_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/domain/entity"
	"github.com/sokohub/rfq-backend/internal/domain/valueobject"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
	"github.com/sokohub/rfq-backend/internal/usecase/quote"
)

type mockRFQRepository struct {
	rfqs map[uuid.UUID]*entity.RFQ
}

func newMockRFQRepository() *mockRFQRepository {
	return &mockRFQRepository{rfqs: make(map[uuid.UUID]*entity.RFQ)}
}

func (m *mockRFQRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RFQ, error) {
	if r, ok := m.rfqs[id]; ok {
		return r, nil
	}
	return nil, apperror.ErrRFQNotFound
}

func (m *mockRFQRepository) Update(ctx context.Context, r *entity.RFQ) error {
	m.rfqs[r.ID] = r
	return nil
}

type mockQuoteRepository struct {
	quotes map[uuid.UUID]*entity.Quote
}

func newMockQuoteRepository() *mockQuoteRepository {
	return &mockQuoteRepository{quotes: make(map[uuid.UUID]*entity.Quote)}
}

func (m *mockQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	if q, ok := m.quotes[id]; ok {
		return q, nil
	}
	return nil, apperror.ErrQuoteNotFound
}

func (m *mockQuoteRepository) FindByRFQID(ctx context.Context, rfqID uuid.UUID) ([]*entity.Quote, error) {
	var result []*entity.Quote
	for _, q := range m.quotes {
		if q.RFQID == rfqID {
			result = append(result, q)
		}
	}
	return result, nil
}

func (m *mockQuoteRepository) FindByRFQAndVendor(ctx context.Context, rfqID, vendorID uuid.UUID) ([]*entity.Quote, error) {
	var result []*entity.Quote
	for _, q := range m.quotes {
		if q.RFQID == rfqID && q.VendorID == vendorID {
			result = append(result, q)
		}
	}
	return result, nil
}

func (m *mockQuoteRepository) Update(ctx context.Context, q *entity.Quote) error {
	m.quotes[q.ID] = q
	return nil
}

type mockVendorRepository struct {
	vendors map[uuid.UUID]*entity.VendorProfile
}

func newMockVendorRepository() *mockVendorRepository {
	return &mockVendorRepository{vendors: make(map[uuid.UUID]*entity.VendorProfile)}
}

func (m *mockVendorRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entity.VendorProfile, error) {
	result := make(map[uuid.UUID]*entity.VendorProfile)
	for _, id := range userIDs {
		if v, ok := m.vendors[id]; ok {
			result[id] = v
		}
	}
	return result, nil
}

type mockProjectRepository struct {
	projects map[uuid.UUID]*entity.Project
}

func newMockProjectRepository() *mockProjectRepository {
	return &mockProjectRepository{projects: make(map[uuid.UUID]*entity.Project)}
}

func (m *mockProjectRepository) CreateWithAward(ctx context.Context, p *entity.Project) error {
	m.projects[p.ID] = p
	return nil
}

func createTestRFQ(creatorID uuid.UUID, visibility valueobject.RFQVisibility) *entity.RFQ {
	return &entity.RFQ{
		ID:          uuid.New(),
		CreatorID:   creatorID,
		Title:       "Поставка цемента",
		Description: "50 мешков, доставка в Накуру",
		Visibility:  visibility,
		Status:      valueobject.RFQStatusOpen,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func createTestQuote(rfqID, vendorID uuid.UUID, amount float64) *entity.Quote {
	return &entity.Quote{
		ID:       uuid.New(),
		RFQID:    rfqID,
		VendorID: vendorID,
		Price:    valueobject.Money{Amount: amount, Currency: "KES"},
		Timeline: "2 недели",
		Status:   valueobject.QuoteStatusSubmitted,
	}
}

func ratingPtr(v float64) *float64 { return &v }

func TestResolveViewer(t *testing.T) {
	creatorID := uuid.New()
	strangerID := uuid.New()

	public := createTestRFQ(creatorID, valueobject.RFQVisibilityPublic)
	private := createTestRFQ(creatorID, valueobject.RFQVisibilityPrivate)

	if v := quote.ResolveViewer(public, creatorID); v != quote.ViewerCreator {
		t.Errorf("автор публичной заявки: ожидалось creator, получено %s", v)
	}
	if v := quote.ResolveViewer(private, creatorID); v != quote.ViewerCreator {
		t.Errorf("автор приватной заявки: ожидалось creator, получено %s", v)
	}
	if v := quote.ResolveViewer(public, strangerID); v != quote.ViewerVendor {
		t.Errorf("посторонний на публичной заявке: ожидалось vendor, получено %s", v)
	}
	if v := quote.ResolveViewer(private, strangerID); v != quote.ViewerUnauthorized {
		t.Errorf("посторонний на приватной заявке: ожидалось unauthorized, получено %s", v)
	}
}

func TestGetComparisonUseCase_CreatorSeesAll(t *testing.T) {
	rfqRepo := newMockRFQRepository()
	quoteRepo := newMockQuoteRepository()
	vendorRepo := newMockVendorRepository()
	uc := quote.NewGetComparisonUseCase(rfqRepo, quoteRepo, vendorRepo)

	creatorID := uuid.New()
	vendorA := uuid.New()
	vendorB := uuid.New()

	rfq := createTestRFQ(creatorID, valueobject.RFQVisibilityPublic)
	rfqRepo.rfqs[rfq.ID] = rfq

	qa := createTestQuote(rfq.ID, vendorA, 45000)
	qb := createTestQuote(rfq.ID, vendorB, 38500)
	quoteRepo.quotes[qa.ID] = qa
	quoteRepo.quotes[qb.ID] = qb

	vendorRepo.vendors[vendorA] = &entity.VendorProfile{
		UserID:      vendorA,
		DisplayName: "Mwangi Supplies",
		Rating:      ratingPtr(4.5),
	}

	result, err := uc.Execute(context.Background(), rfq.ID, creatorID)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if result.Viewer != quote.ViewerCreator {
		t.Errorf("ожидалась роль creator, получена %s", result.Viewer)
	}
	if len(result.Items) != 2 {
		t.Fatalf("автор должен видеть 2 котировки, получено %d", len(result.Items))
	}

	for _, item := range result.Items {
		if item.Quote.VendorID == vendorA && item.Vendor == nil {
			t.Error("котировка vendorA должна быть обогащена карточкой поставщика")
		}
		if item.Quote.VendorID == vendorB && item.Vendor != nil {
			t.Error("у vendorB нет карточки, ожидался nil")
		}
	}
}

func TestGetComparisonUseCase_VendorSeesOnlyOwn(t *testing.T) {
	rfqRepo := newMockRFQRepository()
	quoteRepo := newMockQuoteRepository()
	vendorRepo := newMockVendorRepository()
	uc := quote.NewGetComparisonUseCase(rfqRepo, quoteRepo, vendorRepo)

	creatorID := uuid.New()
	vendorA := uuid.New()
	vendorB := uuid.New()

	rfq := createTestRFQ(creatorID, valueobject.RFQVisibilityPublic)
	rfqRepo.rfqs[rfq.ID] = rfq

	qa := createTestQuote(rfq.ID, vendorA, 45000)
	qb := createTestQuote(rfq.ID, vendorB, 38500)
	quoteRepo.quotes[qa.ID] = qa
	quoteRepo.quotes[qb.ID] = qb

	result, err := uc.Execute(context.Background(), rfq.ID, vendorA)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if result.Viewer != quote.ViewerVendor {
		t.Errorf("ожидалась роль vendor, получена %s", result.Viewer)
	}
	if len(result.Items) != 1 {
		t.Fatalf("поставщик должен видеть только свою котировку, получено %d", len(result.Items))
	}
	if result.Items[0].Quote.VendorID != vendorA {
		t.Error("в выдаче чужая котировка")
	}
}

func TestGetComparisonUseCase_PrivateForbidden(t *testing.T) {
	rfqRepo := newMockRFQRepository()
	quoteRepo := newMockQuoteRepository()
	vendorRepo := newMockVendorRepository()
	uc := quote.NewGetComparisonUseCase(rfqRepo, quoteRepo, vendorRepo)

	rfq := createTestRFQ(uuid.New(), valueobject.RFQVisibilityPrivate)
	rfqRepo.rfqs[rfq.ID] = rfq

	_, err := uc.Execute(context.Background(), rfq.ID, uuid.New())
	if !apperror.IsForbidden(err) {
		t.Fatalf("ожидался запрет доступа, получено %v", err)
	}
}

func TestComputeStats(t *testing.T) {
	vendorA := uuid.New()
	vendorB := uuid.New()
	rfqID := uuid.New()

	items := []*quote.ComparisonItem{
		{
			Quote: createTestQuote(rfqID, vendorA, 10000),
			Vendor: &entity.VendorProfile{
				UserID: vendorA,
				Rating: ratingPtr(3.8),
			},
		},
		{
			Quote:  createTestQuote(rfqID, vendorB, 15001),
			Vendor: &entity.VendorProfile{UserID: vendorB},
		},
	}

	stats := quote.ComputeStats(items)
	if stats == nil {
		t.Fatal("ожидалась сводка, получен nil")
	}
	if stats.Count != 2 {
		t.Errorf("ожидалось 2 котировки, получено %d", stats.Count)
	}
	if stats.LowestPrice != 10000 {
		t.Errorf("ожидалась минимальная цена 10000, получено %v", stats.LowestPrice)
	}
	if stats.AveragePrice != 12501 {
		t.Errorf("среднее должно округляться до 12501, получено %v", stats.AveragePrice)
	}
	if stats.TopRating != 3.8 {
		t.Errorf("ожидался лучший рейтинг 3.8, получено %v", stats.TopRating)
	}

	if quote.ComputeStats(nil) != nil {
		t.Error("для пустого списка ожидался nil")
	}
}
