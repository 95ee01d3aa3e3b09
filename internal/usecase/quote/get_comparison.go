package quote

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/domain/entity"
	"github.com/sokohub/rfq-backend/internal/domain/repository"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
)

// Viewer определяет, с какой стороны пользователь смотрит на страницу сравнения.
type Viewer string

const (
	ViewerCreator      Viewer = "creator"
	ViewerVendor       Viewer = "vendor"
	ViewerUnauthorized Viewer = "unauthorized"
)

type ComparisonItem struct {
	Quote  *entity.Quote
	Vendor *entity.VendorProfile
}

type ComparisonStats struct {
	Count        int
	LowestPrice  float64
	AveragePrice float64
	TopRating    float64
}

type Comparison struct {
	RFQ    *entity.RFQ
	Viewer Viewer
	Items  []*ComparisonItem
	Stats  *ComparisonStats
}

type GetComparisonUseCase struct {
	rfqRepo    repository.RFQRepository
	quoteRepo  repository.QuoteRepository
	vendorRepo repository.VendorRepository
}

func NewGetComparisonUseCase(rfqRepo repository.RFQRepository, quoteRepo repository.QuoteRepository, vendorRepo repository.VendorRepository) *GetComparisonUseCase {
	return &GetComparisonUseCase{
		rfqRepo:    rfqRepo,
		quoteRepo:  quoteRepo,
		vendorRepo: vendorRepo,
	}
}

func (uc *GetComparisonUseCase) Execute(ctx context.Context, rfqID, viewerID uuid.UUID) (*Comparison, error) {
	rfq, err := uc.rfqRepo.FindByID(ctx, rfqID)
	if err != nil {
		return nil, err
	}

	viewer := ResolveViewer(rfq, viewerID)
	if viewer == ViewerUnauthorized {
		return nil, apperror.ErrForbidden
	}

	var quotes []*entity.Quote
	if viewer == ViewerCreator {
		quotes, err = uc.quoteRepo.FindByRFQID(ctx, rfqID)
	} else {
		quotes, err = uc.quoteRepo.FindByRFQAndVendor(ctx, rfqID, viewerID)
	}
	if err != nil {
		return nil, err
	}

	vendorIDs := make([]uuid.UUID, 0, len(quotes))
	seen := make(map[uuid.UUID]bool, len(quotes))
	for _, q := range quotes {
		if !seen[q.VendorID] {
			seen[q.VendorID] = true
			vendorIDs = append(vendorIDs, q.VendorID)
		}
	}

	vendors := make(map[uuid.UUID]*entity.VendorProfile)
	if len(vendorIDs) > 0 {
		vendors, err = uc.vendorRepo.FindByUserIDs(ctx, vendorIDs)
		if err != nil {
			return nil, err
		}
	}

	items := make([]*ComparisonItem, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, &ComparisonItem{
			Quote:  q,
			Vendor: vendors[q.VendorID],
		})
	}

	return &Comparison{
		RFQ:    rfq,
		Viewer: viewer,
		Items:  items,
		Stats:  ComputeStats(items),
	}, nil
}

// ResolveViewer определяет роль пользователя относительно заявки.
// Автор всегда видит заявку, поставщик допускается только к публичным.
func ResolveViewer(rfq *entity.RFQ, viewerID uuid.UUID) Viewer {
	if rfq.IsOwnedBy(viewerID) {
		return ViewerCreator
	}
	if rfq.IsPublic() {
		return ViewerVendor
	}
	return ViewerUnauthorized
}

// ComputeStats считает сводку по котировкам. Среднее округляется
// до целого, отсутствующий рейтинг считается нулевым. Для пустого
// списка возвращается nil.
func ComputeStats(items []*ComparisonItem) *ComparisonStats {
	if len(items) == 0 {
		return nil
	}

	stats := &ComparisonStats{
		Count:       len(items),
		LowestPrice: items[0].Quote.Price.Amount,
	}

	var total float64
	for _, item := range items {
		amount := item.Quote.Price.Amount
		total += amount
		if amount < stats.LowestPrice {
			stats.LowestPrice = amount
		}
		if item.Vendor != nil && item.Vendor.RatingOrZero() > stats.TopRating {
			stats.TopRating = item.Vendor.RatingOrZero()
		}
	}
	stats.AveragePrice = math.Round(total / float64(len(items)))

	return stats
}
