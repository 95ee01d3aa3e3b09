package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/domain/entity"
	"github.com/sokohub/rfq-backend/internal/usecase/quote"
)

type UpdateQuoteStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

type AssignJobRequest struct {
	StartDate string  `json:"start_date" binding:"required"`
	Notes     *string `json:"notes"`
}

// ParseStartDate разбирает дату начала работ в формате RFC3339.
func ParseStartDate(raw string) (*time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type QuoteResponse struct {
	ID        uuid.UUID `json:"id"`
	RFQID     uuid.UUID `json:"rfq_id"`
	VendorID  uuid.UUID `json:"vendor_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Timeline  string    `json:"timeline"`
	Message   *string   `json:"message,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type VendorResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Rating      *float64  `json:"rating,omitempty"`
	Verified    bool      `json:"verified"`
	Location    *string   `json:"location,omitempty"`
}

type ComparisonItemResponse struct {
	Quote  QuoteResponse   `json:"quote"`
	Vendor *VendorResponse `json:"vendor,omitempty"`
}

type ComparisonStatsResponse struct {
	Count        int     `json:"count"`
	LowestPrice  float64 `json:"lowest_price"`
	AveragePrice float64 `json:"average_price"`
	TopRating    float64 `json:"top_rating"`
}

type ComparisonResponse struct {
	RFQID  uuid.UUID                `json:"rfq_id"`
	Viewer string                   `json:"viewer"`
	Items  []ComparisonItemResponse `json:"items"`
	Stats  *ComparisonStatsResponse `json:"stats,omitempty"`
}

type ProjectResponse struct {
	ID        uuid.UUID `json:"id"`
	RFQID     uuid.UUID `json:"rfq_id"`
	QuoteID   uuid.UUID `json:"quote_id"`
	VendorID  uuid.UUID `json:"vendor_id"`
	CreatorID uuid.UUID `json:"creator_id"`
	StartDate time.Time `json:"start_date"`
	Notes     *string   `json:"notes,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func ToQuoteResponse(q *entity.Quote) QuoteResponse {
	return QuoteResponse{
		ID:        q.ID,
		RFQID:     q.RFQID,
		VendorID:  q.VendorID,
		Amount:    q.Price.Amount,
		Currency:  q.Price.Currency,
		Timeline:  q.Timeline,
		Message:   q.Message,
		Status:    string(q.Status),
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

func ToComparisonResponse(cmp *quote.Comparison) ComparisonResponse {
	items := make([]ComparisonItemResponse, 0, len(cmp.Items))
	for _, item := range cmp.Items {
		resp := ComparisonItemResponse{Quote: ToQuoteResponse(item.Quote)}
		if item.Vendor != nil {
			resp.Vendor = &VendorResponse{
				UserID:      item.Vendor.UserID,
				DisplayName: item.Vendor.DisplayName,
				Rating:      item.Vendor.Rating,
				Verified:    item.Vendor.Verified,
				Location:    item.Vendor.Location,
			}
		}
		items = append(items, resp)
	}

	result := ComparisonResponse{
		RFQID:  cmp.RFQ.ID,
		Viewer: string(cmp.Viewer),
		Items:  items,
	}
	if cmp.Stats != nil {
		result.Stats = &ComparisonStatsResponse{
			Count:        cmp.Stats.Count,
			LowestPrice:  cmp.Stats.LowestPrice,
			AveragePrice: cmp.Stats.AveragePrice,
			TopRating:    cmp.Stats.TopRating,
		}
	}
	return result
}

func ToProjectResponse(p *entity.Project) ProjectResponse {
	return ProjectResponse{
		ID:        p.ID,
		RFQID:     p.RFQID,
		QuoteID:   p.QuoteID,
		VendorID:  p.VendorID,
		CreatorID: p.CreatorID,
		StartDate: p.StartDate,
		Notes:     p.Notes,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}
