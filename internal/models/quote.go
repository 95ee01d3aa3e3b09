package models

import (
	"time"

	"github.com/google/uuid"
)

// Quote представляет отклик поставщика на RFQ.
type Quote struct {
	ID        uuid.UUID `db:"id" json:"id"`
	RFQID     uuid.UUID `db:"rfq_id" json:"rfq_id"`
	VendorID  uuid.UUID `db:"vendor_id" json:"vendor_id"`
	Amount    float64   `db:"amount" json:"amount"`
	Currency  string    `db:"currency" json:"currency"`
	Timeline  string    `db:"timeline" json:"timeline"`
	Message   *string   `db:"message" json:"message,omitempty"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsOwnedBy сообщает, принадлежит ли котировка указанному поставщику.
func (q *Quote) IsOwnedBy(userID uuid.UUID) bool {
	return q.VendorID == userID
}

// QuoteStats — агрегаты по набору котировок. Вычисляются заново на каждый
// запрос сравнения; при пустом наборе блок отсутствует целиком.
type QuoteStats struct {
	Count        int     `json:"count"`
	LowestPrice  float64 `json:"lowest_price"`
	AveragePrice float64 `json:"average_price"`
	TopRating    float64 `json:"top_rating"`
}
