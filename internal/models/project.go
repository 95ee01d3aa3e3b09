package models

import (
	"time"

	"github.com/google/uuid"
)

// Project создаётся при назначении принятой котировки в работу.
type Project struct {
	ID        uuid.UUID `db:"id" json:"id"`
	RFQID     uuid.UUID `db:"rfq_id" json:"rfq_id"`
	QuoteID   uuid.UUID `db:"quote_id" json:"quote_id"`
	VendorID  uuid.UUID `db:"vendor_id" json:"vendor_id"`
	CreatorID uuid.UUID `db:"creator_id" json:"creator_id"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
