package entity

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID        uuid.UUID
	RFQID     uuid.UUID
	QuoteID   uuid.UUID
	VendorID  uuid.UUID
	CreatorID uuid.UUID
	StartDate time.Time
	Notes     *string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewProject(rfq *RFQ, quote *Quote, startDate time.Time, notes *string) *Project {
	return &Project{
		ID:        uuid.New(),
		RFQID:     rfq.ID,
		QuoteID:   quote.ID,
		VendorID:  quote.VendorID,
		CreatorID: rfq.CreatorID,
		StartDate: startDate,
		Notes:     notes,
		Status:    "active",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
