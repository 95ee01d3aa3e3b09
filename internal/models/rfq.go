package models

import (
	"time"

	"github.com/google/uuid"
)

// RFQ описывает заявку на котировки (request for quotation).
type RFQ struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	CreatorID   uuid.UUID  `db:"creator_id" json:"creator_id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Category    *string    `db:"category" json:"category,omitempty"`
	Visibility  string     `db:"visibility" json:"visibility"`
	Status      string     `db:"status" json:"status"`
	BudgetHint  *float64   `db:"budget_hint" json:"budget_hint,omitempty"`
	DeadlineAt  *time.Time `db:"deadline_at" json:"deadline_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`

	Attachments []RFQAttachment `json:"attachments,omitempty"`
	QuotesCount *int            `db:"quotes_count" json:"quotes_count,omitempty"`
}

// RFQAttachment описывает файл, прикреплённый к заявке.
type RFQAttachment struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	RFQID     uuid.UUID  `db:"rfq_id" json:"rfq_id"`
	MediaID   uuid.UUID  `db:"media_id" json:"media_id"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	Media     *MediaFile `json:"media,omitempty"`
}

// IsPublic сообщает, открыта ли заявка для просмотра не-автором.
func (r *RFQ) IsPublic() bool {
	return r.Visibility == RFQVisibilityPublic
}

// IsOwnedBy сообщает, принадлежит ли заявка указанному пользователю.
func (r *RFQ) IsOwnedBy(userID uuid.UUID) bool {
	return r.CreatorID == userID
}
