package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/domain/valueobject"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
)

type Quote struct {
	ID        uuid.UUID
	RFQID     uuid.UUID
	VendorID  uuid.UUID
	Price     valueobject.Money
	Timeline  string
	Message   *string
	Status    valueobject.QuoteStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewQuote(rfqID, vendorID uuid.UUID, amount float64, currency, timeline string, message *string) (*Quote, error) {
	if timeline == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "срок поставки обязателен")
	}

	price, err := valueobject.NewMoney(amount, currency)
	if err != nil {
		return nil, err
	}

	return &Quote{
		ID:        uuid.New(),
		RFQID:     rfqID,
		VendorID:  vendorID,
		Price:     price,
		Timeline:  timeline,
		Message:   message,
		Status:    valueobject.QuoteStatusSubmitted,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

func (q *Quote) Accept() error {
	if !q.Status.CanTransitionTo(valueobject.QuoteStatusAccepted) {
		return apperror.New(apperror.ErrCodeBadRequest, "можно принять только поданную котировку")
	}
	q.Status = valueobject.QuoteStatusAccepted
	q.UpdatedAt = time.Now()
	return nil
}

func (q *Quote) Reject() error {
	if !q.Status.CanTransitionTo(valueobject.QuoteStatusRejected) {
		return apperror.New(apperror.ErrCodeBadRequest, "можно отклонить только поданную котировку")
	}
	q.Status = valueobject.QuoteStatusRejected
	q.UpdatedAt = time.Now()
	return nil
}

func (q *Quote) IsOwnedBy(userID uuid.UUID) bool {
	return q.VendorID == userID
}

func (q *Quote) IsAccepted() bool {
	return q.Status == valueobject.QuoteStatusAccepted
}
