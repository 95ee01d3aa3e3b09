package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/domain/valueobject"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
)

type RFQ struct {
	ID          uuid.UUID
	CreatorID   uuid.UUID
	Title       string
	Description string
	Category    *string
	Visibility  valueobject.RFQVisibility
	Status      valueobject.RFQStatus
	BudgetHint  *float64
	DeadlineAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewRFQ(creatorID uuid.UUID, title, description, visibility string, deadline *time.Time) (*RFQ, error) {
	if title == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "название заявки обязательно")
	}
	if description == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "описание заявки обязательно")
	}

	vis, err := valueobject.NewRFQVisibility(visibility)
	if err != nil {
		return nil, err
	}

	if deadline != nil && deadline.Before(time.Now()) {
		return nil, apperror.New(apperror.ErrCodeValidation, "дедлайн не может быть в прошлом")
	}

	return &RFQ{
		ID:          uuid.New(),
		CreatorID:   creatorID,
		Title:       title,
		Description: description,
		Visibility:  vis,
		Status:      valueobject.RFQStatusOpen,
		DeadlineAt:  deadline,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

func (r *RFQ) Close() error {
	if !r.Status.CanTransitionTo(valueobject.RFQStatusClosed) {
		return apperror.New(apperror.ErrCodeBadRequest, "невозможно закрыть заявку в текущем статусе")
	}
	r.Status = valueobject.RFQStatusClosed
	r.UpdatedAt = time.Now()
	return nil
}

func (r *RFQ) Award() error {
	if !r.Status.CanTransitionTo(valueobject.RFQStatusAwarded) {
		return apperror.New(apperror.ErrCodeBadRequest, "невозможно назначить работу по заявке в текущем статусе")
	}
	r.Status = valueobject.RFQStatusAwarded
	r.UpdatedAt = time.Now()
	return nil
}

func (r *RFQ) IsOwnedBy(userID uuid.UUID) bool {
	return r.CreatorID == userID
}

func (r *RFQ) IsPublic() bool {
	return r.Visibility == valueobject.RFQVisibilityPublic
}

func (r *RFQ) IsOpen() bool {
	return r.Status == valueobject.RFQStatusOpen
}
