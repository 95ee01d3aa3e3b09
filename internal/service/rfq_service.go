package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/models"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
	"github.com/sokohub/rfq-backend/internal/repository"
	"github.com/sokohub/rfq-backend/internal/validation"
)

// RFQRepositoryFull описывает взаимодействие сервиса с хранилищем заявок.
type RFQRepositoryFull interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.RFQ, error)
	Create(ctx context.Context, rfq *models.RFQ, attachmentIDs []uuid.UUID) error
	Update(ctx context.Context, rfq *models.RFQ) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPublic(ctx context.Context, limit, offset int) ([]models.RFQ, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID, limit, offset int) ([]models.RFQ, error)
	ListAttachments(ctx context.Context, rfqID uuid.UUID) ([]models.RFQAttachment, error)
}

// RFQService содержит бизнес-логику работы с заявками.
type RFQService struct {
	repo RFQRepositoryFull
}

// NewRFQService создаёт сервис заявок.
func NewRFQService(repo RFQRepositoryFull) *RFQService {
	return &RFQService{repo: repo}
}

// CreateRFQInput описывает входные данные для создания заявки.
type CreateRFQInput struct {
	CreatorID     uuid.UUID
	Title         string
	Description   string
	Category      *string
	Visibility    string
	BudgetHint    *float64
	DeadlineAt    *time.Time
	AttachmentIDs []uuid.UUID
}

// UpdateRFQInput описывает входные данные для обновления заявки.
type UpdateRFQInput struct {
	RFQID       uuid.UUID
	ActorID     uuid.UUID
	Title       string
	Description string
	Category    *string
	Visibility  string
	BudgetHint  *float64
	DeadlineAt  *time.Time
}

// CreateRFQ создаёт новую заявку на котировки.
func (s *RFQService) CreateRFQ(ctx context.Context, in CreateRFQInput) (*models.RFQ, error) {
	if err := validateRFQFields(in.Title, in.Description, in.Visibility); err != nil {
		return nil, err
	}

	rfq := &models.RFQ{
		CreatorID:   in.CreatorID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Visibility:  in.Visibility,
		Status:      models.RFQStatusOpen,
		BudgetHint:  in.BudgetHint,
		DeadlineAt:  in.DeadlineAt,
	}

	if err := s.repo.Create(ctx, rfq, in.AttachmentIDs); err != nil {
		return nil, err
	}

	return rfq, nil
}

// GetRFQ возвращает заявку с вложениями. Приватную заявку видит только автор.
func (s *RFQService) GetRFQ(ctx context.Context, id, userID uuid.UUID) (*models.RFQ, error) {
	rfq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRFQNotFound) {
			return nil, apperror.ErrRFQNotFound
		}
		return nil, err
	}

	if !rfq.IsPublic() && !rfq.IsOwnedBy(userID) {
		return nil, apperror.ErrForbidden
	}

	attachments, err := s.repo.ListAttachments(ctx, id)
	if err != nil {
		return nil, err
	}
	rfq.Attachments = attachments

	return rfq, nil
}

// UpdateRFQ обновляет заявку. Доступно только автору и только пока заявка открыта.
func (s *RFQService) UpdateRFQ(ctx context.Context, in UpdateRFQInput) (*models.RFQ, error) {
	rfq, err := s.repo.GetByID(ctx, in.RFQID)
	if err != nil {
		if errors.Is(err, repository.ErrRFQNotFound) {
			return nil, apperror.ErrRFQNotFound
		}
		return nil, err
	}

	if !rfq.IsOwnedBy(in.ActorID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "редактировать заявку может только её автор")
	}
	if rfq.Status != models.RFQStatusOpen {
		return nil, apperror.New(apperror.ErrCodePrecondition,
			fmt.Sprintf("заявку в статусе %s нельзя редактировать", rfq.Status))
	}

	if err := validateRFQFields(in.Title, in.Description, in.Visibility); err != nil {
		return nil, err
	}

	rfq.Title = in.Title
	rfq.Description = in.Description
	rfq.Category = in.Category
	rfq.Visibility = in.Visibility
	rfq.BudgetHint = in.BudgetHint
	rfq.DeadlineAt = in.DeadlineAt

	if err := s.repo.Update(ctx, rfq); err != nil {
		return nil, err
	}

	return rfq, nil
}

// CloseRFQ закрывает заявку без назначения исполнителя.
func (s *RFQService) CloseRFQ(ctx context.Context, id, actorID uuid.UUID) error {
	rfq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRFQNotFound) {
			return apperror.ErrRFQNotFound
		}
		return err
	}

	if !rfq.IsOwnedBy(actorID) {
		return apperror.New(apperror.ErrCodeForbidden, "закрыть заявку может только её автор")
	}
	if rfq.Status == models.RFQStatusAwarded {
		return apperror.New(apperror.ErrCodePrecondition, "по заявке уже назначен исполнитель")
	}

	return s.repo.UpdateStatus(ctx, id, models.RFQStatusClosed)
}

// DeleteRFQ удаляет заявку вместе с котировками.
func (s *RFQService) DeleteRFQ(ctx context.Context, id, actorID uuid.UUID) error {
	rfq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRFQNotFound) {
			return apperror.ErrRFQNotFound
		}
		return err
	}

	if !rfq.IsOwnedBy(actorID) {
		return apperror.New(apperror.ErrCodeForbidden, "удалить заявку может только её автор")
	}

	return s.repo.Delete(ctx, id)
}

// ListPublicRFQs возвращает ленту открытых публичных заявок.
func (s *RFQService) ListPublicRFQs(ctx context.Context, limit, offset int) ([]models.RFQ, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.ListPublic(ctx, limit, offset)
}

// ListMyRFQs возвращает заявки автора, включая приватные.
func (s *RFQService) ListMyRFQs(ctx context.Context, creatorID uuid.UUID, limit, offset int) ([]models.RFQ, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.ListByCreator(ctx, creatorID, limit, offset)
}

func validateRFQFields(title, description, visibility string) error {
	if err := validation.ValidateLength("название", title, validation.MinRFQTitleLength, validation.MaxRFQTitleLength); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateLength("описание", description, validation.MinRFQDescriptionLength, validation.MaxRFQDescriptionLength); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if visibility != models.RFQVisibilityPrivate && visibility != models.RFQVisibilityPublic {
		return apperror.New(apperror.ErrCodeValidation, "видимость должна быть private или public")
	}
	return nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
