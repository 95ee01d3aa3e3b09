package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/logger"
	"github.com/sokohub/rfq-backend/internal/models"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
	"github.com/sokohub/rfq-backend/internal/repository"
)

// QuoteReader описывает минимальный доступ к котировкам при назначении.
type QuoteReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
}

// ProjectStore описывает взаимодействие сервиса с хранилищем проектов.
type ProjectStore interface {
	CreateWithAward(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Project, error)
}

// AssignmentService создаёт проекты по принятым котировкам.
type AssignmentService struct {
	rfqs          RFQReader
	quotes        QuoteReader
	projects      ProjectStore
	notifications QuoteNotifier
	hub           WSNotifier
}

// NewAssignmentService создаёт сервис назначения работ.
func NewAssignmentService(rfqs RFQReader, quotes QuoteReader, projects ProjectStore, notifications QuoteNotifier) *AssignmentService {
	return &AssignmentService{
		rfqs:          rfqs,
		quotes:        quotes,
		projects:      projects,
		notifications: notifications,
	}
}

// SetHub устанавливает WebSocket hub для отправки уведомлений.
func (s *AssignmentService) SetHub(hub WSNotifier) {
	s.hub = hub
}

// AssignJobInput описывает назначение работы по котировке.
type AssignJobInput struct {
	QuoteID   uuid.UUID
	ActorID   uuid.UUID
	StartDate *time.Time
	Notes     *string
}

// AssignJob создаёт проект по принятой котировке и переводит заявку в
// статус awarded одной транзакцией. Назначать может только автор заявки
// и только по котировке в статусе accepted: сначала принять, потом
// назначить, даже если котировка на заявке единственная.
func (s *AssignmentService) AssignJob(ctx context.Context, in AssignJobInput) (*models.Project, error) {
	quote, err := s.quotes.GetByID(ctx, in.QuoteID)
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return nil, apperror.ErrQuoteNotFound
		}
		return nil, err
	}

	rfq, err := s.rfqs.GetByID(ctx, quote.RFQID)
	if err != nil {
		if errors.Is(err, repository.ErrRFQNotFound) {
			return nil, apperror.ErrRFQNotFound
		}
		return nil, err
	}

	if !rfq.IsOwnedBy(in.ActorID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "назначать работу может только автор заявки")
	}

	if quote.Status != models.QuoteStatusAccepted {
		return nil, apperror.ErrQuoteNotAccepted
	}

	startDate := time.Now()
	if in.StartDate != nil {
		startDate = *in.StartDate
	}

	project := &models.Project{
		RFQID:     rfq.ID,
		QuoteID:   quote.ID,
		VendorID:  quote.VendorID,
		CreatorID: rfq.CreatorID,
		StartDate: startDate,
		Notes:     in.Notes,
		Status:    models.ProjectStatusActive,
	}

	if err := s.projects.CreateWithAward(ctx, project); err != nil {
		return nil, err
	}

	s.notifyAssigned(ctx, quote.VendorID, project)

	return project, nil
}

// GetProject возвращает проект, доступ имеют только его участники.
func (s *AssignmentService) GetProject(ctx context.Context, id, userID uuid.UUID) (*models.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.CreatorID != userID && project.VendorID != userID {
		return nil, apperror.ErrForbidden
	}
	return project, nil
}

// ListMyProjects возвращает проекты, где пользователь автор или исполнитель.
func (s *AssignmentService) ListMyProjects(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Project, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.projects.ListByUser(ctx, userID, limit, offset)
}

func (s *AssignmentService) notifyAssigned(ctx context.Context, vendorID uuid.UUID, project *models.Project) {
	if s.notifications != nil {
		if _, err := s.notifications.CreateNotification(ctx, vendorID, models.EventJobAssigned, project); err != nil {
			if logger.Log != nil {
				logger.Log.WithFields(map[string]interface{}{
					"vendor_id":  vendorID,
					"project_id": project.ID,
					"error":      err.Error(),
				}).Warn("assignment service: не удалось сохранить уведомление")
			}
		}
	}
	if s.hub != nil {
		if err := s.hub.BroadcastToUser(vendorID, models.EventJobAssigned, project); err != nil {
			if logger.Log != nil {
				logger.Log.WithFields(map[string]interface{}{
					"vendor_id":  vendorID,
					"project_id": project.ID,
					"error":      err.Error(),
				}).Warn("assignment service: не удалось отправить уведомление в WebSocket")
			}
		}
	}
}
