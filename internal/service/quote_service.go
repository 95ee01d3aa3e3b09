package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/logger"
	"github.com/sokohub/rfq-backend/internal/models"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
	"github.com/sokohub/rfq-backend/internal/repository"
	"github.com/sokohub/rfq-backend/internal/validation"
)

// ViewerRole определяет, в каком качестве пользователь смотрит на заявку.
// От роли зависит и видимость котировок, и доступность действий.
type ViewerRole int

const (
	// ViewerUnauthorized — доступа к заявке нет.
	ViewerUnauthorized ViewerRole = iota
	// ViewerCreator — автор заявки, видит все котировки и управляет ими.
	ViewerCreator
	// ViewerVendor — поставщик, видит только собственные отклики.
	ViewerVendor
)

// String возвращает строковое представление роли для ответов API.
func (v ViewerRole) String() string {
	switch v {
	case ViewerCreator:
		return "creator"
	case ViewerVendor:
		return "vendor"
	default:
		return "unauthorized"
	}
}

// RFQReader описывает доступ сервиса котировок к заявкам.
type RFQReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.RFQ, error)
}

// QuoteStore описывает взаимодействие сервиса с хранилищем котировок.
type QuoteStore interface {
	Create(ctx context.Context, quote *models.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	ListByRFQ(ctx context.Context, rfqID uuid.UUID) ([]models.Quote, error)
	ListByRFQAndVendor(ctx context.Context, rfqID, vendorID uuid.UUID) ([]models.Quote, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]models.Quote, error)
	Update(ctx context.Context, quote *models.Quote) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	GetVendorProfiles(ctx context.Context, vendorIDs []uuid.UUID) ([]models.VendorProfile, error)
}

// QuoteNotifier создаёт сохраняемое уведомление и дублирует его в WebSocket.
type QuoteNotifier interface {
	CreateNotification(ctx context.Context, userID uuid.UUID, event string, data interface{}) (*models.Notification, error)
}

// WSNotifier интерфейс для отправки WebSocket уведомлений.
type WSNotifier interface {
	BroadcastToUser(userID uuid.UUID, event string, data interface{}) error
}

// QuoteService содержит бизнес-логику котировок и страницы сравнения.
type QuoteService struct {
	rfqs          RFQReader
	quotes        QuoteStore
	notifications QuoteNotifier
	hub           WSNotifier
}

// NewQuoteService создаёт сервис котировок.
func NewQuoteService(rfqs RFQReader, quotes QuoteStore, notifications QuoteNotifier) *QuoteService {
	return &QuoteService{
		rfqs:          rfqs,
		quotes:        quotes,
		notifications: notifications,
	}
}

// SetHub устанавливает WebSocket hub для отправки уведомлений.
func (s *QuoteService) SetHub(hub WSNotifier) {
	s.hub = hub
}

// EnrichedQuote — котировка вместе с карточкой поставщика.
// Vendor равен nil, если у поставщика ещё нет карточки.
type EnrichedQuote struct {
	Quote  models.Quote          `json:"quote"`
	Vendor *models.VendorProfile `json:"vendor,omitempty"`
}

// Comparison — полный ответ страницы сравнения котировок.
type Comparison struct {
	RFQ    *models.RFQ        `json:"rfq"`
	Viewer ViewerRole         `json:"-"`
	Quotes []EnrichedQuote    `json:"quotes"`
	Stats  *models.QuoteStats `json:"stats,omitempty"`
}

// ResolveViewer определяет роль пользователя относительно заявки.
// Автор всегда имеет доступ. Любой другой пользователь получает доступ
// только к публичной заявке и видит лишь собственные котировки.
// Приватные заявки для не-авторов запрещены.
func (s *QuoteService) ResolveViewer(rfq *models.RFQ, userID uuid.UUID, role string) ViewerRole {
	if rfq.IsOwnedBy(userID) {
		return ViewerCreator
	}
	if rfq.IsPublic() {
		return ViewerVendor
	}
	return ViewerUnauthorized
}

// GetComparison загружает заявку с котировками сообразно роли зрителя.
// Автор видит все котировки, поставщик только свои. Карточки поставщиков
// подгружаются одним батч-запросом, а не по одной на котировку.
func (s *QuoteService) GetComparison(ctx context.Context, rfqID, userID uuid.UUID, role string) (*Comparison, error) {
	rfq, err := s.rfqs.GetByID(ctx, rfqID)
	if err != nil {
		if errors.Is(err, repository.ErrRFQNotFound) {
			return nil, apperror.ErrRFQNotFound
		}
		return nil, err
	}

	viewer := s.ResolveViewer(rfq, userID, role)
	if viewer == ViewerUnauthorized {
		return nil, apperror.ErrForbidden
	}

	var quotes []models.Quote
	switch viewer {
	case ViewerCreator:
		quotes, err = s.quotes.ListByRFQ(ctx, rfqID)
	case ViewerVendor:
		quotes, err = s.quotes.ListByRFQAndVendor(ctx, rfqID, userID)
	}
	if err != nil {
		return nil, err
	}

	vendors, err := s.loadVendorProfiles(ctx, quotes)
	if err != nil {
		return nil, err
	}

	enriched := make([]EnrichedQuote, 0, len(quotes))
	for _, q := range quotes {
		eq := EnrichedQuote{Quote: q}
		if profile, ok := vendors[q.VendorID]; ok {
			p := profile
			eq.Vendor = &p
		}
		enriched = append(enriched, eq)
	}

	return &Comparison{
		RFQ:    rfq,
		Viewer: viewer,
		Quotes: enriched,
		Stats:  BuildStats(quotes, vendors),
	}, nil
}

// VendorProfilesFor возвращает карточки поставщиков для набора котировок.
func (s *QuoteService) VendorProfilesFor(ctx context.Context, quotes []models.Quote) (map[uuid.UUID]models.VendorProfile, error) {
	return s.loadVendorProfiles(ctx, quotes)
}

// loadVendorProfiles собирает уникальные ID поставщиков и делает один
// батч-запрос вместо запроса на каждую котировку.
func (s *QuoteService) loadVendorProfiles(ctx context.Context, quotes []models.Quote) (map[uuid.UUID]models.VendorProfile, error) {
	if len(quotes) == 0 {
		return map[uuid.UUID]models.VendorProfile{}, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(quotes))
	ids := make([]uuid.UUID, 0, len(quotes))
	for _, q := range quotes {
		if _, ok := seen[q.VendorID]; ok {
			continue
		}
		seen[q.VendorID] = struct{}{}
		ids = append(ids, q.VendorID)
	}

	profiles, err := s.quotes.GetVendorProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.VendorProfile, len(profiles))
	for _, p := range profiles {
		byID[p.UserID] = p
	}
	return byID, nil
}

// BuildStats вычисляет агрегаты по набору котировок: количество, минимальную
// и среднюю цену, лучший рейтинг среди поставщиков. Поставщик без рейтинга
// учитывается как ноль. Для пустого набора возвращается nil.
func BuildStats(quotes []models.Quote, vendors map[uuid.UUID]models.VendorProfile) *models.QuoteStats {
	if len(quotes) == 0 {
		return nil
	}

	stats := &models.QuoteStats{
		Count:       len(quotes),
		LowestPrice: quotes[0].Amount,
	}

	var total float64
	for _, q := range quotes {
		total += q.Amount
		if q.Amount < stats.LowestPrice {
			stats.LowestPrice = q.Amount
		}

		var rating float64
		if profile, ok := vendors[q.VendorID]; ok && profile.Rating != nil {
			rating = *profile.Rating
		}
		if rating > stats.TopRating {
			stats.TopRating = rating
		}
	}

	stats.AveragePrice = math.Round(total / float64(len(quotes)))
	return stats
}

// SubmitQuoteInput описывает отклик поставщика на заявку.
type SubmitQuoteInput struct {
	RFQID    uuid.UUID
	VendorID uuid.UUID
	Amount   float64
	Currency string
	Timeline string
	Message  *string
}

// SubmitQuote создаёт котировку поставщика. Откликаться можно только на
// открытые публичные заявки, по одной котировке на заявку от поставщика.
func (s *QuoteService) SubmitQuote(ctx context.Context, in SubmitQuoteInput) (*models.Quote, error) {
	if err := validation.ValidateAmount(in.Amount); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, "некорректная сумма котировки")
	}
	if err := validation.ValidateNonEmpty("timeline", in.Timeline); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, "срок выполнения обязателен")
	}

	rfq, err := s.rfqs.GetByID(ctx, in.RFQID)
	if err != nil {
		if errors.Is(err, repository.ErrRFQNotFound) {
			return nil, apperror.ErrRFQNotFound
		}
		return nil, err
	}

	if rfq.IsOwnedBy(in.VendorID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "нельзя откликнуться на собственную заявку")
	}
	if !rfq.IsPublic() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "заявка недоступна для откликов")
	}
	if rfq.Status != models.RFQStatusOpen {
		return nil, apperror.New(apperror.ErrCodePrecondition,
			fmt.Sprintf("заявка в статусе %s не принимает котировки", rfq.Status))
	}

	currency := in.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	quote := &models.Quote{
		RFQID:    in.RFQID,
		VendorID: in.VendorID,
		Amount:   in.Amount,
		Currency: currency,
		Timeline: in.Timeline,
		Message:  in.Message,
		Status:   models.QuoteStatusSubmitted,
	}

	if err := s.quotes.Create(ctx, quote); err != nil {
		if errors.Is(err, repository.ErrQuoteDuplicate) {
			return nil, apperror.New(apperror.ErrCodeConflict, "вы уже отправили котировку на эту заявку")
		}
		return nil, err
	}

	s.notify(ctx, rfq.CreatorID, models.EventQuoteSubmitted, quote)

	return quote, nil
}

// UpdateQuoteInput — правка котировки поставщиком.
type UpdateQuoteInput struct {
	QuoteID  uuid.UUID
	VendorID uuid.UUID
	Amount   float64
	Currency string
	Timeline string
	Message  *string
}

// UpdateMyQuote сохраняет правку котировки её автором. Править можно
// только котировку в статусе submitted: после решения автора заявки
// условия зафиксированы.
func (s *QuoteService) UpdateMyQuote(ctx context.Context, in UpdateQuoteInput) (*models.Quote, error) {
	if err := validation.ValidateAmount(in.Amount); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, "некорректная сумма котировки")
	}
	if err := validation.ValidateNonEmpty("timeline", in.Timeline); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, "срок выполнения обязателен")
	}

	quote, err := s.quotes.GetByID(ctx, in.QuoteID)
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return nil, apperror.ErrQuoteNotFound
		}
		return nil, err
	}

	if quote.VendorID != in.VendorID {
		return nil, apperror.ErrForbidden
	}
	if quote.Status != models.QuoteStatusSubmitted {
		return nil, apperror.New(apperror.ErrCodePrecondition,
			fmt.Sprintf("котировку в статусе %s нельзя изменить", quote.Status))
	}

	quote.Amount = in.Amount
	if in.Currency != "" {
		quote.Currency = in.Currency
	}
	quote.Timeline = in.Timeline
	quote.Message = in.Message

	if err := s.quotes.Update(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// ListMyQuotes возвращает котировки поставщика.
func (s *QuoteService) ListMyQuotes(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]models.Quote, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.quotes.ListByVendor(ctx, vendorID, limit, offset)
}

// AcceptQuote переводит котировку в статус accepted. Доступно только автору
// заявки. Принятие одной котировки не отклоняет остальные: автор волен
// принять несколько и выбрать исполнителя на шаге назначения.
func (s *QuoteService) AcceptQuote(ctx context.Context, actorID, quoteID uuid.UUID) (*models.Quote, error) {
	return s.updateQuoteStatus(ctx, actorID, quoteID, models.QuoteStatusAccepted, models.EventQuoteAccepted)
}

// RejectQuote переводит котировку в статус rejected. Доступно только автору заявки.
func (s *QuoteService) RejectQuote(ctx context.Context, actorID, quoteID uuid.UUID) (*models.Quote, error) {
	return s.updateQuoteStatus(ctx, actorID, quoteID, models.QuoteStatusRejected, models.EventQuoteRejected)
}

func (s *QuoteService) updateQuoteStatus(ctx context.Context, actorID, quoteID uuid.UUID, status, event string) (*models.Quote, error) {
	quote, err := s.quotes.GetByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return nil, apperror.ErrQuoteNotFound
		}
		return nil, err
	}

	rfq, err := s.rfqs.GetByID(ctx, quote.RFQID)
	if err != nil {
		return nil, err
	}

	if !rfq.IsOwnedBy(actorID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "менять статус котировки может только автор заявки")
	}

	// accepted и rejected — терминальные статусы, решение не пересматривается
	if quote.Status != models.QuoteStatusSubmitted {
		return nil, apperror.New(apperror.ErrCodeBadRequest,
			fmt.Sprintf("котировка в статусе %s, менять статус можно только у submitted", quote.Status))
	}

	if err := s.quotes.UpdateStatus(ctx, quoteID, status); err != nil {
		return nil, err
	}
	quote.Status = status

	s.notify(ctx, quote.VendorID, event, quote)

	return quote, nil
}

// notify сохраняет уведомление и дублирует его в WebSocket. Ошибки
// уведомлений не прерывают основную операцию.
func (s *QuoteService) notify(ctx context.Context, userID uuid.UUID, event string, data interface{}) {
	if s.notifications != nil {
		if _, err := s.notifications.CreateNotification(ctx, userID, event, data); err != nil {
			if logger.Log != nil {
				logger.Log.WithFields(map[string]interface{}{
					"user_id": userID,
					"event":   event,
					"error":   err.Error(),
				}).Warn("quote service: не удалось сохранить уведомление")
			}
		}
	}
	if s.hub != nil {
		if err := s.hub.BroadcastToUser(userID, event, data); err != nil {
			if logger.Log != nil {
				logger.Log.WithFields(map[string]interface{}{
					"user_id": userID,
					"event":   event,
					"error":   err.Error(),
				}).Warn("quote service: не удалось отправить уведомление в WebSocket")
			}
		}
	}
}
