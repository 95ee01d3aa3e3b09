package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sokohub/rfq-backend/internal/models"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
	"github.com/sokohub/rfq-backend/internal/repository"
	"github.com/sokohub/rfq-backend/internal/validation"
)

// VendorRepositoryFull описывает взаимодействие сервиса с карточками поставщиков.
type VendorRepositoryFull interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error)
	Upsert(ctx context.Context, profile *models.VendorProfile) error
	SetRating(ctx context.Context, userID uuid.UUID, rating float64) error
	SetVerified(ctx context.Context, userID uuid.UUID, verified bool) error
}

// VendorService содержит бизнес-логику карточек поставщиков.
type VendorService struct {
	repo VendorRepositoryFull
}

// NewVendorService создаёт сервис поставщиков.
func NewVendorService(repo VendorRepositoryFull) *VendorService {
	return &VendorService{repo: repo}
}

// UpdateVendorProfileInput описывает редактируемые поля карточки.
type UpdateVendorProfileInput struct {
	UserID            uuid.UUID
	DisplayName       string
	Phone             *string
	ContactEmail      *string
	ResponseTimeHours *float64
	Location          *string
	PhotoID           *uuid.UUID
}

// GetProfile возвращает карточку поставщика.
func (s *VendorService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrVendorProfileNotFound) {
			return nil, apperror.ErrVendorNotFound
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile обновляет карточку поставщика. Рейтинг и признак
// верификации пользователю недоступны, их выставляет платформа.
func (s *VendorService) UpdateProfile(ctx context.Context, in UpdateVendorProfileInput) (*models.VendorProfile, error) {
	if err := validation.ValidateLength("имя", in.DisplayName, 1, validation.MaxDisplayNameLength); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if in.Phone != nil && *in.Phone != "" {
		if err := validation.ValidatePhone(*in.Phone); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	if in.ContactEmail != nil && *in.ContactEmail != "" {
		if err := validation.ValidateEmail(*in.ContactEmail); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	if in.Location != nil {
		if err := validation.ValidateLength("локация", *in.Location, 0, validation.MaxLocationLength); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}

	profile := &models.VendorProfile{
		UserID:            in.UserID,
		DisplayName:       in.DisplayName,
		Phone:             in.Phone,
		ContactEmail:      in.ContactEmail,
		ResponseTimeHours: in.ResponseTimeHours,
		Location:          in.Location,
		PhotoID:           in.PhotoID,
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	return s.repo.GetByUserID(ctx, in.UserID)
}

// SetRating выставляет рейтинг поставщика (админская операция).
func (s *VendorService) SetRating(ctx context.Context, userID uuid.UUID, rating float64) error {
	if rating < 0 || rating > 5 {
		return apperror.New(apperror.ErrCodeValidation, "рейтинг должен быть в диапазоне от 0 до 5")
	}
	return s.repo.SetRating(ctx, userID, rating)
}

// SetVerified выставляет признак верификации поставщика (админская операция).
func (s *VendorService) SetVerified(ctx context.Context, userID uuid.UUID, verified bool) error {
	return s.repo.SetVerified(ctx, userID, verified)
}
