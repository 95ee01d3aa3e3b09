package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sokohub/rfq-backend/internal/models"
)

// ErrVendorProfileNotFound возвращается, если карточки поставщика нет.
var ErrVendorProfileNotFound = errors.New("vendor profile not found")

// VendorRepository отвечает за карточки поставщиков.
type VendorRepository struct {
	db *sqlx.DB
}

// NewVendorRepository создаёт новый экземпляр.
func NewVendorRepository(db *sqlx.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// GetByUserID возвращает карточку поставщика.
func (r *VendorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.VendorProfile, error) {
	var profile models.VendorProfile
	query := `SELECT * FROM vendor_profiles WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVendorProfileNotFound
		}
		return nil, fmt.Errorf("vendor repository: get by user id %w", err)
	}
	return &profile, nil
}

// Upsert создаёт или обновляет карточку поставщика.
func (r *VendorRepository) Upsert(ctx context.Context, profile *models.VendorProfile) error {
	query := `
		INSERT INTO vendor_profiles (user_id, display_name, phone, contact_email, rating,
		                             verified, response_time_hours, location, photo_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			phone = EXCLUDED.phone,
			contact_email = EXCLUDED.contact_email,
			response_time_hours = EXCLUDED.response_time_hours,
			location = EXCLUDED.location,
			photo_id = EXCLUDED.photo_id,
			updated_at = NOW()
		RETURNING updated_at
	`
	// rating и verified намеренно не перезаписываются из upsert:
	// их выставляет платформа, а не сам поставщик.
	if err := r.db.QueryRowxContext(ctx, query,
		profile.UserID, profile.DisplayName, profile.Phone, profile.ContactEmail,
		profile.Rating, profile.Verified, profile.ResponseTimeHours,
		profile.Location, profile.PhotoID,
	).Scan(&profile.UpdatedAt); err != nil {
		return fmt.Errorf("vendor repository: upsert %w", err)
	}
	return nil
}

// SetRating обновляет рейтинг поставщика (платформенная операция).
func (r *VendorRepository) SetRating(ctx context.Context, userID uuid.UUID, rating float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE vendor_profiles SET rating = $2, updated_at = NOW() WHERE user_id = $1`, userID, rating)
	if err != nil {
		return fmt.Errorf("vendor repository: set rating %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrVendorProfileNotFound
	}
	return nil
}

// SetVerified обновляет флаг верификации (платформенная операция).
func (r *VendorRepository) SetVerified(ctx context.Context, userID uuid.UUID, verified bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE vendor_profiles SET verified = $2, updated_at = NOW() WHERE user_id = $1`, userID, verified)
	if err != nil {
		return fmt.Errorf("vendor repository: set verified %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrVendorProfileNotFound
	}
	return nil
}
