package models

import (
	"time"

	"github.com/google/uuid"
)

// User описывает учётную запись пользователя платформы.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         string     `db:"role" json:"role"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Session представляет сохранённую сессию пользователя.
type Session struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	RefreshToken string    `db:"refresh_token" json:"refresh_token"`
	UserAgent    *string   `db:"user_agent" json:"user_agent,omitempty"`
	IPAddress    *string   `db:"ip_address" json:"ip_address,omitempty"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// VendorProfile — публичная карточка поставщика, которой обогащаются
// котировки на странице сравнения.
type VendorProfile struct {
	UserID            uuid.UUID  `db:"user_id" json:"user_id"`
	DisplayName       string     `db:"display_name" json:"display_name"`
	Phone             *string    `db:"phone" json:"phone,omitempty"`
	ContactEmail      *string    `db:"contact_email" json:"contact_email,omitempty"`
	Rating            *float64   `db:"rating" json:"rating,omitempty"`
	Verified          bool       `db:"verified" json:"verified"`
	ResponseTimeHours *float64   `db:"response_time_hours" json:"response_time_hours,omitempty"`
	Location          *string    `db:"location" json:"location,omitempty"`
	PhotoID           *uuid.UUID `db:"photo_id" json:"photo_id,omitempty"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}
