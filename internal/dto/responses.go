package dto

import (
	"github.com/sokohub/rfq-backend/internal/models"
	"github.com/sokohub/rfq-backend/internal/service"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a standardized success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AuthResponse represents the registration/login response
type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}

// NewAuthResponse creates an AuthResponse from the service result
func NewAuthResponse(res *service.AuthResult) *AuthResponse {
	return &AuthResponse{
		User:         res.User,
		AccessToken:  res.TokenPair.AccessToken,
		RefreshToken: res.TokenPair.RefreshToken,
		ExpiresIn:    int64(res.TokenPair.ExpiresIn.Seconds()),
	}
}

// ComparisonResponse represents the quote comparison page payload
type ComparisonResponse struct {
	RFQ    *models.RFQ             `json:"rfq"`
	Viewer string                  `json:"viewer"`
	Quotes []service.EnrichedQuote `json:"quotes"`
	Stats  *models.QuoteStats      `json:"stats,omitempty"`
}

// NewComparisonResponse creates a ComparisonResponse from the service result
func NewComparisonResponse(cmp *service.Comparison) *ComparisonResponse {
	return &ComparisonResponse{
		RFQ:    cmp.RFQ,
		Viewer: cmp.Viewer.String(),
		Quotes: cmp.Quotes,
		Stats:  cmp.Stats,
	}
}

// RFQListResponse represents a paginated list of RFQs
type RFQListResponse struct {
	Items  []models.RFQ `json:"items"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}
