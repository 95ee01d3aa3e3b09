package dto

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the token refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateRFQRequest represents the request to create an RFQ
type CreateRFQRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Category    *string  `json:"category"`
	Visibility  string   `json:"visibility" binding:"required"`
	BudgetHint  *float64 `json:"budget_hint"`
	DeadlineAt  *string  `json:"deadline_at"`
	Attachments []string `json:"attachment_ids"`
}

// UpdateRFQRequest represents the request to update an RFQ
type UpdateRFQRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Category    *string  `json:"category"`
	Visibility  string   `json:"visibility" binding:"required"`
	BudgetHint  *float64 `json:"budget_hint"`
	DeadlineAt  *string  `json:"deadline_at"`
}

// SubmitQuoteRequest represents a vendor's quote on an RFQ
type SubmitQuoteRequest struct {
	Amount   float64 `json:"amount" binding:"required"`
	Currency string  `json:"currency"`
	Timeline string  `json:"timeline" binding:"required"`
	Message  *string `json:"message"`
}

// UpdateQuoteRequest represents an edit to a vendor's own submitted quote
type UpdateQuoteRequest struct {
	Amount   float64 `json:"amount" binding:"required"`
	Currency string  `json:"currency"`
	Timeline string  `json:"timeline" binding:"required"`
	Message  *string `json:"message"`
}

// AssignJobRequest represents the request to assign a job from an accepted quote
type AssignJobRequest struct {
	StartDate string  `json:"start_date" binding:"required"`
	Notes     *string `json:"notes"`
}

// UpdateVendorProfileRequest represents the vendor profile update payload
type UpdateVendorProfileRequest struct {
	DisplayName       string   `json:"display_name" binding:"required"`
	Phone             *string  `json:"phone"`
	ContactEmail      *string  `json:"contact_email"`
	ResponseTimeHours *float64 `json:"response_time_hours"`
	Location          *string  `json:"location"`
	PhotoID           *string  `json:"photo_id"`
}

// SetVendorRatingRequest represents the admin request to set a vendor rating
type SetVendorRatingRequest struct {
	Rating float64 `json:"rating" binding:"required"`
}

// SetVendorVerifiedRequest represents the admin request to set verification
type SetVendorVerifiedRequest struct {
	Verified bool `json:"verified"`
}

// SeedRequest represents the request to generate test data
type SeedRequest struct {
	NumUsers int `json:"num_users"`
	NumRFQs  int `json:"num_rfqs"`
}
