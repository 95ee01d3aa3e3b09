package valueobject

import "github.com/sokohub/rfq-backend/internal/pkg/apperror"

type RFQStatus string

const (
	RFQStatusOpen    RFQStatus = "open"
	RFQStatusClosed  RFQStatus = "closed"
	RFQStatusAwarded RFQStatus = "awarded"
)

func (s RFQStatus) IsValid() bool {
	switch s {
	case RFQStatusOpen, RFQStatusClosed, RFQStatusAwarded:
		return true
	}
	return false
}

func (s RFQStatus) CanTransitionTo(newStatus RFQStatus) bool {
	transitions := map[RFQStatus][]RFQStatus{
		RFQStatusOpen:    {RFQStatusClosed, RFQStatusAwarded},
		RFQStatusClosed:  {RFQStatusAwarded},
		RFQStatusAwarded: {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == newStatus {
			return true
		}
	}
	return false
}

func NewRFQStatus(status string) (RFQStatus, error) {
	s := RFQStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус заявки")
	}
	return s, nil
}

type RFQVisibility string

const (
	RFQVisibilityPrivate RFQVisibility = "private"
	RFQVisibilityPublic  RFQVisibility = "public"
)

func (v RFQVisibility) IsValid() bool {
	return v == RFQVisibilityPrivate || v == RFQVisibilityPublic
}

func NewRFQVisibility(visibility string) (RFQVisibility, error) {
	v := RFQVisibility(visibility)
	if !v.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректная видимость заявки")
	}
	return v, nil
}

type QuoteStatus string

const (
	QuoteStatusSubmitted QuoteStatus = "submitted"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusRejected  QuoteStatus = "rejected"
)

func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusSubmitted, QuoteStatusAccepted, QuoteStatusRejected:
		return true
	}
	return false
}

func (s QuoteStatus) CanTransitionTo(newStatus QuoteStatus) bool {
	if s != QuoteStatusSubmitted {
		return false
	}
	return newStatus == QuoteStatusAccepted || newStatus == QuoteStatusRejected
}

func NewQuoteStatus(status string) (QuoteStatus, error) {
	s := QuoteStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус котировки")
	}
	return s, nil
}
