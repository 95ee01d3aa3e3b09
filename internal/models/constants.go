package models

// Роли пользователей платформы.
const (
	RoleBuyer  = "buyer"
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

// Видимость RFQ: приватные заявки видит только автор,
// публичные открыты для откликов любых поставщиков.
const (
	RFQVisibilityPrivate = "private"
	RFQVisibilityPublic  = "public"
)

// Статусы RFQ.
const (
	RFQStatusOpen    = "open"
	RFQStatusClosed  = "closed"
	RFQStatusAwarded = "awarded"
)

// Статусы котировки. Переходы выполняет только автор RFQ:
// submitted -> accepted | rejected. Принятие одной котировки
// не отменяет остальные.
const (
	QuoteStatusSubmitted = "submitted"
	QuoteStatusAccepted  = "accepted"
	QuoteStatusRejected  = "rejected"
)

// Статус проекта, созданного по назначенной котировке.
const (
	ProjectStatusActive = "active"
)

// События уведомлений, которые уходят в WebSocket и сохраняются в БД.
const (
	EventQuoteSubmitted = "quote_submitted"
	EventQuoteAccepted  = "quote_accepted"
	EventQuoteRejected  = "quote_rejected"
	EventJobAssigned    = "job_assigned"
)

// DefaultCurrency — валюта котировок по умолчанию (кенийский шиллинг).
const DefaultCurrency = "KES"
