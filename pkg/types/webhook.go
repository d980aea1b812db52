package types

// PaymentEvent is the event discriminator carried by the payment provider's
// webhook envelope.
type PaymentEvent string

const (
	PaymentEventApproved              PaymentEvent = "payment.approved"
	PaymentEventRejected              PaymentEvent = "payment.rejected"
	PaymentEventSubscriptionCreated   PaymentEvent = "subscription.created"
	PaymentEventSubscriptionRenewed   PaymentEvent = "subscription.renewed"
	PaymentEventSubscriptionCancelled PaymentEvent = "subscription.cancelled"
	PaymentEventSubscriptionExpired   PaymentEvent = "subscription.expired"
)

// PlanInterval is the billing interval reported for recurring subscriptions.
type PlanInterval string

const (
	PlanIntervalMonth PlanInterval = "month"
	PlanIntervalYear  PlanInterval = "year"
)

// WebhookEnvelope is the wire format posted by the payment provider.
type WebhookEnvelope struct {
	Event PaymentEvent `json:"event"`
	Data  WebhookData  `json:"data"`
}

type WebhookData struct {
	ID           string               `json:"id"`
	Customer     WebhookCustomer      `json:"customer"`
	Status       string               `json:"status"`
	Amount       float64              `json:"amount"`
	Subscription *WebhookSubscription `json:"subscription,omitempty"`
}

type WebhookCustomer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type WebhookSubscription struct {
	ID     string      `json:"id"`
	Status string      `json:"status"`
	Plan   WebhookPlan `json:"plan"`
}

type WebhookPlan struct {
	Interval PlanInterval `json:"interval"`
}
