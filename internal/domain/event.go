package domain

import "time"

type EventType string

const (
	EventSubmitted     EventType = "application.submitted"
	EventApproved      EventType = "application.approved"
	EventRejected      EventType = "application.rejected"
	EventPaymentUpdate EventType = "application.payment_updated"
)

// ApplicationEvent is pushed to connected admin consoles whenever the
// application store changes.
type ApplicationEvent struct {
	Type          EventType         `json:"type"`
	ApplicationID string            `json:"application_id"`
	UserID        uint              `json:"user_id"`
	Sport         string            `json:"sport"`
	Status        ApplicationStatus `json:"status"`
	PaymentStatus *PaymentStatus    `json:"payment_status,omitempty"`
	ActorID       uint              `json:"actor_id"`
	Timestamp     time.Time         `json:"timestamp"`
}

func NewApplicationEvent(t EventType, app Application, actorID uint) ApplicationEvent {
	return ApplicationEvent{
		Type:          t,
		ApplicationID: app.ID,
		UserID:        app.UserID,
		Sport:         app.Sport,
		Status:        app.Status,
		PaymentStatus: app.PaymentStatus,
		ActorID:       actorID,
		Timestamp:     time.Now().UTC(),
	}
}
