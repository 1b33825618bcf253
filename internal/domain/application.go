package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidStatusTransition = errors.New("application is no longer pending")
	ErrPaymentNotApplicable    = errors.New("payment status can only change on approved applications")
)

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type Application struct {
	ID            string            `json:"id"`
	UserID        uint              `json:"user_id"`
	Sport         string            `json:"sport"`
	Status        ApplicationStatus `json:"status"`
	PaymentStatus *PaymentStatus    `json:"payment_status,omitempty"`
	MembershipFee int64             `json:"membership_fee"`
	SubmittedAt   time.Time         `json:"submitted_at"`
	Data          FormData          `json:"data"`
}

func (a *Application) Approve() error {
	if a.Status != StatusPending {
		return ErrInvalidStatusTransition
	}
	a.Status = StatusApproved
	if a.PaymentStatus == nil {
		pending := PaymentPending
		a.PaymentStatus = &pending
	}

	return nil
}

func (a *Application) Reject() error {
	if a.Status != StatusPending {
		return ErrInvalidStatusTransition
	}
	a.Status = StatusRejected

	return nil
}

func (a *Application) SetPaymentStatus(status PaymentStatus) error {
	if a.Status != StatusApproved {
		return ErrPaymentNotApplicable
	}
	a.PaymentStatus = &status

	return nil
}

// PaymentDue reports an approved application still waiting for payment.
func (a Application) PaymentDue() bool {
	return a.Status == StatusApproved && a.PaymentStatus != nil && *a.PaymentStatus == PaymentPending
}

// FeeQuote is shown to an administrator before approving.
type FeeQuote struct {
	ApplicationID  string         `json:"application_id"`
	Sport          string         `json:"sport"`
	MembershipType MembershipType `json:"membership_type"`
	Fee            int64          `json:"fee"`
	CurrentFee     int64          `json:"current_fee"`
}
