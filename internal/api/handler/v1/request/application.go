package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/blwclub/membership-portal/internal/domain"
)

type ApproveRequest struct {
	ConfirmedFee int64 `json:"confirmed_fee"`
}

func (req *ApproveRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ConfirmedFee, validation.Required.Error("the quoted fee must be confirmed"), validation.Min(int64(1))),
	)
}

type PaymentRequest struct {
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
}

func (req *PaymentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PaymentStatus, validation.Required,
			validation.In(domain.PaymentPending, domain.PaymentPaid, domain.PaymentFailed)),
	)
}

type AdminFilterQuery struct {
	Status string `form:"status"`
	Sport  string `form:"sport"`
	Q      string `form:"q"`
	Active string `form:"active"`
}

func (q *AdminFilterQuery) Validate() error {
	return validation.ValidateStruct(
		q,
		validation.Field(&q.Status, validation.In("all", "pending", "approved", "rejected")),
		validation.Field(&q.Active, validation.In("all", "pending", "approved", "payment-due")),
		validation.Field(&q.Q, validation.Length(0, 100)),
	)
}

func (q *AdminFilterQuery) ToDomain() domain.ApplicationFilter {
	return domain.ApplicationFilter{
		Status: domain.ApplicationStatus(q.Status),
		Sport:  q.Sport,
		Search: q.Q,
		Active: domain.QuickFilter(q.Active),
	}
}

type MemberFilterQuery struct {
	Active string `form:"active"`
}

func (q *MemberFilterQuery) Validate() error {
	return validation.ValidateStruct(
		q,
		validation.Field(&q.Active, validation.In("all", "pending", "approved", "payment-due")),
	)
}
