package request

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blwclub/membership-portal/internal/domain"
)

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{"valid", RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "secret1", ConfirmPassword: "secret1"}, false},
		{"bad email", RegisterRequest{Name: "Jane", Email: "jane", Password: "secret1", ConfirmPassword: "secret1"}, true},
		{"short password", RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "abc", ConfirmPassword: "abc"}, true},
		{"mismatch", RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "secret1", ConfirmPassword: "secret2"}, true},
		{"missing name", RegisterRequest{Email: "jane@example.com", Password: "secret1", ConfirmPassword: "secret1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProfileRequest_Validate(t *testing.T) {
	req := ProfileRequest{Name: "John Doe", Mobile: "98765 43210", DateOfBirth: "1990-01-01"}
	assert.NoError(t, req.Validate())

	req.Mobile = "12345"
	assert.Error(t, req.Validate())

	req.Mobile = ""
	req.DateOfBirth = "01/01/1990"
	assert.Error(t, req.Validate())
}

func TestAdminFilterQuery(t *testing.T) {
	q := AdminFilterQuery{Status: "pending", Sport: "Golf", Q: "john", Active: "payment-due"}
	assert.NoError(t, q.Validate())
	assert.Equal(t, domain.ApplicationFilter{
		Status: domain.StatusPending,
		Sport:  "Golf",
		Search: "john",
		Active: domain.QuickPaymentDue,
	}, q.ToDomain())

	q.Status = "archived"
	assert.Error(t, q.Validate())
}

func TestPaymentRequest_Validate(t *testing.T) {
	assert.NoError(t, (&PaymentRequest{PaymentStatus: domain.PaymentPaid}).Validate())
	assert.Error(t, (&PaymentRequest{PaymentStatus: "refunded"}).Validate())
	assert.Error(t, (&ApproveRequest{}).Validate())
}
