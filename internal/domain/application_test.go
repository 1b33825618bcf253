package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentPtr(p PaymentStatus) *PaymentStatus {
	return &p
}

func TestApplication_Approve(t *testing.T) {
	t.Run("pending without payment status", func(t *testing.T) {
		app := Application{Status: StatusPending}

		require.NoError(t, app.Approve())
		assert.Equal(t, StatusApproved, app.Status)
		require.NotNil(t, app.PaymentStatus)
		assert.Equal(t, PaymentPending, *app.PaymentStatus)
	})

	t.Run("keeps existing payment status", func(t *testing.T) {
		app := Application{Status: StatusPending, PaymentStatus: paymentPtr(PaymentPaid)}

		require.NoError(t, app.Approve())
		assert.Equal(t, PaymentPaid, *app.PaymentStatus)
	})

	t.Run("not pending", func(t *testing.T) {
		app := Application{Status: StatusRejected}

		assert.ErrorIs(t, app.Approve(), ErrInvalidStatusTransition)
		assert.Equal(t, StatusRejected, app.Status)
	})
}

func TestApplication_Reject(t *testing.T) {
	app := Application{Status: StatusPending, PaymentStatus: paymentPtr(PaymentPending)}

	require.NoError(t, app.Reject())
	assert.Equal(t, StatusRejected, app.Status)
	assert.Equal(t, PaymentPending, *app.PaymentStatus)

	assert.ErrorIs(t, app.Reject(), ErrInvalidStatusTransition)
}

func TestApplication_SetPaymentStatus(t *testing.T) {
	app := Application{Status: StatusPending}
	assert.ErrorIs(t, app.SetPaymentStatus(PaymentPaid), ErrPaymentNotApplicable)

	require.NoError(t, app.Approve())
	require.NoError(t, app.SetPaymentStatus(PaymentPaid))
	assert.Equal(t, PaymentPaid, *app.PaymentStatus)
	assert.False(t, app.PaymentDue())
}
