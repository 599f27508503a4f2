package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

func TestNewPayment(t *testing.T) {
	tenantID := uuid.New()
	projectID := uuid.New()
	accountID := uuid.New()
	date := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	t.Run("valid payment", func(t *testing.T) {
		p, err := NewPayment(tenantID, projectID, accountID, decimal.NewFromInt(2500), PaymentMethodBankTransfer, date, "first installment")
		require.NoError(t, err)
		assert.True(t, p.IsActive())
		assert.Len(t, p.GetDomainEvents(), 1)
	})

	t.Run("missing project rejected", func(t *testing.T) {
		_, err := NewPayment(tenantID, uuid.Nil, accountID, decimal.NewFromInt(100), PaymentMethodCash, date, "")
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "MISSING_PROJECT", domainErr.Code)
	})

	t.Run("unknown method rejected", func(t *testing.T) {
		_, err := NewPayment(tenantID, projectID, accountID, decimal.NewFromInt(100), PaymentMethod("BARTER"), date, "")
		require.Error(t, err)
	})

	t.Run("date before inception rejected", func(t *testing.T) {
		_, err := NewPayment(tenantID, projectID, accountID, decimal.NewFromInt(100), PaymentMethodCash,
			time.Date(1998, 1, 1, 0, 0, 0, 0, time.UTC), "")
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_DATE", domainErr.Code)
	})
}

func TestPaymentMarkReversed(t *testing.T) {
	p, err := NewPayment(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(300), PaymentMethodMobileMoney,
		time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)

	require.NoError(t, p.MarkReversed(time.Now()))
	assert.False(t, p.IsActive())
	require.Error(t, p.MarkReversed(time.Now()), "second reversal must fail")
}
