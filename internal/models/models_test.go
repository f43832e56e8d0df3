package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoucherEncodeDecode(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	v := &Voucher{
		Code:           "abc",
		TransactionID:  "txn_1",
		EmployeeID:     "emp_1",
		ServiceID:      "srv_1",
		PartnerID:      "prt_1",
		PointsToRedeem: 200,
		CreatedAt:      created,
		ExpiresAt:      created.Add(VoucherTTL),
	}

	payload, err := v.Encode()
	require.NoError(t, err)

	decoded, err := DecodeVoucher(payload)
	require.NoError(t, err)
	assert.Equal(t, "txn_1", decoded.TransactionID)
	assert.True(t, decoded.ExpiresAt.Equal(v.ExpiresAt))

	_, err = DecodeVoucher("%%%")
	assert.Error(t, err)
}

func TestVoucherExpiredAt(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	v := &Voucher{CreatedAt: created, ExpiresAt: created.Add(VoucherTTL)}

	assert.False(t, v.ExpiredAt(created.Add(15*time.Minute)))
	assert.True(t, v.ExpiredAt(created.Add(16*time.Minute)))
}

func TestCompanyRebalance(t *testing.T) {
	c := &Company{TotalCredits: 20000, UsedCredits: 8500}
	c.Rebalance()
	assert.Equal(t, int64(11500), c.AvailableCredits)
}

func TestServiceSavings(t *testing.T) {
	s := &Service{
		OriginalPrice:   decimal.RequireFromString("80.00"),
		DiscountedPrice: decimal.RequireFromString("65.50"),
	}
	assert.True(t, s.Savings().Equal(decimal.RequireFromString("14.50")))

	s.DiscountedPrice = decimal.Zero
	assert.True(t, s.Savings().IsZero())
}

func TestSessionClaimsHasRole(t *testing.T) {
	c := &SessionClaims{Role: RolePartner}
	assert.True(t, c.HasRole(RoleEmployee, RolePartner))
	assert.False(t, c.HasRole(RoleCompanyAdmin))
}
