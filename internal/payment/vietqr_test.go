package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentCode(t *testing.T) {
	v := NewVietQR("MB", "0123456789")
	url, err := v.PaymentCode(50000, "0901234567", "Cắt tóc")
	require.NoError(t, err)
	assert.Contains(t, url, "https://img.vietqr.io/image/MB-0123456789-compact2.png")
	assert.Contains(t, url, "amount=50000")
	assert.Contains(t, url, "addInfo=0901234567")
}

func TestPaymentCodeRequiresAccount(t *testing.T) {
	v := NewVietQR("MB", "")
	_, err := v.PaymentCode(1000, "0901234567", "Gội đầu")
	assert.ErrorIs(t, err, ErrAccountNotConfigured)
}
