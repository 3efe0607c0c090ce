// Package payment builds VietQR payment-code image URLs. The image itself is
// rendered by img.vietqr.io; this side only formats the request.
package payment

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrAccountNotConfigured means BANK_ACCOUNT is unset. Callers treat it as a
// degraded outcome, not a flow failure.
var ErrAccountNotConfigured = errors.New("bank account not configured")

type VietQR struct {
	BankCode    string
	BankAccount string
}

func NewVietQR(bankCode, bankAccount string) *VietQR {
	return &VietQR{BankCode: bankCode, BankAccount: bankAccount}
}

// PaymentCode returns the QR image URL for a transfer of amount đồng. The
// transfer note carries the customer phone and service name.
func (v *VietQR) PaymentCode(amount int64, phone, service string) (string, error) {
	if v.BankAccount == "" {
		return "", ErrAccountNotConfigured
	}
	note := url.QueryEscape(fmt.Sprintf("%s - %s", phone, service))
	return fmt.Sprintf(
		"https://img.vietqr.io/image/%s-%s-compact2.png?amount=%d&addInfo=%s",
		v.BankCode, v.BankAccount, amount, note,
	), nil
}
