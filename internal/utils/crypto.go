package utils

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/base64"
)

// VoucherCodePrefix marks codes issued by this service.
const VoucherCodePrefix = "WF-"

var voucherEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateSecureCode returns 32 random bytes, URL-safe base64 encoded.
func GenerateSecureCode() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func MustGenerateSecureCode() string {
	code, err := GenerateSecureCode()
	if err != nil {
		panic("failed to generate secure code: " + err.Error())
	}
	return code
}

// GenerateVoucherCode returns a short human-readable code, e.g. WF-MZXW6YTBOI.
func GenerateVoucherCode() (string, error) {
	b := make([]byte, 10)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return VoucherCodePrefix + voucherEncoding.EncodeToString(b)[:12], nil
}
