package models

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// VoucherTTL is how long a generated voucher stays redeemable.
const VoucherTTL = 15 * time.Minute

// Voucher is the QR payload an employee presents to a partner.
type Voucher struct {
	Code           string    `json:"code"`
	TransactionID  string    `json:"transaction_id"`
	EmployeeID     string    `json:"employee_id"`
	ServiceID      string    `json:"service_id"`
	PartnerID      string    `json:"partner_id"`
	PointsToRedeem int64     `json:"points_to_redeem"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// ExpiredAt reports whether the voucher is no longer redeemable at now.
func (v *Voucher) ExpiredAt(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// Encode renders the voucher as the string embedded in the QR image.
func (v *Voucher) Encode() (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeVoucher parses a QR payload produced by Encode.
func DecodeVoucher(payload string) (*Voucher, error) {
	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, err
	}
	var v Voucher
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
