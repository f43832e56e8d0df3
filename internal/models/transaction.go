package models

import (
	"time"
)

// Transaction statuses. Only pending and completed are produced today;
// cancelled and expired are part of the stored schema.
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusCancelled = "cancelled"
	TransactionStatusExpired   = "expired"
)

// Transaction records an employee booking a partner service.
type Transaction struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	EmployeeID  string     `gorm:"not null;index;size:64" json:"employee_id"`
	ServiceID   string     `gorm:"not null;index;size:64" json:"service_id"`
	PartnerID   string     `gorm:"not null;index;size:64" json:"partner_id"`
	CompanyID   string     `gorm:"not null;index;size:64" json:"company_id"`
	PointsUsed  int64      `gorm:"not null" json:"points_used"`
	Status      string     `gorm:"not null;default:'pending'" json:"status"`
	VoucherCode string     `gorm:"index" json:"voucher_code"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	RedeemedAt  *time.Time `json:"redeemed_at,omitempty"`
}

// IsPending reports whether the transaction still awaits voucher validation.
func (t *Transaction) IsPending() bool {
	return t.Status == TransactionStatusPending
}
