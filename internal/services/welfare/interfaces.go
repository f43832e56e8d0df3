package welfare

import (
	"context"

	"welfare/internal/ledger"
	"welfare/internal/models"
)

// Service defines the welfare operations exposed to the HTTP layer.
type Service interface {
	// Ledger operations
	DistributePoints(ctx context.Context, sess ledger.Session, dists []ledger.Distribution) (*ledger.DistributionResult, error)
	BookService(ctx context.Context, sess ledger.Session, employeeID, serviceID string) (*models.Transaction, error)
	GenerateQR(ctx context.Context, sess ledger.Session, employeeID, serviceID string) (*IssuedVoucher, error)
	ValidateQR(ctx context.Context, sess ledger.Session, payload, partnerID string) (*models.Transaction, error)

	// Catalog
	ListServices(ctx context.Context, filter ledger.ServiceFilter) ([]models.Service, error)
	GetService(ctx context.Context, serviceID string) (*models.Service, error)
	PutService(ctx context.Context, sess ledger.Session, svc models.Service) (*models.Service, error)

	// Queries
	GetCompany(ctx context.Context, sess ledger.Session, companyID string) (*models.Company, error)
	GetEmployee(ctx context.Context, sess ledger.Session, employeeID string) (*models.Employee, error)
	EmployeeTransactions(ctx context.Context, sess ledger.Session, employeeID string) ([]models.Transaction, error)
	PartnerTransactions(ctx context.Context, sess ledger.Session, partnerID string) ([]models.Transaction, error)
}

// Notifier is told whenever the ledger changed.
type Notifier interface {
	MarkDirty()
}

// IssuedVoucher is a generated voucher plus the string to render as QR.
type IssuedVoucher struct {
	Voucher models.Voucher `json:"voucher"`
	Payload string         `json:"payload"`
}
