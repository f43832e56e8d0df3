package welfare

import (
	"context"
	"fmt"
	"time"

	domainErrors "welfare/internal/errors"
	"welfare/internal/ledger"
	"welfare/internal/models"
	"welfare/internal/repositories"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	opDistribute   = "distribute_points"
	opBook         = "book_service"
	opGenerateQR   = "generate_qr"
	opValidateQR   = "validate_qr"
	opPutService   = "put_service"
	resultSuccess  = "success"
	resultRejected = "rejected"
)

type service struct {
	store    *ledger.Store
	recorder repositories.Recorder
	notifier Notifier
	metrics  MetricsCollector
}

// NewService creates a new welfare service. Only store is required.
func NewService(
	store *ledger.Store,
	recorder repositories.Recorder,
	notifier Notifier,
	metrics MetricsCollector,
) Service {
	if store == nil {
		panic("store is required")
	}
	if recorder == nil {
		recorder = repositories.NoopRecorder{}
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		store:    store,
		recorder: recorder,
		notifier: notifier,
		metrics:  metrics,
	}
}

func (s *service) DistributePoints(ctx context.Context, sess ledger.Session, dists []ledger.Distribution) (*ledger.DistributionResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(opDistribute, time.Since(start)) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.store.DistributePoints(sess, dists)
	if err != nil {
		return nil, s.reject(opDistribute, sess, err)
	}
	s.accept(opDistribute, result.Total)

	if err := s.recorder.RecordCompany(ctx, &result.Company); err != nil {
		s.recordFailed(opDistribute, err)
	}
	if err := s.recorder.RecordEmployees(ctx, result.Employees...); err != nil {
		s.recordFailed(opDistribute, err)
	}

	log.WithFields(log.Fields{
		"company_id": result.Company.ID,
		"employees":  len(result.Employees),
		"points":     result.Total,
	}).Info("points distributed")
	return result, nil
}

func (s *service) BookService(ctx context.Context, sess ledger.Session, employeeID, serviceID string) (*models.Transaction, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(opBook, time.Since(start)) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tx, err := s.store.BookService(sess, employeeID, serviceID)
	if err != nil {
		return nil, s.reject(opBook, sess, err)
	}
	s.accept(opBook, tx.PointsUsed)

	// Runs outside the store lock, so this pending row can land after a
	// concurrent redemption's completed row. The snapshot stays authoritative.
	if emp, err := s.store.Employee(tx.EmployeeID); err == nil {
		if err := s.recorder.RecordEmployees(ctx, *emp); err != nil {
			s.recordFailed(opBook, err)
		}
	}
	if err := s.recorder.RecordTransaction(ctx, tx); err != nil {
		s.recordFailed(opBook, err)
	}

	log.WithFields(log.Fields{
		"transaction_id": tx.ID,
		"employee_id":    tx.EmployeeID,
		"service_id":     tx.ServiceID,
		"points":         tx.PointsUsed,
	}).Info("service booked")
	return tx, nil
}

func (s *service) GenerateQR(ctx context.Context, sess ledger.Session, employeeID, serviceID string) (*IssuedVoucher, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(opGenerateQR, time.Since(start)) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, err := s.store.GenerateQR(sess, employeeID, serviceID)
	if err != nil {
		return nil, s.reject(opGenerateQR, sess, err)
	}
	payload, err := v.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode voucher: %w", err)
	}
	s.accept(opGenerateQR, 0)

	log.WithFields(log.Fields{
		"transaction_id": v.TransactionID,
		"expires_at":     v.ExpiresAt,
	}).Debug("voucher issued")
	return &IssuedVoucher{Voucher: *v, Payload: payload}, nil
}

func (s *service) ValidateQR(ctx context.Context, sess ledger.Session, payload, partnerID string) (*models.Transaction, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(opValidateQR, time.Since(start)) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, err := models.DecodeVoucher(payload)
	if err != nil {
		return nil, s.reject(opValidateQR, sess, fmt.Errorf("decode payload: %v: %w", err, domainErrors.ErrInvalidVoucher))
	}

	tx, err := s.store.ValidateQR(sess, *v, partnerID)
	if err != nil {
		return nil, s.reject(opValidateQR, sess, err)
	}
	s.accept(opValidateQR, tx.PointsUsed)

	if err := s.recorder.RecordTransaction(ctx, tx); err != nil {
		s.recordFailed(opValidateQR, err)
	}

	log.WithFields(log.Fields{
		"transaction_id": tx.ID,
		"partner_id":     partnerID,
	}).Info("voucher redeemed")
	return tx, nil
}

func (s *service) ListServices(ctx context.Context, filter ledger.ServiceFilter) ([]models.Service, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.Services(filter), nil
}

func (s *service) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.Service(serviceID)
}

// PutService lets a partner add or edit its own catalog entries.
func (s *service) PutService(ctx context.Context, sess ledger.Session, svc models.Service) (*models.Service, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sess.Role != models.RolePartner || sess.PartnerID != svc.PartnerID {
		return nil, s.reject(opPutService, sess, fmt.Errorf("edit services of %s: %w", svc.PartnerID, domainErrors.ErrForbidden))
	}
	if svc.ID == "" {
		svc.ID = "srv_" + uuid.NewString()
	} else if existing, err := s.store.Service(svc.ID); err == nil && existing.PartnerID != sess.PartnerID {
		return nil, s.reject(opPutService, sess, fmt.Errorf("service %s: %w", svc.ID, domainErrors.ErrForbidden))
	}

	if err := s.store.PutService(svc); err != nil {
		return nil, s.reject(opPutService, sess, err)
	}
	s.accept(opPutService, 0)

	saved, err := s.store.Service(svc.ID)
	if err != nil {
		return nil, err
	}
	if err := s.recorder.RecordService(ctx, saved); err != nil {
		s.recordFailed(opPutService, err)
	}
	return saved, nil
}

func (s *service) GetCompany(ctx context.Context, sess ledger.Session, companyID string) (*models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sess.Role != models.RoleCompanyAdmin || sess.CompanyID != companyID {
		return nil, fmt.Errorf("company %s: %w", companyID, domainErrors.ErrForbidden)
	}
	return s.store.Company(companyID)
}

func (s *service) GetEmployee(ctx context.Context, sess ledger.Session, employeeID string) (*models.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.visibleEmployee(sess, employeeID)
}

func (s *service) EmployeeTransactions(ctx context.Context, sess ledger.Session, employeeID string) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.visibleEmployee(sess, employeeID); err != nil {
		return nil, err
	}
	return s.store.TransactionsByEmployee(employeeID), nil
}

func (s *service) PartnerTransactions(ctx context.Context, sess ledger.Session, partnerID string) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sess.Role != models.RolePartner || sess.PartnerID != partnerID {
		return nil, fmt.Errorf("partner %s: %w", partnerID, domainErrors.ErrForbidden)
	}
	if _, err := s.store.Partner(partnerID); err != nil {
		return nil, err
	}
	return s.store.TransactionsByPartner(partnerID), nil
}

// visibleEmployee returns the employee when sess is that employee or an
// admin of the employee's company.
func (s *service) visibleEmployee(sess ledger.Session, employeeID string) (*models.Employee, error) {
	switch sess.Role {
	case models.RoleEmployee:
		if sess.EmployeeID != employeeID {
			return nil, fmt.Errorf("employee %s: %w", employeeID, domainErrors.ErrForbidden)
		}
	case models.RoleCompanyAdmin:
	default:
		return nil, fmt.Errorf("employee %s: %w", employeeID, domainErrors.ErrForbidden)
	}

	emp, err := s.store.Employee(employeeID)
	if err != nil {
		return nil, err
	}
	if sess.Role == models.RoleCompanyAdmin && emp.CompanyID != sess.CompanyID {
		return nil, fmt.Errorf("employee %s: %w", employeeID, domainErrors.ErrForbidden)
	}
	return emp, nil
}

func (s *service) accept(op string, points int64) {
	s.metrics.RecordOperationResult(op, resultSuccess)
	if points > 0 {
		s.metrics.RecordPointsMoved(op, points)
	}
	s.notifier.MarkDirty()
}

func (s *service) reject(op string, sess ledger.Session, err error) error {
	code := domainErrors.CodeOf(err)
	if code == "" {
		code = "internal"
	}
	s.metrics.RecordOperationResult(op, resultRejected)
	s.metrics.RecordError(op, code)
	log.WithError(err).WithFields(log.Fields{
		"op":    op,
		"actor": sess.ActorID,
		"role":  sess.Role,
		"code":  code,
	}).Warn("welfare operation rejected")
	return err
}

func (s *service) recordFailed(op string, err error) {
	s.metrics.RecordError(op, "record_failed")
	log.WithError(err).WithField("op", op).Warn("write-through to database failed")
}
