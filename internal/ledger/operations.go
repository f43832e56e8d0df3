package ledger

import (
	"fmt"

	domainErrors "welfare/internal/errors"
	"welfare/internal/models"
)

// Distribution requests points for a single employee.
type Distribution struct {
	EmployeeID string `json:"employee_id"`
	Points     int64  `json:"points"`
}

// DistributionResult summarises an applied distribution.
type DistributionResult struct {
	Company   models.Company    `json:"company"`
	Employees []models.Employee `json:"employees"`
	Total     int64             `json:"total"`
}

// DistributePoints moves credits from the session's company to its employees.
// Every check runs before the first mutation, so a failed call leaves the
// store untouched.
func (s *Store) DistributePoints(sess Session, dists []Distribution) (*DistributionResult, error) {
	if sess.Role != models.RoleCompanyAdmin {
		return nil, fmt.Errorf("distribute points as %q: %w", sess.Role, domainErrors.ErrForbidden)
	}
	if len(dists) == 0 {
		return nil, fmt.Errorf("empty distribution: %w", domainErrors.ErrInvalidAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	company, ok := s.companies[sess.CompanyID]
	if !ok {
		return nil, fmt.Errorf("company %s: %w", sess.CompanyID, domainErrors.ErrNotFound)
	}

	var total int64
	for _, d := range dists {
		if d.Points <= 0 {
			return nil, fmt.Errorf("employee %s points %d: %w", d.EmployeeID, d.Points, domainErrors.ErrInvalidAmount)
		}
		emp, ok := s.employees[d.EmployeeID]
		if !ok {
			return nil, fmt.Errorf("employee %s: %w", d.EmployeeID, domainErrors.ErrNotFound)
		}
		if emp.CompanyID != company.ID {
			return nil, fmt.Errorf("employee %s belongs to %s: %w", emp.ID, emp.CompanyID, domainErrors.ErrForbidden)
		}
		// total never exceeds the available credits, so the subtraction cannot wrap.
		if d.Points > company.AvailableCredits-total {
			return nil, fmt.Errorf("requested more than %d available: %w", company.AvailableCredits, domainErrors.ErrInsufficientCredits)
		}
		total += d.Points
	}

	now := s.now()
	touched := make(map[string]struct{}, len(dists))
	result := &DistributionResult{Total: total}
	for _, d := range dists {
		emp := s.employees[d.EmployeeID]
		emp.AvailablePoints += d.Points
		emp.TotalPoints += d.Points
		emp.UpdatedAt = now
		touched[emp.ID] = struct{}{}
	}
	company.UsedCredits += total
	company.Rebalance()
	company.UpdatedAt = now

	result.Company = *company
	for _, d := range dists {
		if _, ok := touched[d.EmployeeID]; ok {
			result.Employees = append(result.Employees, *s.employees[d.EmployeeID])
			delete(touched, d.EmployeeID)
		}
	}
	return result, nil
}

// BookService reserves a service for an employee: it debits the points and
// records a pending transaction carrying a fresh voucher code.
func (s *Store) BookService(sess Session, employeeID, serviceID string) (*models.Transaction, error) {
	code, err := s.newCode()
	if err != nil {
		return nil, fmt.Errorf("generate voucher code: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	emp, err := s.actingEmployeeLocked(sess, employeeID)
	if err != nil {
		return nil, err
	}
	svc, ok := s.services[serviceID]
	if !ok {
		return nil, fmt.Errorf("service %s: %w", serviceID, domainErrors.ErrNotFound)
	}
	if !emp.Active {
		return nil, fmt.Errorf("employee %s: %w", emp.ID, domainErrors.ErrInactive)
	}
	if !svc.Active {
		return nil, fmt.Errorf("service %s: %w", svc.ID, domainErrors.ErrInactive)
	}
	if emp.AvailablePoints < svc.PointsRequired {
		return nil, fmt.Errorf("employee %s has %d, service %s needs %d: %w",
			emp.ID, emp.AvailablePoints, svc.ID, svc.PointsRequired, domainErrors.ErrInsufficientBalance)
	}

	now := s.now()
	emp.AvailablePoints -= svc.PointsRequired
	emp.UsedPoints += svc.PointsRequired
	emp.UpdatedAt = now

	tx := &models.Transaction{
		ID:          s.newID(),
		EmployeeID:  emp.ID,
		ServiceID:   svc.ID,
		PartnerID:   svc.PartnerID,
		CompanyID:   emp.CompanyID,
		PointsUsed:  svc.PointsRequired,
		Status:      models.TransactionStatusPending,
		VoucherCode: code,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.transactions[tx.ID] = tx
	s.txOrder = append(s.txOrder, tx.ID)

	out := *tx
	return &out, nil
}

// GenerateQR issues a voucher for the employee's latest pending booking of
// serviceID. Every call appends a new voucher to the active set.
func (s *Store) GenerateQR(sess Session, employeeID, serviceID string) (*models.Voucher, error) {
	code, err := s.newCode()
	if err != nil {
		return nil, fmt.Errorf("generate voucher code: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[serviceID]
	if !ok {
		return nil, fmt.Errorf("service %s: %w", serviceID, domainErrors.ErrNotFound)
	}
	emp, err := s.actingEmployeeLocked(sess, employeeID)
	if err != nil {
		return nil, err
	}

	var pending *models.Transaction
	for i := len(s.txOrder) - 1; i >= 0; i-- {
		tx := s.transactions[s.txOrder[i]]
		if tx.EmployeeID == emp.ID && tx.ServiceID == svc.ID && tx.IsPending() {
			pending = tx
			break
		}
	}
	if pending == nil {
		return nil, fmt.Errorf("pending booking of %s by %s: %w", svc.ID, emp.ID, domainErrors.ErrNotFound)
	}

	now := s.now()
	v := models.Voucher{
		Code:           code,
		TransactionID:  pending.ID,
		EmployeeID:     emp.ID,
		ServiceID:      svc.ID,
		PartnerID:      pending.PartnerID,
		PointsToRedeem: pending.PointsUsed,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.voucherTTL),
	}
	s.vouchers = append(s.vouchers, v)
	return &v, nil
}

// ValidateQR settles the transaction behind a presented voucher. The voucher
// is resolved by code in the active set and bound to its transaction by id.
// An expired voucher fails and leaves both the voucher and the transaction as
// they were. A voucher whose transaction is already settled is dropped.
func (s *Store) ValidateQR(sess Session, presented models.Voucher, partnerID string) (*models.Transaction, error) {
	if sess.Role != models.RolePartner || sess.PartnerID != partnerID {
		return nil, fmt.Errorf("validate voucher for partner %s: %w", partnerID, domainErrors.ErrForbidden)
	}
	if presented.Code == "" {
		return nil, domainErrors.ErrInvalidVoucher
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.vouchers {
		if s.vouchers[i].Code == presented.Code {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("voucher: %w", domainErrors.ErrNotFound)
	}
	v := s.vouchers[idx]
	if presented.TransactionID != "" && presented.TransactionID != v.TransactionID {
		return nil, fmt.Errorf("voucher bound to %s, presented for %s: %w", v.TransactionID, presented.TransactionID, domainErrors.ErrInvalidVoucher)
	}

	now := s.now()
	if v.ExpiredAt(now) {
		return nil, fmt.Errorf("voucher expired at %s: %w", v.ExpiresAt.Format("15:04:05"), domainErrors.ErrVoucherExpired)
	}

	tx, ok := s.transactions[v.TransactionID]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", v.TransactionID, domainErrors.ErrNotFound)
	}
	if tx.PartnerID != partnerID {
		return nil, fmt.Errorf("transaction %s belongs to partner %s: %w", tx.ID, tx.PartnerID, domainErrors.ErrForbidden)
	}
	if !tx.IsPending() {
		s.vouchers = append(s.vouchers[:idx], s.vouchers[idx+1:]...)
		return nil, fmt.Errorf("transaction %s is %s: %w", tx.ID, tx.Status, domainErrors.ErrAlreadyRedeemed)
	}

	tx.Status = models.TransactionStatusCompleted
	tx.UpdatedAt = now
	redeemed := now
	tx.RedeemedAt = &redeemed

	s.vouchers = append(s.vouchers[:idx], s.vouchers[idx+1:]...)

	out := *tx
	return &out, nil
}

// actingEmployeeLocked resolves employeeID and checks the session may act for it.
func (s *Store) actingEmployeeLocked(sess Session, employeeID string) (*models.Employee, error) {
	switch sess.Role {
	case models.RoleEmployee:
		if sess.EmployeeID != employeeID {
			return nil, fmt.Errorf("employee %s acting for %s: %w", sess.EmployeeID, employeeID, domainErrors.ErrForbidden)
		}
	case models.RoleCompanyAdmin:
	default:
		return nil, fmt.Errorf("role %q: %w", sess.Role, domainErrors.ErrForbidden)
	}

	emp, ok := s.employees[employeeID]
	if !ok {
		return nil, fmt.Errorf("employee %s: %w", employeeID, domainErrors.ErrNotFound)
	}
	if sess.Role == models.RoleCompanyAdmin && emp.CompanyID != sess.CompanyID {
		return nil, fmt.Errorf("employee %s belongs to %s: %w", emp.ID, emp.CompanyID, domainErrors.ErrForbidden)
	}
	return emp, nil
}
