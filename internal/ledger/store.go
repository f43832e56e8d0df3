// Package ledger is the in-memory welfare ledger: company credits, employee
// points, the partner service catalog, booking transactions and the set of
// active redemption vouchers.
//
// All state is owned by a Store and only changes through its operations. Each
// operation runs as a single critical section, so callers never observe a
// half-applied distribution or booking. Voucher expiry is lazy: expired
// vouchers stay in the active set until someone tries to validate them.
package ledger

import (
	"fmt"
	"sort"
	"sync"
	"time"

	domainErrors "welfare/internal/errors"
	"welfare/internal/models"
	"welfare/internal/utils"

	"github.com/google/uuid"
)

// Session is the explicit caller context passed into every mutating operation.
type Session struct {
	ActorID    string
	Role       string
	CompanyID  string
	EmployeeID string
	PartnerID  string
}

// SessionFromClaims builds a Session out of verified token claims.
func SessionFromClaims(c *models.SessionClaims) Session {
	if c == nil {
		return Session{}
	}
	return Session{
		ActorID:    c.ActorID,
		Role:       c.Role,
		CompanyID:  c.CompanyID,
		EmployeeID: c.EmployeeID,
		PartnerID:  c.PartnerID,
	}
}

// Catalog is the full dataset used to hydrate a Store.
type Catalog struct {
	Companies    []models.Company
	Employees    []models.Employee
	Partners     []models.Partner
	Services     []models.Service
	Transactions []models.Transaction
}

// Options tweaks time, id and code generation. Zero values pick defaults.
type Options struct {
	Clock      func() time.Time
	NewID      func() string
	NewCode    func() (string, error)
	VoucherTTL time.Duration
}

// Store holds the ledger state.
type Store struct {
	mu sync.Mutex

	companies    map[string]*models.Company
	employees    map[string]*models.Employee
	partners     map[string]*models.Partner
	services     map[string]*models.Service
	transactions map[string]*models.Transaction
	txOrder      []string
	vouchers     []models.Voucher

	now        func() time.Time
	newID      func() string
	newCode    func() (string, error)
	voucherTTL time.Duration
}

// New creates an empty Store.
func New(opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return "txn_" + uuid.NewString() }
	}
	if opts.NewCode == nil {
		opts.NewCode = utils.GenerateVoucherCode
	}
	if opts.VoucherTTL <= 0 {
		opts.VoucherTTL = models.VoucherTTL
	}

	s := &Store{
		now:        opts.Clock,
		newID:      opts.NewID,
		newCode:    opts.NewCode,
		voucherTTL: opts.VoucherTTL,
	}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.companies = make(map[string]*models.Company)
	s.employees = make(map[string]*models.Employee)
	s.partners = make(map[string]*models.Partner)
	s.services = make(map[string]*models.Service)
	s.transactions = make(map[string]*models.Transaction)
	s.txOrder = nil
	s.vouchers = nil
}

// Load replaces the whole state with catalog. Active vouchers are dropped.
// The store is left untouched when catalog breaks a balance invariant.
func (s *Store) Load(catalog Catalog) error {
	fresh := &Store{}
	fresh.reset()
	fresh.fill(catalog)
	if err := fresh.checkInvariantsLocked(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.swapLocked(fresh)
	return nil
}

func (s *Store) fill(catalog Catalog) {
	for i := range catalog.Companies {
		c := catalog.Companies[i]
		c.Rebalance()
		s.companies[c.ID] = &c
	}
	for i := range catalog.Employees {
		e := catalog.Employees[i]
		s.employees[e.ID] = &e
	}
	for i := range catalog.Partners {
		p := catalog.Partners[i]
		s.partners[p.ID] = &p
	}
	for i := range catalog.Services {
		svc := catalog.Services[i]
		s.services[svc.ID] = &svc
	}

	txs := make([]models.Transaction, len(catalog.Transactions))
	copy(txs, catalog.Transactions)
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].CreatedAt.Before(txs[j].CreatedAt) })
	for i := range txs {
		tx := txs[i]
		s.transactions[tx.ID] = &tx
		s.txOrder = append(s.txOrder, tx.ID)
	}
}

func (s *Store) swapLocked(from *Store) {
	s.companies = from.companies
	s.employees = from.employees
	s.partners = from.partners
	s.services = from.services
	s.transactions = from.transactions
	s.txOrder = from.txOrder
	s.vouchers = from.vouchers
}

// PutService adds or replaces a catalog entry. A service that already has a
// completed transaction only accepts changes to its active flag.
func (s *Store) PutService(svc models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.partners[svc.PartnerID]; !ok {
		return fmt.Errorf("partner %s: %w", svc.PartnerID, domainErrors.ErrNotFound)
	}
	if svc.PointsRequired <= 0 {
		return fmt.Errorf("service %s points required %d: %w", svc.ID, svc.PointsRequired, domainErrors.ErrInvalidAmount)
	}

	if existing, ok := s.services[svc.ID]; ok && s.redeemedAgainstLocked(svc.ID) {
		locked := *existing
		locked.Active = svc.Active
		if !sameTerms(&locked, &svc) {
			return fmt.Errorf("service %s: %w", svc.ID, domainErrors.ErrServiceLocked)
		}
		svc = locked
	}

	svc.UpdatedAt = s.now()
	if svc.CreatedAt.IsZero() {
		svc.CreatedAt = svc.UpdatedAt
	}
	s.services[svc.ID] = &svc
	return nil
}

func sameTerms(a, b *models.Service) bool {
	return a.PartnerID == b.PartnerID &&
		a.Name == b.Name &&
		a.Category == b.Category &&
		a.PointsRequired == b.PointsRequired &&
		a.OriginalPrice.Equal(b.OriginalPrice) &&
		a.DiscountedPrice.Equal(b.DiscountedPrice)
}

func (s *Store) redeemedAgainstLocked(serviceID string) bool {
	for _, tx := range s.transactions {
		if tx.ServiceID == serviceID && tx.Status == models.TransactionStatusCompleted {
			return true
		}
	}
	return false
}

// Company returns a copy of the company with id.
func (s *Store) Company(id string) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.companies[id]
	if !ok {
		return nil, fmt.Errorf("company %s: %w", id, domainErrors.ErrNotFound)
	}
	out := *c
	return &out, nil
}

// Employee returns a copy of the employee with id.
func (s *Store) Employee(id string) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[id]
	if !ok {
		return nil, fmt.Errorf("employee %s: %w", id, domainErrors.ErrNotFound)
	}
	out := *e
	return &out, nil
}

// EmployeesByCompany lists a company's employees ordered by id.
func (s *Store) EmployeesByCompany(companyID string) []models.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Employee
	for _, e := range s.employees {
		if e.CompanyID == companyID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Partner returns a copy of the partner with id.
func (s *Store) Partner(id string) (*models.Partner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.partners[id]
	if !ok {
		return nil, fmt.Errorf("partner %s: %w", id, domainErrors.ErrNotFound)
	}
	out := *p
	return &out, nil
}

// Service returns a copy of the service with id.
func (s *Store) Service(id string) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, fmt.Errorf("service %s: %w", id, domainErrors.ErrNotFound)
	}
	out := *svc
	return &out, nil
}

// ServiceFilter narrows Services. Empty fields match everything.
type ServiceFilter struct {
	PartnerID  string
	Category   string
	ActiveOnly bool
}

// Services lists catalog entries matching f ordered by id.
func (s *Store) Services(f ServiceFilter) []models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Service
	for _, svc := range s.services {
		if f.PartnerID != "" && svc.PartnerID != f.PartnerID {
			continue
		}
		if f.Category != "" && svc.Category != f.Category {
			continue
		}
		if f.ActiveOnly && !svc.Active {
			continue
		}
		out = append(out, *svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Transaction returns a copy of the transaction with id.
func (s *Store) Transaction(id string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, domainErrors.ErrNotFound)
	}
	out := *tx
	return &out, nil
}

// TransactionsByEmployee lists an employee's transactions, newest first.
func (s *Store) TransactionsByEmployee(employeeID string) []models.Transaction {
	return s.filterTransactions(func(tx *models.Transaction) bool { return tx.EmployeeID == employeeID })
}

// TransactionsByPartner lists a partner's transactions, newest first.
func (s *Store) TransactionsByPartner(partnerID string) []models.Transaction {
	return s.filterTransactions(func(tx *models.Transaction) bool { return tx.PartnerID == partnerID })
}

func (s *Store) filterTransactions(match func(*models.Transaction) bool) []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Transaction, 0)
	for i := len(s.txOrder) - 1; i >= 0; i-- {
		tx := s.transactions[s.txOrder[i]]
		if match(tx) {
			out = append(out, *tx)
		}
	}
	return out
}

// ActiveVouchers returns the active set in issue order. It may contain
// vouchers whose expiry has passed but that nobody has presented yet.
func (s *Store) ActiveVouchers() []models.Voucher {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Voucher, len(s.vouchers))
	copy(out, s.vouchers)
	return out
}
