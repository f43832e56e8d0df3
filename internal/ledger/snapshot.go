package ledger

import (
	"fmt"
	"sort"
	"time"

	"welfare/internal/models"
)

// SnapshotVersion is bumped whenever the Snapshot layout changes.
const SnapshotVersion = 1

// Snapshot is a point-in-time copy of the whole store.
type Snapshot struct {
	Version      int                  `json:"version"`
	TakenAt      time.Time            `json:"taken_at"`
	Companies    []models.Company     `json:"companies"`
	Employees    []models.Employee    `json:"employees"`
	Partners     []models.Partner     `json:"partners"`
	Services     []models.Service     `json:"services"`
	Transactions []models.Transaction `json:"transactions"`
	Vouchers     []models.Voucher     `json:"vouchers"`
}

// Snapshot copies the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Version:      SnapshotVersion,
		TakenAt:      s.now(),
		Companies:    make([]models.Company, 0, len(s.companies)),
		Employees:    make([]models.Employee, 0, len(s.employees)),
		Partners:     make([]models.Partner, 0, len(s.partners)),
		Services:     make([]models.Service, 0, len(s.services)),
		Transactions: make([]models.Transaction, 0, len(s.txOrder)),
		Vouchers:     make([]models.Voucher, len(s.vouchers)),
	}
	for _, c := range s.companies {
		snap.Companies = append(snap.Companies, *c)
	}
	for _, e := range s.employees {
		snap.Employees = append(snap.Employees, *e)
	}
	for _, p := range s.partners {
		snap.Partners = append(snap.Partners, *p)
	}
	for _, svc := range s.services {
		snap.Services = append(snap.Services, *svc)
	}
	for _, id := range s.txOrder {
		snap.Transactions = append(snap.Transactions, *s.transactions[id])
	}
	copy(snap.Vouchers, s.vouchers)

	sort.Slice(snap.Companies, func(i, j int) bool { return snap.Companies[i].ID < snap.Companies[j].ID })
	sort.Slice(snap.Employees, func(i, j int) bool { return snap.Employees[i].ID < snap.Employees[j].ID })
	sort.Slice(snap.Partners, func(i, j int) bool { return snap.Partners[i].ID < snap.Partners[j].ID })
	sort.Slice(snap.Services, func(i, j int) bool { return snap.Services[i].ID < snap.Services[j].ID })
	return snap
}

// Restore replaces the state with snap. The store is left untouched when
// snap has an unknown version or breaks a balance invariant.
func (s *Store) Restore(snap Snapshot) error {
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("snapshot version %d, want %d", snap.Version, SnapshotVersion)
	}

	fresh := &Store{}
	fresh.reset()
	fresh.fill(Catalog{
		Companies:    snap.Companies,
		Employees:    snap.Employees,
		Partners:     snap.Partners,
		Services:     snap.Services,
		Transactions: snap.Transactions,
	})
	fresh.vouchers = append(fresh.vouchers, snap.Vouchers...)
	if err := fresh.checkInvariantsLocked(); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.swapLocked(fresh)
	return nil
}

// CheckInvariants verifies company and employee balances.
func (s *Store) CheckInvariants() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkInvariantsLocked()
}

func (s *Store) checkInvariantsLocked() error {
	for _, c := range s.companies {
		if c.AvailableCredits != c.TotalCredits-c.UsedCredits {
			return fmt.Errorf("company %s: available %d != total %d - used %d", c.ID, c.AvailableCredits, c.TotalCredits, c.UsedCredits)
		}
		if c.AvailableCredits < 0 {
			return fmt.Errorf("company %s: negative available credits %d", c.ID, c.AvailableCredits)
		}
	}
	for _, e := range s.employees {
		if e.TotalPoints != e.AvailablePoints+e.UsedPoints {
			return fmt.Errorf("employee %s: total %d != available %d + used %d", e.ID, e.TotalPoints, e.AvailablePoints, e.UsedPoints)
		}
		if e.AvailablePoints < 0 {
			return fmt.Errorf("employee %s: negative available points %d", e.ID, e.AvailablePoints)
		}
	}
	return nil
}
