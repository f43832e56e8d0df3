package repositories

import (
	"context"
	"fmt"

	"welfare/internal/ledger"
	"welfare/internal/models"

	"gorm.io/gorm"
)

// Tables groups the ledger repositories over one connection.
type Tables struct {
	Companies    *Table[models.Company]
	Employees    *Table[models.Employee]
	Partners     *Table[models.Partner]
	Services     *Table[models.Service]
	Transactions *Table[models.Transaction]
}

func NewTables(db *gorm.DB) *Tables {
	return &Tables{
		Companies:    NewTable[models.Company](db),
		Employees:    NewTable[models.Employee](db),
		Partners:     NewTable[models.Partner](db),
		Services:     NewTable[models.Service](db),
		Transactions: NewTable[models.Transaction](db),
	}
}

// LoadCatalog reads every ledger table into a catalog for ledger.Store.Load.
func LoadCatalog(ctx context.Context, db *gorm.DB) (ledger.Catalog, error) {
	t := NewTables(db)
	var (
		cat ledger.Catalog
		err error
	)
	if cat.Companies, err = t.Companies.GetAll(ctx); err != nil {
		return cat, fmt.Errorf("load companies: %w", err)
	}
	if cat.Employees, err = t.Employees.GetAll(ctx); err != nil {
		return cat, fmt.Errorf("load employees: %w", err)
	}
	if cat.Partners, err = t.Partners.GetAll(ctx); err != nil {
		return cat, fmt.Errorf("load partners: %w", err)
	}
	if cat.Services, err = t.Services.GetAll(ctx); err != nil {
		return cat, fmt.Errorf("load services: %w", err)
	}
	if cat.Transactions, err = t.Transactions.GetAll(ctx); err != nil {
		return cat, fmt.Errorf("load transactions: %w", err)
	}
	return cat, nil
}

// SaveCatalog upserts every row of cat in one database transaction.
func SaveCatalog(ctx context.Context, db *gorm.DB, cat ledger.Catalog) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t := NewTables(tx)
		for i := range cat.Companies {
			if err := t.Companies.Update(ctx, &cat.Companies[i]); err != nil {
				return fmt.Errorf("save company %s: %w", cat.Companies[i].ID, err)
			}
		}
		for i := range cat.Employees {
			if err := t.Employees.Update(ctx, &cat.Employees[i]); err != nil {
				return fmt.Errorf("save employee %s: %w", cat.Employees[i].ID, err)
			}
		}
		for i := range cat.Partners {
			if err := t.Partners.Update(ctx, &cat.Partners[i]); err != nil {
				return fmt.Errorf("save partner %s: %w", cat.Partners[i].ID, err)
			}
		}
		for i := range cat.Services {
			if err := t.Services.Update(ctx, &cat.Services[i]); err != nil {
				return fmt.Errorf("save service %s: %w", cat.Services[i].ID, err)
			}
		}
		for i := range cat.Transactions {
			if err := t.Transactions.Update(ctx, &cat.Transactions[i]); err != nil {
				return fmt.Errorf("save transaction %s: %w", cat.Transactions[i].ID, err)
			}
		}
		return nil
	})
}
