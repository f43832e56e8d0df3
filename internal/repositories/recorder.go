package repositories

import (
	"context"
	"fmt"

	"welfare/internal/models"

	"gorm.io/gorm"
)

// Recorder mirrors settled ledger rows into the relational store.
type Recorder interface {
	RecordCompany(ctx context.Context, company *models.Company) error
	RecordEmployees(ctx context.Context, employees ...models.Employee) error
	RecordService(ctx context.Context, svc *models.Service) error
	RecordTransaction(ctx context.Context, tx *models.Transaction) error
}

type gormRecorder struct {
	db *gorm.DB
}

// NewRecorder returns a Recorder writing through db.
func NewRecorder(db *gorm.DB) Recorder {
	if db == nil {
		panic("db is required")
	}
	return &gormRecorder{db: db}
}

func (r *gormRecorder) RecordCompany(ctx context.Context, company *models.Company) error {
	if err := NewTable[models.Company](r.db).Update(ctx, company); err != nil {
		return fmt.Errorf("record company %s: %w", company.ID, err)
	}
	return nil
}

func (r *gormRecorder) RecordEmployees(ctx context.Context, employees ...models.Employee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		table := NewTable[models.Employee](tx)
		for i := range employees {
			if err := table.Update(ctx, &employees[i]); err != nil {
				return fmt.Errorf("record employee %s: %w", employees[i].ID, err)
			}
		}
		return nil
	})
}

func (r *gormRecorder) RecordService(ctx context.Context, svc *models.Service) error {
	if err := NewTable[models.Service](r.db).Update(ctx, svc); err != nil {
		return fmt.Errorf("record service %s: %w", svc.ID, err)
	}
	return nil
}

func (r *gormRecorder) RecordTransaction(ctx context.Context, tx *models.Transaction) error {
	if err := NewTable[models.Transaction](r.db).Update(ctx, tx); err != nil {
		return fmt.Errorf("record transaction %s: %w", tx.ID, err)
	}
	return nil
}

// NoopRecorder discards every write. Used when no database is configured.
type NoopRecorder struct{}

func (NoopRecorder) RecordCompany(context.Context, *models.Company) error         { return nil }
func (NoopRecorder) RecordEmployees(context.Context, ...models.Employee) error    { return nil }
func (NoopRecorder) RecordService(context.Context, *models.Service) error         { return nil }
func (NoopRecorder) RecordTransaction(context.Context, *models.Transaction) error { return nil }
