package repositories

import (
	"context"
	"errors"
	"fmt"

	domainErrors "welfare/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Table is a generic repository over one gorm model keyed by a string id.
type Table[T any] struct {
	db *gorm.DB
}

func NewTable[T any](db *gorm.DB) *Table[T] {
	return &Table[T]{db: db}
}

func (t *Table[T]) GetAll(ctx context.Context) ([]T, error) {
	var rows []T
	if err := t.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *Table[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var row T
	err := t.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s: %w", id, domainErrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetByForeignKey lists rows whose column equals value.
func (t *Table[T]) GetByForeignKey(ctx context.Context, column string, value interface{}) ([]T, error) {
	var rows []T
	err := t.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *Table[T]) Create(ctx context.Context, row *T) error {
	return t.db.WithContext(ctx).Create(row).Error
}

// Update writes every column of row, inserting it when the id is new.
func (t *Table[T]) Update(ctx context.Context, row *T) error {
	return t.db.WithContext(ctx).Save(row).Error
}

func (t *Table[T]) Delete(ctx context.Context, id string) error {
	res := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", id, domainErrors.ErrNotFound)
	}
	return nil
}
