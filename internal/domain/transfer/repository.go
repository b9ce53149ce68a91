package transfer

import (
	"context"

	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
	"gorm.io/gorm"
)

type Repository interface {
	CreateRecord(ctx context.Context, record *ImportRecord) error
	ListRecent(ctx context.Context, limit int) ([]ImportRecord, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateRecord(ctx context.Context, record *ImportRecord) error {
	return apperror.NewStore("create import record", r.db.WithContext(ctx).Create(record).Error)
}

func (r *repository) ListRecent(ctx context.Context, limit int) ([]ImportRecord, error) {
	var records []ImportRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, apperror.NewStore("list import records", err)
	}
	return records, nil
}
