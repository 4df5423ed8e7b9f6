package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kerp/backend/internal/domain/factory"
	"github.com/kerp/backend/internal/domain/shared"
	"github.com/kerp/backend/internal/infrastructure/persistence/models"
)

// GormFactoryRepository implements factory.Repository using GORM
type GormFactoryRepository struct {
	db *gorm.DB
}

// NewGormFactoryRepository creates a new GormFactoryRepository
func NewGormFactoryRepository(db *gorm.DB) *GormFactoryRepository {
	return &GormFactoryRepository{db: db}
}

// FindByID finds a factory by its business id
func (r *GormFactoryRepository) FindByID(ctx context.Context, id int) (*factory.Factory, error) {
	var model models.FactoryModel
	if err := DBFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActive returns active factories ordered by name
func (r *GormFactoryRepository) FindActive(ctx context.Context) ([]factory.Factory, error) {
	var rows []models.FactoryModel
	if err := DBFromContext(ctx, r.db).
		Where("is_active = ?", true).
		Order("name").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]factory.Factory, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// ExistsAndIsActive reports whether the factory exists and is active
func (r *GormFactoryRepository) ExistsAndIsActive(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := DBFromContext(ctx, r.db).
		Model(&models.FactoryModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateIfMissing inserts the factory unless one with the same id exists
func (r *GormFactoryRepository) CreateIfMissing(ctx context.Context, f *factory.Factory) error {
	return DBFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(models.FactoryModelFromDomain(f)).Error
}

var _ factory.Repository = (*GormFactoryRepository)(nil)
