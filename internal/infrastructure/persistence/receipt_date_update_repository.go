package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/kerp/backend/internal/domain/massupdate"
	"github.com/kerp/backend/internal/infrastructure/persistence/models"
)

// receiptDateBatchSize bounds the rows sent in one INSERT
const receiptDateBatchSize = 200

// GormReceiptDateUpdateRepository implements massupdate.Repository using GORM
type GormReceiptDateUpdateRepository struct {
	db *gorm.DB
}

// NewGormReceiptDateUpdateRepository creates a new GormReceiptDateUpdateRepository
func NewGormReceiptDateUpdateRepository(db *gorm.DB) *GormReceiptDateUpdateRepository {
	return &GormReceiptDateUpdateRepository{db: db}
}

// Add inserts the updates and assigns their generated ids
func (r *GormReceiptDateUpdateRepository) Add(ctx context.Context, updates ...*massupdate.ReceiptDateUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	rows := make([]*models.ReceiptDateUpdateModel, len(updates))
	for i, u := range updates {
		rows[i] = models.ReceiptDateUpdateModelFromDomain(u)
	}
	if err := DBFromContext(ctx, r.db).CreateInBatches(rows, receiptDateBatchSize).Error; err != nil {
		return fmt.Errorf("insert receipt date updates: %w", err)
	}
	for i, row := range rows {
		updates[i].ID = row.ID
	}
	return nil
}

// FindPending returns the updates of a factory that were not exported yet, oldest first
func (r *GormReceiptDateUpdateRepository) FindPending(ctx context.Context, factoryID int) ([]*massupdate.ReceiptDateUpdate, error) {
	var rows []models.ReceiptDateUpdateModel
	if err := DBFromContext(ctx, r.db).
		Where("factory_id = ? AND is_generated = ?", factoryID, false).
		Order("added_date, id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*massupdate.ReceiptDateUpdate, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

var _ massupdate.Repository = (*GormReceiptDateUpdateRepository)(nil)
