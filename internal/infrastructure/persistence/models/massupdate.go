package models

import (
	"time"

	"github.com/kerp/backend/internal/domain/massupdate"
)

// ReceiptDateUpdateModel is the persistence model for receipt date updates
type ReceiptDateUpdateModel struct {
	ID                  int64      `gorm:"primaryKey;autoIncrement"`
	PurchaseOrderNumber string     `gorm:"type:char(9);not null;index:idx_receipt_date_po_line"`
	LineNumber          int        `gorm:"not null;index:idx_receipt_date_po_line"`
	Sequence            int        `gorm:"not null"`
	ReceiptDate         *time.Time `gorm:"not null"`
	DateType            int        `gorm:"not null"`
	UserID              string     `gorm:"type:varchar(450);not null"`
	FactoryID           int        `gorm:"not null;index:idx_receipt_date_pending"`
	AddedDate           time.Time  `gorm:"not null"`
	IsGenerated         bool       `gorm:"not null;default:false;index:idx_receipt_date_pending"`
	GeneratedDate       *time.Time
}

// TableName returns the table name for GORM
func (ReceiptDateUpdateModel) TableName() string {
	return "mass_update_receipt_dates"
}

// ToDomain converts the persistence model to a domain ReceiptDateUpdate
func (m *ReceiptDateUpdateModel) ToDomain() *massupdate.ReceiptDateUpdate {
	return &massupdate.ReceiptDateUpdate{
		ID:                  m.ID,
		PurchaseOrderNumber: m.PurchaseOrderNumber,
		LineNumber:          m.LineNumber,
		Sequence:            m.Sequence,
		ReceiptDate:         m.ReceiptDate,
		DateType:            massupdate.DateType(m.DateType),
		UserID:              m.UserID,
		FactoryID:           m.FactoryID,
		AddedDate:           m.AddedDate,
		IsGenerated:         m.IsGenerated,
		GeneratedDate:       m.GeneratedDate,
	}
}

// ReceiptDateUpdateModelFromDomain creates a persistence model from a domain ReceiptDateUpdate
func ReceiptDateUpdateModelFromDomain(u *massupdate.ReceiptDateUpdate) *ReceiptDateUpdateModel {
	return &ReceiptDateUpdateModel{
		ID:                  u.ID,
		PurchaseOrderNumber: u.PurchaseOrderNumber,
		LineNumber:          u.LineNumber,
		Sequence:            u.Sequence,
		ReceiptDate:         u.ReceiptDate,
		DateType:            int(u.DateType),
		UserID:              u.UserID,
		FactoryID:           u.FactoryID,
		AddedDate:           u.AddedDate,
		IsGenerated:         u.IsGenerated,
		GeneratedDate:       u.GeneratedDate,
	}
}
