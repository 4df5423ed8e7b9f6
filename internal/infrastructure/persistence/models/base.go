package models

import "time"

// Timestamps provides creation and update times maintained by GORM
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// All returns every persistence model in migration order
func All() []any {
	return []any{
		&FactoryModel{},
		&UserModel{},
		&ReceiptDateUpdateModel{},
	}
}
