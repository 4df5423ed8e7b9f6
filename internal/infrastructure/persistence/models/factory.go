package models

import "github.com/kerp/backend/internal/domain/factory"

// FactoryModel is the persistence model for factories
type FactoryModel struct {
	ID       int    `gorm:"primaryKey;autoIncrement:false"`
	Name     string `gorm:"type:varchar(50);not null;uniqueIndex"`
	IsActive bool   `gorm:"not null;default:true;index"`
	Timestamps
}

// TableName returns the table name for GORM
func (FactoryModel) TableName() string {
	return "factories"
}

// ToDomain converts the persistence model to a domain Factory
func (m *FactoryModel) ToDomain() *factory.Factory {
	return &factory.Factory{
		ID:       m.ID,
		Name:     m.Name,
		IsActive: m.IsActive,
	}
}

// FromDomain populates the model from a domain Factory
func (m *FactoryModel) FromDomain(f *factory.Factory) {
	m.ID = f.ID
	m.Name = f.Name
	m.IsActive = f.IsActive
}

// FactoryModelFromDomain creates a persistence model from a domain Factory
func FactoryModelFromDomain(f *factory.Factory) *FactoryModel {
	m := &FactoryModel{}
	m.FromDomain(f)
	return m
}
