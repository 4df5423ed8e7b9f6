package models

import "github.com/kerp/backend/internal/domain/identity"

// UserModel is the persistence model for users
type UserModel struct {
	ID        string `gorm:"type:varchar(450);primaryKey"`
	Username  string `gorm:"type:varchar(256);not null"`
	Email     string `gorm:"type:varchar(256)"`
	FactoryID *int   `gorm:"index"`
	Timestamps
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		ID:       m.ID,
		Username: m.Username,
		Email:    m.Email,
	}
	if m.FactoryID != nil {
		id := *m.FactoryID
		u.FactoryID = &id
	}
	return u
}

// UserModelFromDomain creates a persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
	if u.FactoryID != nil {
		id := *u.FactoryID
		m.FactoryID = &id
	}
	return m
}
