package models

import (
	"time"
)

// User is an identity record. The phone number is the login identifier and
// is unique at the storage layer.
type User struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PhoneNumber    string    `gorm:"uniqueIndex;size:20;not null" json:"phone_number"`
	HashedPassword string    `gorm:"size:255;not null" json:"-"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`

	FormSubmissions     []FormSubmission     `gorm:"foreignKey:UserID" json:"-"`
	WheelSpecifications []WheelSpecification `gorm:"foreignKey:UserID" json:"-"`
	BogieChecksheets    []BogieChecksheet    `gorm:"foreignKey:UserID" json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
