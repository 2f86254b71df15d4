package models

import (
	"time"
)

// FormSubmission is a generic form record. Email and address are nullable,
// and the owning user is optional so anonymously created records survive.
type FormSubmission struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	PhoneNumber string    `gorm:"size:20;not null" json:"phone_number"`
	Email       *string   `gorm:"size:255" json:"email"`
	Address     *string   `gorm:"type:text" json:"address"`
	UserID      *uint64   `gorm:"index" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name for FormSubmission
func (FormSubmission) TableName() string {
	return "form_submissions"
}
