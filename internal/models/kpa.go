package models

import (
	"time"
)

// WheelSpecification is the KPA wheel measurement form. The form number is a
// client-supplied natural key; the unique index is the authoritative guard
// against concurrent duplicate creates.
type WheelSpecification struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FormNumber    string    `gorm:"uniqueIndex;size:100;not null" json:"form_number"`
	SubmittedBy   string    `gorm:"size:100;not null" json:"submitted_by"`
	SubmittedDate string    `gorm:"size:20;not null" json:"submitted_date"`
	Status        string    `gorm:"size:50;not null;default:Saved" json:"status"`
	Fields        JSON      `json:"fields"`
	UserID        *uint64   `gorm:"index" json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BogieChecksheet is the KPA bogie inspection form. Same natural-key contract
// as WheelSpecification; the three nested sections are stored schema-light.
type BogieChecksheet struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FormNumber      string    `gorm:"uniqueIndex;size:100;not null" json:"form_number"`
	InspectionBy    string    `gorm:"size:100;not null" json:"inspection_by"`
	InspectionDate  string    `gorm:"size:20;not null" json:"inspection_date"`
	Status          string    `gorm:"size:50;not null;default:Saved" json:"status"`
	BogieDetails    JSON      `json:"bogie_details"`
	BogieChecksheet JSON      `json:"bogie_checksheet"`
	BmbcChecksheet  JSON      `json:"bmbc_checksheet"`
	UserID          *uint64   `gorm:"index" json:"user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName overrides the table name for WheelSpecification
func (WheelSpecification) TableName() string {
	return "wheel_specifications"
}

// TableName overrides the table name for BogieChecksheet
func (BogieChecksheet) TableName() string {
	return "bogie_checksheets"
}
