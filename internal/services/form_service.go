// form_service.go
//
// Generic form submission storage: create, read, paginated list, patch, delete
//
// This file is part of kpa-formsdb.
// kpa-formsdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// kpa-formsdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with kpa-formsdb.
// If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trudransh/kpa-formsdb/internal/models"
	"github.com/trudransh/kpa-formsdb/internal/types"
)

// FormSubmissionInput is the creation payload for a generic form submission.
type FormSubmissionInput struct {
	Name        string  `json:"name"`
	PhoneNumber string  `json:"phone_number"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
}

// FormSubmissionPatch is a partial update. Absent fields leave the stored
// value untouched; explicit nulls clear the nullable columns.
type FormSubmissionPatch struct {
	Name        types.Optional[string] `json:"name"`
	PhoneNumber types.Optional[string] `json:"phone_number"`
	Email       types.Optional[string] `json:"email"`
	Address     types.Optional[string] `json:"address"`
}

// FormSubmissionList is a pagination envelope. Total counts all matching
// rows before skip/limit are applied.
type FormSubmissionList struct {
	Items []models.FormSubmission `json:"items"`
	Total int64                   `json:"total"`
	Skip  int                     `json:"skip"`
	Limit int                     `json:"limit"`
}

// CreateFormSubmission persists a new form submission. The owner is nil for
// anonymous creation flows.
func CreateFormSubmission(db *gorm.DB, input FormSubmissionInput, userID *uint64) (*models.FormSubmission, error) {
	form := models.FormSubmission{
		Name:        input.Name,
		PhoneNumber: input.PhoneNumber,
		Email:       input.Email,
		Address:     input.Address,
		UserID:      userID,
	}
	if err := db.Create(&form).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

// GetFormSubmission retrieves a form submission by id.
func GetFormSubmission(db *gorm.DB, id uint64) (*models.FormSubmission, error) {
	var form models.FormSubmission
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		First(&form, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &form, nil
}

// ListFormSubmissions returns a page of form submissions. Skip and limit
// never affect the reported total.
func ListFormSubmissions(db *gorm.DB, skip, limit int) (*FormSubmissionList, error) {
	var total int64
	if err := db.Model(&models.FormSubmission{}).Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]models.FormSubmission, 0, limit)
	if err := db.Order("id").Offset(skip).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}

	return &FormSubmissionList{
		Items: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}, nil
}

// UpdateFormSubmission applies a patch to a stored form submission.
// Unknown ids yield ErrNotFound with no side effects.
func UpdateFormSubmission(db *gorm.DB, id uint64, patch FormSubmissionPatch) (*models.FormSubmission, error) {
	form, err := GetFormSubmission(db, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Name.Set && patch.Name.Valid {
		updates["name"] = patch.Name.Value
	}
	if patch.PhoneNumber.Set && patch.PhoneNumber.Valid {
		updates["phone_number"] = patch.PhoneNumber.Value
	}
	if patch.Email.Set {
		updates["email"] = patch.Email.Ptr()
	}
	if patch.Address.Set {
		updates["address"] = patch.Address.Ptr()
	}

	if len(updates) > 0 {
		if err := db.Model(form).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return GetFormSubmission(db, id)
}

// DeleteFormSubmission removes a form submission, returning the deleted
// record. A second delete of the same id yields ErrNotFound, not an error.
func DeleteFormSubmission(db *gorm.DB, id uint64) (*models.FormSubmission, error) {
	form, err := GetFormSubmission(db, id)
	if err != nil {
		return nil, err
	}
	if err := db.Delete(form).Error; err != nil {
		return nil, err
	}
	return form, nil
}
