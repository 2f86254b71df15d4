// kpa_service.go
//
// KPA inspection form storage: natural-key creation and filtered listing
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
	"gorm.io/hints"

	"github.com/trudransh/kpa-formsdb/internal/models"
)

// StatusSaved is the default status assigned to newly submitted KPA forms.
const StatusSaved = "Saved"

// WheelSpecificationInput is the creation payload for a wheel specification
// form. Fields is an open mapping of up to 15 optional measurement keys,
// stored schema-light.
type WheelSpecificationInput struct {
	FormNumber    string                 `json:"formNumber"`
	SubmittedBy   string                 `json:"submittedBy"`
	SubmittedDate string                 `json:"submittedDate"`
	Fields        map[string]interface{} `json:"fields"`
}

// WheelSpecificationFilter holds the optional exact-match list predicates.
// Empty strings mean "no constraint on that field".
type WheelSpecificationFilter struct {
	FormNumber    string
	SubmittedBy   string
	SubmittedDate string
}

// Any reports whether at least one filter predicate is present.
func (f WheelSpecificationFilter) Any() bool {
	return f.FormNumber != "" || f.SubmittedBy != "" || f.SubmittedDate != ""
}

// WheelSpecificationList is the pagination envelope for wheel specifications.
type WheelSpecificationList struct {
	Items []models.WheelSpecification
	Total int64
	Skip  int
	Limit int
}

// BogieChecksheetInput is the creation payload for a bogie checksheet form.
// The three nested sections are open mappings stored schema-light.
type BogieChecksheetInput struct {
	FormNumber      string                 `json:"formNumber"`
	InspectionBy    string                 `json:"inspectionBy"`
	InspectionDate  string                 `json:"inspectionDate"`
	BogieDetails    map[string]interface{} `json:"bogieDetails"`
	BogieChecksheet map[string]interface{} `json:"bogieChecksheet"`
	BmbcChecksheet  map[string]interface{} `json:"bmbcChecksheet"`
}

// BogieChecksheetFilter holds the optional exact-match list predicates.
type BogieChecksheetFilter struct {
	FormNumber     string
	InspectionBy   string
	InspectionDate string
}

// Any reports whether at least one filter predicate is present.
func (f BogieChecksheetFilter) Any() bool {
	return f.FormNumber != "" || f.InspectionBy != "" || f.InspectionDate != ""
}

// BogieChecksheetList is the pagination envelope for bogie checksheets.
type BogieChecksheetList struct {
	Items []models.BogieChecksheet
	Total int64
	Skip  int
	Limit int
}

// CreateWheelSpecification persists a new wheel specification form. The
// existence pre-check produces the friendly conflict error; the unique
// index on form_number is the authoritative guard under concurrency.
func CreateWheelSpecification(db *gorm.DB, input WheelSpecificationInput, userID *uint64) (*models.WheelSpecification, error) {
	if _, err := GetWheelSpecificationByFormNumber(db, input.FormNumber); err == nil {
		return nil, &ConflictError{Resource: "Form number", Key: input.FormNumber}
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	fields, err := models.NewJSON(input.Fields)
	if err != nil {
		return nil, err
	}

	spec := models.WheelSpecification{
		FormNumber:    input.FormNumber,
		SubmittedBy:   input.SubmittedBy,
		SubmittedDate: input.SubmittedDate,
		Status:        StatusSaved,
		Fields:        fields,
		UserID:        userID,
	}
	if err := db.Create(&spec).Error; err != nil {
		return nil, err
	}
	return &spec, nil
}

// GetWheelSpecificationByFormNumber retrieves a wheel specification by its
// natural key.
func GetWheelSpecificationByFormNumber(db *gorm.DB, formNumber string) (*models.WheelSpecification, error) {
	var spec models.WheelSpecification
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Where("form_number = ?", formNumber).
		First(&spec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &spec, nil
}

// GetWheelSpecification retrieves a wheel specification by id.
func GetWheelSpecification(db *gorm.DB, id uint64) (*models.WheelSpecification, error) {
	var spec models.WheelSpecification
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		First(&spec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &spec, nil
}

// ListWheelSpecifications returns a filtered page of wheel specifications.
// Predicates are ANDed exact matches; total counts all matching rows before
// pagination.
func ListWheelSpecifications(db *gorm.DB, filter WheelSpecificationFilter, skip, limit int) (*WheelSpecificationList, error) {
	query := db.Model(&models.WheelSpecification{})
	query = applyWheelFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	query = applyWheelFilter(db.Model(&models.WheelSpecification{}), filter)
	if filter.FormNumber != "" && db.Dialector.Name() == "mysql" {
		query = query.Clauses(hints.UseIndex("idx_wheel_specifications_form_number"))
	}

	items := make([]models.WheelSpecification, 0, limit)
	if err := query.Order("id").Offset(skip).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}

	return &WheelSpecificationList{Items: items, Total: total, Skip: skip, Limit: limit}, nil
}

func applyWheelFilter(query *gorm.DB, filter WheelSpecificationFilter) *gorm.DB {
	if filter.FormNumber != "" {
		query = query.Where("form_number = ?", filter.FormNumber)
	}
	if filter.SubmittedBy != "" {
		query = query.Where("submitted_by = ?", filter.SubmittedBy)
	}
	if filter.SubmittedDate != "" {
		query = query.Where("submitted_date = ?", filter.SubmittedDate)
	}
	return query
}

// CreateBogieChecksheet persists a new bogie checksheet form with the same
// natural-key contract as CreateWheelSpecification.
func CreateBogieChecksheet(db *gorm.DB, input BogieChecksheetInput, userID *uint64) (*models.BogieChecksheet, error) {
	if _, err := GetBogieChecksheetByFormNumber(db, input.FormNumber); err == nil {
		return nil, &ConflictError{Resource: "Form number", Key: input.FormNumber}
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	details, err := models.NewJSON(input.BogieDetails)
	if err != nil {
		return nil, err
	}
	checksheet, err := models.NewJSON(input.BogieChecksheet)
	if err != nil {
		return nil, err
	}
	bmbc, err := models.NewJSON(input.BmbcChecksheet)
	if err != nil {
		return nil, err
	}

	sheet := models.BogieChecksheet{
		FormNumber:      input.FormNumber,
		InspectionBy:    input.InspectionBy,
		InspectionDate:  input.InspectionDate,
		Status:          StatusSaved,
		BogieDetails:    details,
		BogieChecksheet: checksheet,
		BmbcChecksheet:  bmbc,
		UserID:          userID,
	}
	if err := db.Create(&sheet).Error; err != nil {
		return nil, err
	}
	return &sheet, nil
}

// GetBogieChecksheetByFormNumber retrieves a bogie checksheet by its
// natural key.
func GetBogieChecksheetByFormNumber(db *gorm.DB, formNumber string) (*models.BogieChecksheet, error) {
	var sheet models.BogieChecksheet
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Where("form_number = ?", formNumber).
		First(&sheet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sheet, nil
}

// GetBogieChecksheet retrieves a bogie checksheet by id.
func GetBogieChecksheet(db *gorm.DB, id uint64) (*models.BogieChecksheet, error) {
	var sheet models.BogieChecksheet
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		First(&sheet, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sheet, nil
}

// ListBogieChecksheets returns a filtered page of bogie checksheets.
func ListBogieChecksheets(db *gorm.DB, filter BogieChecksheetFilter, skip, limit int) (*BogieChecksheetList, error) {
	query := applyBogieFilter(db.Model(&models.BogieChecksheet{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	query = applyBogieFilter(db.Model(&models.BogieChecksheet{}), filter)
	items := make([]models.BogieChecksheet, 0, limit)
	if err := query.Order("id").Offset(skip).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}

	return &BogieChecksheetList{Items: items, Total: total, Skip: skip, Limit: limit}, nil
}

func applyBogieFilter(query *gorm.DB, filter BogieChecksheetFilter) *gorm.DB {
	if filter.FormNumber != "" {
		query = query.Where("form_number = ?", filter.FormNumber)
	}
	if filter.InspectionBy != "" {
		query = query.Where("inspection_by = ?", filter.InspectionBy)
	}
	if filter.InspectionDate != "" {
		query = query.Where("inspection_date = ?", filter.InspectionDate)
	}
	return query
}
