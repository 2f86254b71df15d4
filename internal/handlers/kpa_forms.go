// kpa_forms.go
//
// KPA inspection form endpoints with the {success, message, data} envelope
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

package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/trudransh/kpa-formsdb/internal/models"
	"github.com/trudransh/kpa-formsdb/internal/services"
	"github.com/trudransh/kpa-formsdb/internal/utils"
)

// KPAFormsHandler handles the /api/forms routes
type KPAFormsHandler struct {
	DB *gorm.DB
}

// CreateWheelSpecification handles POST /api/forms/wheel-specifications
// @Summary Submit a wheel specification form
// @Tags KPAForms
// @Accept json
// @Produce json
// @Param body body services.WheelSpecificationInput true "Wheel specification"
// @Success 201 {object} utils.EnvelopeResponseStruct
// @Failure 400 {object} utils.EnvelopeResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /api/forms/wheel-specifications [post]
func (h *KPAFormsHandler) CreateWheelSpecification(c *fiber.Ctx) error {
	var input services.WheelSpecificationInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, []string{"formNumber", "submittedBy", "submittedDate"})
	}

	fields := requiredFields(map[string]string{
		"formNumber":    input.FormNumber,
		"submittedBy":   input.SubmittedBy,
		"submittedDate": input.SubmittedDate,
	})
	if len(fields) > 0 {
		return utils.ValidationErrorResponse(c, fields)
	}

	spec, err := services.CreateWheelSpecification(h.DB, input, currentUserID(c))
	if err != nil {
		if ce, ok := services.IsConflict(err); ok {
			return utils.EnvelopeErrorResponse(c, fiber.StatusBadRequest,
				fmt.Sprintf("Form number %s already exists", ce.Key))
		}
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "kpaForms.wheelSpec.create")
	}

	return utils.EnvelopeResponse(c, fiber.StatusCreated,
		"Wheel specification submitted successfully.", fiber.Map{
			"formNumber":    spec.FormNumber,
			"submittedBy":   spec.SubmittedBy,
			"submittedDate": spec.SubmittedDate,
			"status":        spec.Status,
		})
}

// ListWheelSpecifications handles GET /api/forms/wheel-specifications
// @Summary List wheel specification forms with optional exact-match filters
// @Tags KPAForms
// @Produce json
// @Param formNumber query string false "Filter by form number"
// @Param submittedBy query string false "Filter by submitter"
// @Param submittedDate query string false "Filter by submitted date"
// @Param skip query int false "Records to skip"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.EnvelopeResponseStruct
// @Router /api/forms/wheel-specifications [get]
func (h *KPAFormsHandler) ListWheelSpecifications(c *fiber.Ctx) error {
	filter := services.WheelSpecificationFilter{
		FormNumber:    c.Query("formNumber"),
		SubmittedBy:   c.Query("submittedBy"),
		SubmittedDate: c.Query("submittedDate"),
	}
	skip, limit := parsePagination(c)

	list, err := services.ListWheelSpecifications(h.DB, filter, skip, limit)
	if err != nil {
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "kpaForms.wheelSpec.list")
	}

	data := make([]fiber.Map, 0, len(list.Items))
	for _, item := range list.Items {
		data = append(data, fiber.Map{
			"formNumber":    item.FormNumber,
			"submittedBy":   item.SubmittedBy,
			"submittedDate": item.SubmittedDate,
			"status":        item.Status,
			"fields":        item.Fields.Map(),
		})
	}

	message := "All wheel specification forms fetched successfully."
	if filter.Any() {
		message = "Filtered wheel specification forms fetched successfully."
	}

	return utils.EnvelopeResponse(c, fiber.StatusOK, message, data)
}

// CreateBogieChecksheet handles POST /api/forms/bogie-checksheet
// @Summary Submit a bogie checksheet form
// @Tags KPAForms
// @Accept json
// @Produce json
// @Param body body services.BogieChecksheetInput true "Bogie checksheet"
// @Success 201 {object} utils.EnvelopeResponseStruct
// @Failure 400 {object} utils.EnvelopeResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /api/forms/bogie-checksheet [post]
func (h *KPAFormsHandler) CreateBogieChecksheet(c *fiber.Ctx) error {
	var input services.BogieChecksheetInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, []string{"formNumber", "inspectionBy", "inspectionDate"})
	}

	fields := requiredFields(map[string]string{
		"formNumber":     input.FormNumber,
		"inspectionBy":   input.InspectionBy,
		"inspectionDate": input.InspectionDate,
	})
	if len(fields) > 0 {
		return utils.ValidationErrorResponse(c, fields)
	}

	sheet, err := services.CreateBogieChecksheet(h.DB, input, currentUserID(c))
	if err != nil {
		if ce, ok := services.IsConflict(err); ok {
			return utils.EnvelopeErrorResponse(c, fiber.StatusBadRequest,
				fmt.Sprintf("Form number %s already exists", ce.Key))
		}
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "kpaForms.bogieChecksheet.create")
	}

	return utils.EnvelopeResponse(c, fiber.StatusCreated,
		"Bogie checksheet submitted successfully.", fiber.Map{
			"formNumber":     sheet.FormNumber,
			"inspectionBy":   sheet.InspectionBy,
			"inspectionDate": sheet.InspectionDate,
			"status":         sheet.Status,
		})
}

// ListBogieChecksheets handles GET /api/forms/bogie-checksheet
// @Summary List bogie checksheet forms with optional exact-match filters
// @Tags KPAForms
// @Produce json
// @Param formNumber query string false "Filter by form number"
// @Param inspectionBy query string false "Filter by inspector"
// @Param inspectionDate query string false "Filter by inspection date"
// @Param skip query int false "Records to skip"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.EnvelopeResponseStruct
// @Router /api/forms/bogie-checksheet [get]
func (h *KPAFormsHandler) ListBogieChecksheets(c *fiber.Ctx) error {
	filter := services.BogieChecksheetFilter{
		FormNumber:     c.Query("formNumber"),
		InspectionBy:   c.Query("inspectionBy"),
		InspectionDate: c.Query("inspectionDate"),
	}
	skip, limit := parsePagination(c)

	list, err := services.ListBogieChecksheets(h.DB, filter, skip, limit)
	if err != nil {
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "kpaForms.bogieChecksheet.list")
	}

	data := make([]fiber.Map, 0, len(list.Items))
	for _, item := range list.Items {
		data = append(data, bogieChecksheetView(item))
	}

	message := "All bogie checksheet forms fetched successfully."
	if filter.Any() {
		message = "Filtered bogie checksheet forms fetched successfully."
	}

	return utils.EnvelopeResponse(c, fiber.StatusOK, message, data)
}

// bogieChecksheetView shapes a stored bogie checksheet with its full nested
// blobs for listing responses.
func bogieChecksheetView(item models.BogieChecksheet) fiber.Map {
	return fiber.Map{
		"formNumber":      item.FormNumber,
		"inspectionBy":    item.InspectionBy,
		"inspectionDate":  item.InspectionDate,
		"status":          item.Status,
		"bogieDetails":    item.BogieDetails.Map(),
		"bogieChecksheet": item.BogieChecksheet.Map(),
		"bmbcChecksheet":  item.BmbcChecksheet.Map(),
	}
}
