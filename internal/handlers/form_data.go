// form_data.go
//
// Token-protected generic form submission endpoints
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
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/trudransh/kpa-formsdb/internal/services"
	"github.com/trudransh/kpa-formsdb/internal/utils"
)

// FormDataHandler handles the /v1/form-data routes
type FormDataHandler struct {
	DB *gorm.DB
}

// CreateFormData handles POST /v1/form-data
// @Summary Create a form submission
// @Tags FormData
// @Accept json
// @Produce json
// @Param body body services.FormSubmissionInput true "Form submission"
// @Success 201 {object} models.FormSubmission
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /v1/form-data [post]
func (h *FormDataHandler) CreateFormData(c *fiber.Ctx) error {
	var input services.FormSubmissionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, []string{"name", "phone_number"})
	}

	fields := requiredFields(map[string]string{
		"name":         input.Name,
		"phone_number": input.PhoneNumber,
	})
	if len(fields) > 0 {
		return utils.ValidationErrorResponse(c, fields)
	}

	form, err := services.CreateFormSubmission(h.DB, input, currentUserID(c))
	if err != nil {
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "formData.create")
	}

	return c.Status(fiber.StatusCreated).JSON(form)
}

// ListFormData handles GET /v1/form-data
// @Summary List form submissions with pagination
// @Tags FormData
// @Produce json
// @Param skip query int false "Records to skip"
// @Param limit query int false "Page size"
// @Success 200 {object} services.FormSubmissionList
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /v1/form-data [get]
func (h *FormDataHandler) ListFormData(c *fiber.Ctx) error {
	skip, limit := parsePagination(c)

	list, err := services.ListFormSubmissions(h.DB, skip, limit)
	if err != nil {
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "formData.list")
	}

	return c.Status(fiber.StatusOK).JSON(list)
}

// GetFormData handles GET /v1/form-data/:id
// @Summary Get a form submission by id
// @Tags FormData
// @Produce json
// @Param id path int true "Form submission id"
// @Success 200 {object} models.FormSubmission
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /v1/form-data/{id} [get]
func (h *FormDataHandler) GetFormData(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.NotFoundResponse(c, "Form data not found")
	}

	form, err := services.GetFormSubmission(h.DB, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "Form data not found")
		}
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "formData.get")
	}

	return c.Status(fiber.StatusOK).JSON(form)
}

// UpdateFormData handles PUT /v1/form-data/:id
// @Summary Partially update a form submission
// @Description Fields absent from the body are untouched; explicit nulls clear email/address
// @Tags FormData
// @Accept json
// @Produce json
// @Param id path int true "Form submission id"
// @Param body body services.FormSubmissionPatch true "Patch"
// @Success 200 {object} models.FormSubmission
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /v1/form-data/{id} [put]
func (h *FormDataHandler) UpdateFormData(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.NotFoundResponse(c, "Form data not found")
	}

	var patch services.FormSubmissionPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ValidationErrorResponse(c, nil)
	}

	// name and phone_number are not nullable
	var nullFields []string
	if patch.Name.Set && !patch.Name.Valid {
		nullFields = append(nullFields, "name")
	}
	if patch.PhoneNumber.Set && !patch.PhoneNumber.Valid {
		nullFields = append(nullFields, "phone_number")
	}
	if len(nullFields) > 0 {
		return utils.ValidationErrorResponse(c, nullFields)
	}

	form, err := services.UpdateFormSubmission(h.DB, id, patch)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "Form data not found")
		}
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "formData.update")
	}

	return c.Status(fiber.StatusOK).JSON(form)
}

// DeleteFormData handles DELETE /v1/form-data/:id
// @Summary Delete a form submission
// @Tags FormData
// @Param id path int true "Form submission id"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /v1/form-data/{id} [delete]
func (h *FormDataHandler) DeleteFormData(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.NotFoundResponse(c, "Form data not found")
	}

	if _, err := services.DeleteFormSubmission(h.DB, id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "Form data not found")
		}
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "formData.delete")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
