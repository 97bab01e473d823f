// File: internal/handler/vaccinations/record.go
package vaccinations

import (
	"net/http"
	"strconv"

	"mamacare/internal/api"
	"mamacare/internal/database"

	"github.com/labstack/echo/v4"
)

// GetHandler 取得單筆疫苗提醒
// @Summary     Get a vaccination reminder
// @Tags        vaccinations
// @Produce     json
// @Param       id path int true "提醒 ID"
// @Success     200 {object} api.Response
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /vaccinations/{id} [get]
func GetHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid reminder ID"))
		}

		v, status, msg := loadOwned(c, db, id)
		if status != 0 {
			return c.JSON(status, api.Error(msg))
		}

		return c.JSON(http.StatusOK, api.OK("", v))
	}
}

// UpdateHandler 更新疫苗提醒
// @Summary     Update a vaccination reminder
// @Description 部分更新提醒欄位；狀態規則於儲存前重新套用
// @Tags        vaccinations
// @Accept      json
// @Produce     json
// @Param       id      path int                          true "提醒 ID"
// @Param       request body api.UpdateVaccinationRequest true "更新內容"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /vaccinations/{id} [put]
func UpdateHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid reminder ID"))
		}

		var req api.UpdateVaccinationRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid request payload"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{
				Success: false,
				Error:   "Validation failed",
				Details: api.ValidationDetails(err),
			})
		}

		v, status, msg := loadOwned(c, db, id)
		if status != 0 {
			return c.JSON(status, api.Error(msg))
		}

		if req.Name != "" {
			v.Name = req.Name
		}
		if req.DueDate != nil {
			v.DueDate = *req.DueDate
		}
		if req.Status != "" {
			v.Status = req.Status
		}
		if req.Notes != nil {
			v.Notes = *req.Notes
		}
		if req.AgeGroup != "" {
			v.AgeGroup = req.AgeGroup
		}
		if req.Category != "" {
			v.Category = req.Category
		}
		if req.CompletedDate != nil {
			v.CompletedDate = req.CompletedDate
		}
		if req.ReminderEnabled != nil {
			v.ReminderEnabled = *req.ReminderEnabled
		}
		if req.DaysBeforeReminder != nil {
			v.DaysBeforeReminder = *req.DaysBeforeReminder
		}
		if req.ProviderName != nil {
			v.ProviderName = *req.ProviderName
		}
		if req.ProviderContact != nil {
			v.ProviderContact = *req.ProviderContact
		}
		if req.BatchNumber != nil {
			v.BatchNumber = *req.BatchNumber
		}
		if req.Manufacturer != nil {
			v.Manufacturer = *req.Manufacturer
		}
		if req.SideEffects != nil {
			v.SideEffects = *req.SideEffects
		}
		if req.NextDueDate != nil {
			v.NextDueDate = req.NextDueDate
		}
		v.Normalize(timeNow())

		if err := updateVaccination(c.Request().Context(), db, v); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		return c.JSON(http.StatusOK, api.OK("Vaccination reminder updated successfully", v))
	}
}

// DeleteHandler 刪除疫苗提醒
// @Summary     Delete a vaccination reminder
// @Tags        vaccinations
// @Produce     json
// @Param       id path int true "提醒 ID"
// @Success     200 {object} api.Response
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /vaccinations/{id} [delete]
func DeleteHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid reminder ID"))
		}

		if _, status, msg := loadOwned(c, db, id); status != 0 {
			return c.JSON(status, api.Error(msg))
		}

		if err := deleteVaccination(c.Request().Context(), db, id); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		return c.JSON(http.StatusOK, api.OK("Vaccination reminder deleted successfully", nil))
	}
}
