// File: internal/handler/vaccinations/create.go
package vaccinations

import (
	"net/http"

	"mamacare/internal/api"
	"mamacare/internal/database"
	"mamacare/internal/middleware"
	"mamacare/internal/model"

	"github.com/labstack/echo/v4"
)

// CreateHandler 建立疫苗提醒
// @Summary     Create a vaccination reminder
// @Description 為目前使用者建立一筆疫苗接種提醒
// @Tags        vaccinations
// @Accept      json
// @Produce     json
// @Param       request body api.CreateVaccinationRequest true "提醒內容"
// @Success     201 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /vaccinations [post]
func CreateHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateVaccinationRequest
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

		me, ok := middleware.CurrentUserID(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Error("Authentication required"))
		}

		v := &model.Vaccination{
			UserID:             me,
			Name:               req.Name,
			DueDate:            req.DueDate,
			Status:             req.Status,
			Notes:              req.Notes,
			AgeGroup:           req.AgeGroup,
			Category:           req.Category,
			CompletedDate:      req.CompletedDate,
			ReminderEnabled:    true,
			DaysBeforeReminder: 7,
			ProviderName:       req.ProviderName,
			ProviderContact:    req.ProviderContact,
			BatchNumber:        req.BatchNumber,
			Manufacturer:       req.Manufacturer,
			SideEffects:        req.SideEffects,
			NextDueDate:        req.NextDueDate,
		}
		if v.Status == "" {
			v.Status = model.VaccinationUpcoming
		}
		if v.Category == "" {
			v.Category = "routine"
		}
		if req.ReminderEnabled != nil {
			v.ReminderEnabled = *req.ReminderEnabled
		}
		if req.DaysBeforeReminder != nil {
			v.DaysBeforeReminder = *req.DaysBeforeReminder
		}
		v.Normalize(timeNow())

		v, err := createVaccination(c.Request().Context(), db, v)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		return c.JSON(http.StatusCreated, api.OK("Vaccination reminder created successfully", v))
	}
}
