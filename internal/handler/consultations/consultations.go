// File: internal/handler/consultations/consultations.go
package consultations

import (
	"errors"
	"net/http"
	"strconv"

	"mamacare/internal/api"
	"mamacare/internal/database"
	"mamacare/internal/middleware"
	"mamacare/internal/model"
	"mamacare/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	createConsultation       = store.CreateConsultation
	getConsultationByID      = store.GetConsultationByID
	listConsultationsForUser = store.ListConsultationsForUser
	updateConsultationStatus = store.UpdateConsultationStatus
	getUserByID              = store.GetUserByID
)

// loadConsultation 依路徑參數取出諮詢。status 非零時呼叫端應回應該狀態碼。
func loadConsultation(c echo.Context, db database.DB) (cons *model.Consultation, status int, msg string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, http.StatusBadRequest, "invalid consultation ID"
	}
	cons, err = getConsultationByID(c.Request().Context(), db, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, http.StatusNotFound, "Consultation not found"
		}
		return nil, http.StatusInternalServerError, "Internal server error"
	}
	return cons, 0, ""
}

// CreateHandler 建立諮詢請求
// @Summary     Request a consultation
// @Description 病患向指定醫師發出視訊諮詢請求，初始狀態為 pending
// @Tags        consultations
// @Accept      json
// @Produce     json
// @Param       request body api.CreateConsultationRequest true "諮詢對象"
// @Success     201 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /consultations [post]
func CreateHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateConsultationRequest
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
		if req.DoctorID == me {
			return c.JSON(http.StatusBadRequest, api.Error("Cannot request a consultation with yourself"))
		}

		ctx := c.Request().Context()
		if _, err := getUserByID(ctx, db, req.DoctorID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.Error("Doctor not found"))
			}
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		cons := &model.Consultation{
			PatientID: me,
			DoctorID:  req.DoctorID,
			Status:    model.ConsultationPending,
		}
		cons, err := createConsultation(ctx, db, cons)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		return c.JSON(http.StatusCreated, api.OK("Consultation requested successfully", cons))
	}
}

// ListHandler 列出我的諮詢
// @Summary     List my consultations
// @Description 列出目前使用者以病患或醫師身分參與的諮詢
// @Tags        consultations
// @Produce     json
// @Success     200 {object} api.Response
// @Failure     401 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /consultations [get]
func ListHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		me, ok := middleware.CurrentUserID(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Error("Authentication required"))
		}

		list, err := listConsultationsForUser(c.Request().Context(), db, me)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		return c.JSON(http.StatusOK, api.OK("", list))
	}
}
