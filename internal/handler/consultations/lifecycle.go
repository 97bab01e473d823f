// File: internal/handler/consultations/lifecycle.go
package consultations

import (
	"errors"
	"net/http"
	"strconv"

	"mamacare/internal/api"
	"mamacare/internal/database"
	"mamacare/internal/middleware"
	"mamacare/internal/model"
	"mamacare/internal/service"

	"github.com/labstack/echo/v4"
)

// AcceptHandler 醫師接受諮詢並開通視訊房間
// @Summary     Accept a consultation
// @Description 受理醫師接受請求：建立房間、簽發雙方入房 token、狀態轉 accepted
// @Tags        consultations
// @Produce     json
// @Param       id path int true "諮詢 ID"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     503 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /consultations/{id}/accept [post]
func AcceptHandler(db database.DB, video *service.Video) echo.HandlerFunc {
	return func(c echo.Context) error {
		cons, status, msg := loadConsultation(c, db)
		if status != 0 {
			return c.JSON(status, api.Error(msg))
		}

		me, ok := middleware.CurrentUserID(c)
		if !ok || cons.DoctorID != me {
			return c.JSON(http.StatusForbidden, api.Error("Only the assigned doctor can accept this consultation"))
		}
		if cons.Status != model.ConsultationPending {
			return c.JSON(http.StatusBadRequest, api.Error("Consultation is not pending"))
		}

		room, err := video.CreateRoomAndTokens(strconv.Itoa(cons.PatientID), strconv.Itoa(cons.DoctorID))
		if err != nil {
			if errors.Is(err, service.ErrVideoDisabled) {
				return c.JSON(http.StatusServiceUnavailable, api.Error("Video consultations are currently unavailable"))
			}
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		cons.Status = model.ConsultationAccepted
		cons.RoomID = room.RoomID
		cons.DoctorToken = room.DoctorToken
		cons.PatientToken = room.PatientToken
		if err := updateConsultationStatus(c.Request().Context(), db, cons); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		return c.JSON(http.StatusOK, api.OK("Consultation accepted", cons))
	}
}

// RejectHandler 醫師拒絕諮詢
// @Summary     Reject a consultation
// @Tags        consultations
// @Produce     json
// @Param       id path int true "諮詢 ID"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /consultations/{id}/reject [post]
func RejectHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		cons, status, msg := loadConsultation(c, db)
		if status != 0 {
			return c.JSON(status, api.Error(msg))
		}

		me, ok := middleware.CurrentUserID(c)
		if !ok || cons.DoctorID != me {
			return c.JSON(http.StatusForbidden, api.Error("Only the assigned doctor can reject this consultation"))
		}
		if cons.Status != model.ConsultationPending {
			return c.JSON(http.StatusBadRequest, api.Error("Consultation is not pending"))
		}

		cons.Status = model.ConsultationRejected
		if err := updateConsultationStatus(c.Request().Context(), db, cons); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		return c.JSON(http.StatusOK, api.OK("Consultation rejected", cons))
	}
}

// CompleteHandler 結束諮詢
// @Summary     Complete a consultation
// @Description 任一參與者將已接受的諮詢標記為完成
// @Tags        consultations
// @Produce     json
// @Param       id path int true "諮詢 ID"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /consultations/{id}/complete [post]
func CompleteHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		cons, status, msg := loadConsultation(c, db)
		if status != 0 {
			return c.JSON(status, api.Error(msg))
		}

		me, ok := middleware.CurrentUserID(c)
		if !ok || (cons.DoctorID != me && cons.PatientID != me) {
			return c.JSON(http.StatusForbidden, api.Error("Access denied. You can only access your own resources."))
		}
		if cons.Status != model.ConsultationAccepted {
			return c.JSON(http.StatusBadRequest, api.Error("Consultation is not in progress"))
		}

		cons.Status = model.ConsultationCompleted
		if err := updateConsultationStatus(c.Request().Context(), db, cons); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		return c.JSON(http.StatusOK, api.OK("Consultation completed", cons))
	}
}
