// File: internal/handler/vaccinations/vaccinations.go
package vaccinations

import (
	"errors"
	"net/http"
	"time"

	"mamacare/internal/database"
	"mamacare/internal/middleware"
	"mamacare/internal/model"
	"mamacare/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	timeNow                 = time.Now
	createVaccination       = store.CreateVaccination
	getVaccinationByID      = store.GetVaccinationByID
	listVaccinations        = store.ListVaccinations
	updateVaccination       = store.UpdateVaccination
	deleteVaccination       = store.DeleteVaccination
	markOverdueVaccinations = store.MarkOverdueVaccinations
)

// loadOwned 取出紀錄並確認屬於目前使用者。
// status 非零時表示呼叫端應以該狀態碼與訊息回應。
func loadOwned(c echo.Context, db database.DB, id int) (v *model.Vaccination, status int, msg string) {
	v, err := getVaccinationByID(c.Request().Context(), db, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, http.StatusNotFound, "Vaccination reminder not found"
		}
		return nil, http.StatusInternalServerError, "Internal server error"
	}
	me, ok := middleware.CurrentUserID(c)
	if !ok || v.UserID != me {
		return nil, http.StatusForbidden, "Access denied. You can only access your own resources."
	}
	return v, 0, ""
}
