// File: internal/handler/vaccinations/list.go
package vaccinations

import (
	"context"
	"net/http"
	"time"

	"mamacare/internal/api"
	"mamacare/internal/database"
	"mamacare/internal/middleware"
	"mamacare/internal/model"
	"mamacare/internal/worker"

	"github.com/labstack/echo/v4"
)

// ListHandler 列出目前使用者的疫苗提醒
// @Summary     List vaccination reminders
// @Description 依到期日列出目前使用者的全部提醒，並於背景掃描逾期狀態
// @Tags        vaccinations
// @Produce     json
// @Success     200 {object} api.Response
// @Failure     401 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /vaccinations [get]
func ListHandler(db database.DB, pool worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		me, ok := middleware.CurrentUserID(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Error("Authentication required"))
		}

		// 逾期掃描走 worker pool，不拖慢請求；佇列滿了就等下次列表再掃
		logger := c.Logger()
		pool.Submit(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if _, err := markOverdueVaccinations(ctx, db, me); err != nil {
				logger.Errorf("overdue sweep for user %d: %v", me, err)
			}
		})

		list, err := listVaccinations(c.Request().Context(), db, me)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		// 本次回應即時反映逾期，不等背景掃描落地
		now := timeNow()
		for i := range list {
			if list[i].IsOverdue(now) {
				list[i].Status = model.VaccinationOverdue
			}
		}

		return c.JSON(http.StatusOK, api.OK("", list))
	}
}
