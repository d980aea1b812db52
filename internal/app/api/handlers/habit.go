package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/atomictrack/atomictrack/internal/app/service/habit"
	"github.com/atomictrack/atomictrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// habitErrorCode maps service errors to envelope codes. Unknown errors fall
// through to the generic error code.
func habitErrorCode(err error) response.APIResponseCode {
	switch {
	case errors.Is(err, habit.ErrHabitNotFound):
		return response.APIResponseCodeNotFound
	case errors.Is(err, habit.ErrConflict):
		return response.APIResponseCodeConflict
	case errors.Is(err, habit.ErrAlreadyCompleted),
		errors.Is(err, habit.ErrNotCompletedToday),
		errors.Is(err, habit.ErrInactive):
		return response.APIResponseCodeBadRequest
	default:
		return response.APIResponseCodeError
	}
}

// @Summary      Create Habit
// @Description  Creates a new habit for the authenticated user.
// @Tags         Habit
// @Accept       json
// @Produce      json
// @Param        request body habit.CreateInput true "Habit attributes"
// @Success      200  {object}  handlers.RespHabit
// @Router       /api/v1/habits [post]
func ApiCreateHabit(mgr habit.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in habit.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		h, err := mgr.Create(c.Request.Context(), userIDFrom(c), in)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](habitErrorCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(h))
	}
}

// @Summary      List Habits
// @Description  Returns the user's habits with query-string pagination.
// @Tags         Habit
// @Produce      json
// @Param        from query int false "Offset"
// @Param        size query int false "Page size"
// @Success      200  {object}  handlers.RespHabitList
// @Router       /api/v1/habits [get]
func ApiListHabits(mgr habit.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := &habit.ScanHabitsRequest{Size: 50}
		if v := c.Query("from"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				req.From = n
			}
		}
		if v := c.Query("size"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid size"))
				return
			}
			req.Size = n
		}
		res, err := mgr.Scan(c.Request.Context(), userIDFrom(c), req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Scan Habits
// @Description  Paginated, filterable habit listing.
// @Tags         Habit
// @Accept       json
// @Produce      json
// @Param        request body habit.ScanHabitsRequest true "Filters, pagination and sorting"
// @Success      200  {object}  handlers.RespHabitList
// @Router       /api/v1/habits/scan [post]
func ApiScanHabits(mgr habit.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req habit.ScanHabitsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := mgr.Scan(c.Request.Context(), userIDFrom(c), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Get Habit
// @Tags         Habit
// @Produce      json
// @Param        id path string true "Habit ID"
// @Success      200  {object}  handlers.RespHabit
// @Router       /api/v1/habits/{id} [get]
func ApiGetHabit(mgr habit.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		h, err := mgr.Get(c.Request.Context(), userIDFrom(c), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](habitErrorCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(h))
	}
}

// @Summary      Update Habit
// @Description  Partially updates habit attributes, including status changes for archive and pause.
// @Tags         Habit
// @Accept       json
// @Produce      json
// @Param        id path string true "Habit ID"
// @Param        request body habit.UpdateInput true "Fields to update"
// @Success      200  {object}  handlers.RespHabit
// @Router       /api/v1/habits/{id} [patch]
func ApiUpdateHabit(mgr habit.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in habit.UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		h, err := mgr.Update(c.Request.Context(), userIDFrom(c), c.Param("id"), in)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](habitErrorCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(h))
	}
}

// @Summary      Delete Habit
// @Description  Removes a habit and its completion history.
// @Tags         Habit
// @Produce      json
// @Param        id path string true "Habit ID"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/habits/{id} [delete]
func ApiDeleteHabit(mgr habit.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := mgr.Delete(c.Request.Context(), userIDFrom(c), c.Param("id")); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](habitErrorCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

// @Summary      Complete Habit
// @Description  Marks the habit completed for today, updates streaks and awards XP in one transaction.
// @Tags         Habit
// @Produce      json
// @Param        id path string true "Habit ID"
// @Success      200  {object}  handlers.RespCompletion
// @Router       /api/v1/habits/{id}/complete [post]
func ApiCompleteHabit(mgr habit.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := mgr.Complete(c.Request.Context(), userIDFrom(c), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](habitErrorCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Undo Habit Completion
// @Description  Reverses today's completion and removes the XP it awarded. Rejected if the habit was not completed today.
// @Tags         Habit
// @Produce      json
// @Param        id path string true "Habit ID"
// @Success      200  {object}  handlers.RespCompletion
// @Router       /api/v1/habits/{id}/undo [post]
func ApiUndoHabit(mgr habit.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := mgr.Undo(c.Request.Context(), userIDFrom(c), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](habitErrorCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterHabitRoutes(r gin.IRouter, mgr habit.Manager) {
	r.POST("/habits", ApiCreateHabit(mgr))
	r.GET("/habits", ApiListHabits(mgr))
	r.POST("/habits/scan", ApiScanHabits(mgr))
	r.GET("/habits/:id", ApiGetHabit(mgr))
	r.PATCH("/habits/:id", ApiUpdateHabit(mgr))
	r.DELETE("/habits/:id", ApiDeleteHabit(mgr))
	r.POST("/habits/:id/complete", ApiCompleteHabit(mgr))
	r.POST("/habits/:id/undo", ApiUndoHabit(mgr))
}
