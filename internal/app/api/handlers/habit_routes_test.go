package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/atomictrack/atomictrack/internal/app/service/habit"
	models "github.com/atomictrack/atomictrack/internal/models"
)

func TestRegisterHabitRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/v1")
	RegisterHabitRoutes(g, nil)

	routes := r.Routes()
	contains := func(target string) bool {
		for _, rt := range routes {
			if rt.Method+" "+rt.Path == target {
				return true
			}
		}
		return false
	}

	require.True(t, contains("POST /api/v1/habits"))
	require.True(t, contains("GET /api/v1/habits"))
	require.True(t, contains("POST /api/v1/habits/scan"))
	require.True(t, contains("GET /api/v1/habits/:id"))
	require.True(t, contains("PATCH /api/v1/habits/:id"))
	require.True(t, contains("DELETE /api/v1/habits/:id"))
	require.True(t, contains("POST /api/v1/habits/:id/complete"))
	require.True(t, contains("POST /api/v1/habits/:id/undo"))
}

type stubHabitMgr struct {
	undoErr     error
	undoCalls   int
	deleteCalls int
}

func (s *stubHabitMgr) Create(_ context.Context, _ string, _ habit.CreateInput) (*models.Habit, error) {
	panic("not used")
}

func (s *stubHabitMgr) Get(_ context.Context, _ string, _ string) (*models.Habit, error) {
	panic("not used")
}

func (s *stubHabitMgr) Scan(_ context.Context, _ string, _ *habit.ScanHabitsRequest) (*habit.ScanHabitsResponse, error) {
	panic("not used")
}

func (s *stubHabitMgr) Update(_ context.Context, _ string, _ string, _ habit.UpdateInput) (*models.Habit, error) {
	panic("not used")
}

func (s *stubHabitMgr) Delete(_ context.Context, _ string, _ string) error {
	s.deleteCalls++
	return nil
}

func (s *stubHabitMgr) Complete(_ context.Context, _ string, _ string) (*habit.CompletionResult, error) {
	panic("not used")
}

func (s *stubHabitMgr) Undo(_ context.Context, _ string, _ string) (*habit.CompletionResult, error) {
	s.undoCalls++
	return nil, s.undoErr
}

func TestApiUndoHabit_RejectedWhenNotCompletedToday(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := &stubHabitMgr{undoErr: habit.ErrNotCompletedToday}
	r := gin.New()
	r.POST("/api/v1/habits/:id/undo", ApiUndoHabit(mgr))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/habits/h1/undo", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":40000`)
	require.Contains(t, w.Body.String(), "not completed today")
	require.Equal(t, 1, mgr.undoCalls)
	require.Zero(t, mgr.deleteCalls)
}

func TestApiUndoHabit_ConflictCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := &stubHabitMgr{undoErr: habit.ErrConflict}
	r := gin.New()
	r.POST("/api/v1/habits/:id/undo", ApiUndoHabit(mgr))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/habits/h1/undo", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":40900`)
}
