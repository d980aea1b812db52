package handlers

import (
	"github.com/atomictrack/atomictrack/internal/app/service/habit"
	"github.com/atomictrack/atomictrack/internal/app/service/stats"
	models "github.com/atomictrack/atomictrack/internal/models"
	"github.com/atomictrack/atomictrack/pkg/levels"
	"github.com/atomictrack/atomictrack/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespHabit wraps a single habit in the standard envelope.
type RespHabit struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.Habit             `json:"data"`
}

// RespHabitList wraps a habit listing in the standard envelope.
type RespHabitList struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    habit.ScanHabitsResponse `json:"data"`
}

// RespCompletion wraps a complete/undo result in the standard envelope.
type RespCompletion struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    habit.CompletionResult   `json:"data"`
}

// RespStatsSummary wraps the cross-habit statistics in the standard envelope.
type RespStatsSummary struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    stats.Summary            `json:"data"`
}

// RespWeeklyStats wraps the weekly completion series in the standard envelope.
type RespWeeklyStats struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []stats.WeeklyDataItem   `json:"data"`
}

// RespProfile wraps the composed profile view in the standard envelope.
type RespProfile struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    ProfileResponse          `json:"data"`
}

// RespLevels wraps the level tier table in the standard envelope.
type RespLevels struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []levels.Tier            `json:"data"`
}
