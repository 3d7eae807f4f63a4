package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smokyabdulrahman/prayer-planner/internal/ramadan"
)

type meetingRequest struct {
	Start           time.Time `json:"start" binding:"required"`
	DurationMinutes int       `json:"durationMinutes"`
}

type calendarResponse struct {
	Initialized bool                 `json:"initialized"`
	Days        []ramadan.FastingDay `json:"days"`
}

type todayResponse struct {
	IsFastingDay bool                `json:"isFastingDay"`
	Day          *ramadan.FastingDay `json:"day,omitempty"`
}

type RamadanController struct {
	svc Services
}

func NewRamadanController(svc Services) *RamadanController {
	return &RamadanController{svc: svc}
}

func RamadanModule(svc Services) Module {
	ctl := NewRamadanController(svc)
	return ModuleFunc(func(c *Controller) {
		c.GET("/ramadan/status", ctl.status)
		c.POST("/ramadan/check", ctl.check)
		c.POST("/ramadan/toggle", ctl.toggle)

		c.GET("/ramadan/settings", ctl.settings)
		c.PATCH("/ramadan/settings", ctl.updateSettings)

		c.GET("/ramadan/calendar", ctl.calendar)
		c.POST("/ramadan/calendar", ctl.initializeCalendar)
		c.GET("/ramadan/today", ctl.today)
		c.POST("/ramadan/calendar/:date/complete", ctl.complete)
		c.GET("/ramadan/stats", ctl.stats)

		c.GET("/ramadan/meals/:type", ctl.meals)
		c.GET("/ramadan/notifications", ctl.notifications)
		c.POST("/ramadan/meeting", ctl.meeting)
	})
}

// GET /api/v1/ramadan/status
func (r *RamadanController) status(ctx *gin.Context) (any, *Error) {
	st, err := r.svc.Ramadan.Status(ctx.Request.Context())
	if err != nil {
		return nil, errorFrom(err)
	}
	return st, nil
}

// POST /api/v1/ramadan/check
func (r *RamadanController) check(ctx *gin.Context) (any, *Error) {
	p, err := r.svc.Ramadan.CheckPeriod(ctx.Request.Context())
	if err != nil {
		return nil, errorFrom(err)
	}
	return p, nil
}

// POST /api/v1/ramadan/toggle
func (r *RamadanController) toggle(ctx *gin.Context) (any, *Error) {
	s, err := r.svc.Ramadan.Toggle(ctx.Request.Context())
	if err != nil {
		return nil, errorFrom(err)
	}
	return s, nil
}

// GET /api/v1/ramadan/settings
func (r *RamadanController) settings(ctx *gin.Context) (any, *Error) {
	return r.svc.Ramadan.Settings(), nil
}

// PATCH /api/v1/ramadan/settings
func (r *RamadanController) updateSettings(ctx *gin.Context) (any, *Error) {
	var patch ramadan.SettingsPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		return nil, badRequest(err.Error())
	}
	s, err := r.svc.Ramadan.UpdateSettings(ctx.Request.Context(), patch)
	if err != nil {
		return nil, errorFrom(err)
	}
	return s, nil
}

// GET /api/v1/ramadan/calendar
func (r *RamadanController) calendar(ctx *gin.Context) (any, *Error) {
	days, ok, err := r.svc.Ramadan.Calendar(ctx.Request.Context())
	if err != nil {
		return nil, errorFrom(err)
	}
	if days == nil {
		days = []ramadan.FastingDay{}
	}
	return calendarResponse{Initialized: ok, Days: days}, nil
}

// POST /api/v1/ramadan/calendar
func (r *RamadanController) initializeCalendar(ctx *gin.Context) (any, *Error) {
	days, err := r.svc.Ramadan.InitializeCalendar(ctx.Request.Context())
	if err != nil {
		return nil, errorFrom(err)
	}
	return calendarResponse{Initialized: true, Days: days}, nil
}

// GET /api/v1/ramadan/today
func (r *RamadanController) today(ctx *gin.Context) (any, *Error) {
	day, ok, err := r.svc.Ramadan.TodaysFasting(ctx.Request.Context())
	if err != nil {
		return nil, errorFrom(err)
	}
	if !ok {
		return todayResponse{}, nil
	}
	return todayResponse{IsFastingDay: true, Day: &day}, nil
}

// POST /api/v1/ramadan/calendar/:date/complete
func (r *RamadanController) complete(ctx *gin.Context) (any, *Error) {
	day, apiErr := r.svc.dateParam(ctx.Param("date"))
	if apiErr != nil {
		return nil, apiErr
	}
	var c ramadan.Completion
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&c); err != nil {
			return nil, badRequest(err.Error())
		}
	}
	fd, err := r.svc.Ramadan.CompleteDay(ctx.Request.Context(), day, c)
	if err != nil {
		return nil, errorFrom(err)
	}
	return fd, nil
}

// GET /api/v1/ramadan/stats
func (r *RamadanController) stats(ctx *gin.Context) (any, *Error) {
	st, err := r.svc.Ramadan.Stats(ctx.Request.Context())
	if err != nil {
		return nil, errorFrom(err)
	}
	return st, nil
}

// GET /api/v1/ramadan/meals/:type?preference=
func (r *RamadanController) meals(ctx *gin.Context) (any, *Error) {
	t, err := ramadan.ParseMealType(ctx.Param("type"))
	if err != nil {
		return nil, errorFrom(err)
	}
	ms, err := ramadan.MealSuggestions(t, ctx.Query("preference"))
	if err != nil {
		return nil, errorFrom(err)
	}
	return ms, nil
}

// GET /api/v1/ramadan/notifications
func (r *RamadanController) notifications(ctx *gin.Context) (any, *Error) {
	return r.svc.Ramadan.SmartNotifications(ctx.Request.Context()), nil
}

// POST /api/v1/ramadan/meeting
func (r *RamadanController) meeting(ctx *gin.Context) (any, *Error) {
	var request meetingRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, badRequest(err.Error())
	}
	if request.DurationMinutes == 0 {
		request.DurationMinutes = 60
	}
	return r.svc.Ramadan.AdjustMeeting(ctx.Request.Context(), request.Start, request.DurationMinutes), nil
}
