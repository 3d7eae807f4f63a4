package server

import (
	"github.com/gin-gonic/gin"

	"github.com/smokyabdulrahman/prayer-planner/internal/hijri"
	"github.com/smokyabdulrahman/prayer-planner/internal/holiday"
)

type holidayCheckResponse struct {
	IsHoliday bool             `json:"isHoliday"`
	Holiday   *holiday.Holiday `json:"holiday,omitempty"`
}

type CalendarController struct {
	svc Services
}

func NewCalendarController(svc Services) *CalendarController {
	return &CalendarController{svc: svc}
}

func CalendarModule(svc Services) Module {
	ctl := NewCalendarController(svc)
	return ModuleFunc(func(c *Controller) {
		c.GET("/hijri", ctl.toHijri)
		c.GET("/gregorian", ctl.toGregorian)

		c.GET("/holidays", ctl.upcoming)
		c.GET("/holidays/all", ctl.all)
		c.GET("/holidays/check", ctl.check)

		c.GET("/sacred", ctl.sacred)
		c.GET("/observances", ctl.observances)
		c.GET("/observances/recommendations", ctl.monthly)
	})
}

// GET /api/v1/hijri?date=YYYY-MM-DD
func (cc *CalendarController) toHijri(ctx *gin.Context) (any, *Error) {
	day, apiErr := cc.svc.dateParam(ctx.Query("date"))
	if apiErr != nil {
		return nil, apiErr
	}
	return cc.svc.Prayers.Converter().ToHijri(day), nil
}

// GET /api/v1/gregorian?day=&month=&year=
func (cc *CalendarController) toGregorian(ctx *gin.Context) (any, *Error) {
	var d hijri.Date
	var apiErr *Error
	if d.Day, apiErr = intQuery(ctx, "day", 0); apiErr != nil {
		return nil, apiErr
	}
	if d.Month, apiErr = intQuery(ctx, "month", 0); apiErr != nil {
		return nil, apiErr
	}
	if d.Year, apiErr = intQuery(ctx, "year", 0); apiErr != nil {
		return nil, apiErr
	}
	if d.Day < 1 || d.Day > 30 || d.Month < 1 || d.Month > 12 || d.Year < 1 {
		return nil, badRequest("day (1-30), month (1-12) and year are required")
	}
	g := cc.svc.Prayers.Converter().ToGregorian(d)
	return gin.H{"date": g.Format(dateLayout), "weekday": g.Weekday().String()}, nil
}

// GET /api/v1/holidays?limit=5
func (cc *CalendarController) upcoming(ctx *gin.Context) (any, *Error) {
	limit, apiErr := intQuery(ctx, "limit", 5)
	if apiErr != nil {
		return nil, apiErr
	}
	return cc.svc.Holidays.Upcoming(limit), nil
}

// GET /api/v1/holidays/all
func (cc *CalendarController) all(ctx *gin.Context) (any, *Error) {
	return gin.H{"hijriYear": cc.svc.Holidays.Year(), "holidays": cc.svc.Holidays.All()}, nil
}

// GET /api/v1/holidays/check?date=YYYY-MM-DD
func (cc *CalendarController) check(ctx *gin.Context) (any, *Error) {
	day, apiErr := cc.svc.dateParam(ctx.Query("date"))
	if apiErr != nil {
		return nil, apiErr
	}
	h, ok := cc.svc.Holidays.IsHoliday(day)
	if !ok {
		return holidayCheckResponse{}, nil
	}
	return holidayCheckResponse{IsHoliday: true, Holiday: &h}, nil
}

// GET /api/v1/sacred?date=YYYY-MM-DD
func (cc *CalendarController) sacred(ctx *gin.Context) (any, *Error) {
	if ctx.Query("date") == "" {
		return cc.svc.Holidays.CurrentSacredMonth(), nil
	}
	day, apiErr := cc.svc.dateParam(ctx.Query("date"))
	if apiErr != nil {
		return nil, apiErr
	}
	return cc.svc.Holidays.SacredMonth(day), nil
}

// GET /api/v1/observances
func (cc *CalendarController) observances(ctx *gin.Context) (any, *Error) {
	return gin.H{"observances": cc.svc.Holidays.CurrentMonthObservances()}, nil
}

// GET /api/v1/observances/recommendations
func (cc *CalendarController) monthly(ctx *gin.Context) (any, *Error) {
	return cc.svc.Holidays.MonthlyRecommendations(), nil
}
