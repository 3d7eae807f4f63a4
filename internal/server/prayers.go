package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smokyabdulrahman/prayer-planner/internal/prayer"
)

type conflictRequest struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

type recommendRequest struct {
	DurationMinutes int      `json:"durationMinutes"`
	PreferredTimes  []string `json:"preferredTimes"`
	Date            string   `json:"date"` // YYYY-MM-DD, empty for today
}

type nextResponse struct {
	Prayer           prayer.Time `json:"prayer"`
	RemainingSeconds int64       `json:"remainingSeconds"`
	Remaining        string      `json:"remaining"`
	Tomorrow         bool        `json:"tomorrow"`
}

type PrayerController struct {
	svc Services
}

func NewPrayerController(svc Services) *PrayerController {
	return &PrayerController{svc: svc}
}

func PrayerModule(svc Services) Module {
	ctl := NewPrayerController(svc)
	return ModuleFunc(func(c *Controller) {
		c.GET("/prayers", ctl.times)
		c.GET("/prayers/next", ctl.next)
		c.GET("/qibla", ctl.qibla)
		c.GET("/methods", ctl.methods)
		c.POST("/conflicts", ctl.conflicts)
		c.POST("/recommendations", ctl.recommendations)
	})
}

// GET /api/v1/prayers?date=YYYY-MM-DD
func (p *PrayerController) times(ctx *gin.Context) (any, *Error) {
	day, apiErr := p.svc.dateParam(ctx.Query("date"))
	if apiErr != nil {
		return nil, apiErr
	}
	return p.svc.Prayers.Times(ctx.Request.Context(), day), nil
}

// GET /api/v1/prayers/next
func (p *PrayerController) next(ctx *gin.Context) (any, *Error) {
	n := p.svc.Prayers.NextPrayer(ctx.Request.Context())
	return nextResponse{
		Prayer:           n.Prayer,
		RemainingSeconds: int64(n.Remaining.Seconds()),
		Remaining:        prayer.FormatRemaining(n.Remaining),
		Tomorrow:         n.Tomorrow,
	}, nil
}

// GET /api/v1/qibla
func (p *PrayerController) qibla(ctx *gin.Context) (any, *Error) {
	return gin.H{"direction": p.svc.Prayers.QiblaDirection(ctx.Request.Context())}, nil
}

// GET /api/v1/methods
func (p *PrayerController) methods(ctx *gin.Context) (any, *Error) {
	return gin.H{
		"current": p.svc.Prayers.Settings().Method,
		"methods": prayer.CalculationMethods,
	}, nil
}

// POST /api/v1/conflicts
func (p *PrayerController) conflicts(ctx *gin.Context) (any, *Error) {
	var request conflictRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, badRequest(err.Error())
	}
	return p.svc.Prayers.CheckConflict(ctx.Request.Context(), request.Start, request.End), nil
}

// POST /api/v1/recommendations
func (p *PrayerController) recommendations(ctx *gin.Context) (any, *Error) {
	var request recommendRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, badRequest(err.Error())
	}
	day, apiErr := p.svc.dateParam(request.Date)
	if apiErr != nil {
		return nil, apiErr
	}
	if request.DurationMinutes == 0 {
		request.DurationMinutes = 60
	}
	return p.svc.Prayers.Recommendations(ctx.Request.Context(), request.DurationMinutes, request.PreferredTimes, day), nil
}
