package server

import (
	"github.com/gin-gonic/gin"

	"github.com/smokyabdulrahman/prayer-planner/internal/prayer"
)

type setSettingRequest struct {
	Value string `json:"value"`
}

type SettingsController struct {
	svc Services
}

func NewSettingsController(svc Services) *SettingsController {
	return &SettingsController{svc: svc}
}

func SettingsModule(svc Services) Module {
	ctl := NewSettingsController(svc)
	return ModuleFunc(func(c *Controller) {
		c.GET("/settings", ctl.get)
		c.PATCH("/settings", ctl.update)
		c.PUT("/settings/:key", ctl.set)
		c.POST("/settings/reset", ctl.reset)

		c.GET("/rules", ctl.listRules)
		c.POST("/rules", ctl.addRule)
		c.PATCH("/rules/:id", ctl.updateRule)
		c.DELETE("/rules/:id", ctl.deleteRule)
		c.POST("/rules/:id/toggle", ctl.toggleRule)
	})
}

// GET /api/v1/settings
func (s *SettingsController) get(ctx *gin.Context) (any, *Error) {
	return s.svc.Prayers.Settings(), nil
}

// PATCH /api/v1/settings
func (s *SettingsController) update(ctx *gin.Context) (any, *Error) {
	var patch prayer.SettingsPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		return nil, badRequest(err.Error())
	}
	settings, err := s.svc.Prayers.UpdateSettings(ctx.Request.Context(), patch)
	if err != nil {
		return nil, errorFrom(err)
	}
	return settings, nil
}

// PUT /api/v1/settings/:key
func (s *SettingsController) set(ctx *gin.Context) (any, *Error) {
	var request setSettingRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, badRequest(err.Error())
	}
	settings, err := s.svc.Prayers.SetSetting(ctx.Request.Context(), ctx.Param("key"), request.Value)
	if err != nil {
		return nil, errorFrom(err)
	}
	return settings, nil
}

// POST /api/v1/settings/reset
func (s *SettingsController) reset(ctx *gin.Context) (any, *Error) {
	settings, err := s.svc.Prayers.ResetSettings(ctx.Request.Context())
	if err != nil {
		return nil, errorFrom(err)
	}
	return settings, nil
}

// GET /api/v1/rules
func (s *SettingsController) listRules(ctx *gin.Context) (any, *Error) {
	return s.svc.Prayers.Rules(), nil
}

// POST /api/v1/rules
func (s *SettingsController) addRule(ctx *gin.Context) (any, *Error) {
	var rule prayer.Rule
	if err := ctx.ShouldBindJSON(&rule); err != nil {
		return nil, badRequest(err.Error())
	}
	created, err := s.svc.Prayers.AddRule(ctx.Request.Context(), rule)
	if err != nil {
		return nil, errorFrom(err)
	}
	return created, nil
}

// PATCH /api/v1/rules/:id
func (s *SettingsController) updateRule(ctx *gin.Context) (any, *Error) {
	var patch prayer.RulePatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		return nil, badRequest(err.Error())
	}
	updated, err := s.svc.Prayers.UpdateRule(ctx.Request.Context(), ctx.Param("id"), patch)
	if err != nil {
		return nil, errorFrom(err)
	}
	return updated, nil
}

// DELETE /api/v1/rules/:id
func (s *SettingsController) deleteRule(ctx *gin.Context) (any, *Error) {
	if err := s.svc.Prayers.DeleteRule(ctx.Request.Context(), ctx.Param("id")); err != nil {
		return nil, errorFrom(err)
	}
	return gin.H{"deleted": ctx.Param("id")}, nil
}

// POST /api/v1/rules/:id/toggle
func (s *SettingsController) toggleRule(ctx *gin.Context) (any, *Error) {
	rule, err := s.svc.Prayers.ToggleRule(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		return nil, errorFrom(err)
	}
	return rule, nil
}
