// Package server exposes the prayer, calendar and Ramadan services over a
// JSON HTTP API.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smokyabdulrahman/prayer-planner/internal/prayer"
	"github.com/smokyabdulrahman/prayer-planner/internal/ramadan"
)

// Error is an API failure rendered as {"error": Message} with status Code.
type Error struct {
	Code    int
	Message string
}

// HandlerFunc returns the response body or an Error.
type HandlerFunc func(ctx *gin.Context) (any, *Error)

// ResolveEndpoint adapts a HandlerFunc to gin.
func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

// Controller registers HandlerFuncs on a router group.
type Controller struct {
	Group *gin.RouterGroup
}

func (c *Controller) GET(path string, h HandlerFunc)    { c.Group.GET(path, ResolveEndpoint(h)) }
func (c *Controller) POST(path string, h HandlerFunc)   { c.Group.POST(path, ResolveEndpoint(h)) }
func (c *Controller) PUT(path string, h HandlerFunc)    { c.Group.PUT(path, ResolveEndpoint(h)) }
func (c *Controller) PATCH(path string, h HandlerFunc)  { c.Group.PATCH(path, ResolveEndpoint(h)) }
func (c *Controller) DELETE(path string, h HandlerFunc) { c.Group.DELETE(path, ResolveEndpoint(h)) }

func badRequest(msg string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: msg}
}

// errorFrom maps service errors to HTTP statuses.
func errorFrom(err error) *Error {
	switch {
	case errors.Is(err, prayer.ErrRuleNotFound), errors.Is(err, ramadan.ErrDayNotFound):
		return &Error{Code: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, prayer.ErrUnknownSetting), errors.Is(err, prayer.ErrInvalidSetting),
		errors.Is(err, ramadan.ErrUnknownSetting), errors.Is(err, ramadan.ErrInvalidSetting),
		errors.Is(err, ramadan.ErrUnknownMealType):
		return badRequest(err.Error())
	default:
		return &Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}
}
