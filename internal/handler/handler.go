package handler

import (
	"strconv"

	"github.com/jerealeksanteri/rounds-api-sub000/pkg/apperr"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/logger"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a service error onto the JSON envelope. Anything without
// an error kind is treated as an internal failure and logged.
func respondError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		response.BadRequest(c, err.Error())
	case apperr.KindForbidden:
		response.Forbidden(c, err.Error())
	case apperr.KindNotFound:
		response.NotFound(c, err.Error())
	case apperr.KindConflict:
		response.Conflict(c, err.Error())
	default:
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		response.InternalError(c, "internal server error")
	}
}

// parseUintParam reads a numeric path parameter. Returns 0 and writes the
// error response when the parameter is missing or malformed.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
