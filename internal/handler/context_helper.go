package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/coaching-conflict-api/pkg/errors"
	"github.com/noah-isme/coaching-conflict-api/pkg/response"
)

// requireParam reads a path parameter and writes a validation error when it is blank.
func requireParam(c *gin.Context, name string) string {
	value := strings.TrimSpace(c.Param(name))
	if value == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, name+" is required"))
		return ""
	}
	return value
}
