package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/pkg/validation"
)

// BindJSON binds and validates the JSON body into obj. On failure it writes the 422
// envelope and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleAPIError(c, validation.FromBindError(err))
		return false
	}
	return true
}

// BindForm binds multipart or url-encoded form fields into obj.
func BindForm(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBind(obj); err != nil {
		HandleAPIError(c, validation.FromBindError(err))
		return false
	}
	return true
}
