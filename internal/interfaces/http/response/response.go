package response

import (
	"github.com/gin-gonic/gin"
	domainerrors "payzen.backend/internal/domain/errors"
)

// Envelope is the uniform response shape, success and failure alike
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Success sends a success envelope
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// SuccessWithMessage sends a success envelope with a human-readable note
func SuccessWithMessage(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Envelope{Success: true, Data: data, Message: message})
}

// Error maps the error to its HTTP status and sends a failure envelope
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)
	c.JSON(appErr.Status, Envelope{
		Success: false,
		Error:   appErr.Message,
		Code:    appErr.Code,
	})
}
