package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the uniform body of every response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{Success: true, Data: data, Message: message})
}
