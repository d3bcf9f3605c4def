package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body sent for every failed request.
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// StatusResponse is the JSON body for successes that carry no payload.
type StatusResponse struct {
	Status string `json:"status"`
}

// SendErrorResponse sends an error JSON response using gin.Context.
func SendErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{
		Status: "error",
		Error:  message,
	})
}

// SendStatusResponse sends a bare {"status": "..."} JSON response.
func SendStatusResponse(c *gin.Context, statusCode int, status string) {
	c.JSON(statusCode, StatusResponse{
		Status: status,
	})
}
