package handler

import "github.com/gin-gonic/gin"

// ErrorResponse is the error envelope used by every endpoint.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

func abortWithError(c *gin.Context, status int, msg, description string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:            msg,
		ErrorDescription: description,
	})
}
