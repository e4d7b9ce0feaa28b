package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the uniform structure for API failures.
type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// MessageResponse is returned by endpoints that only acknowledge an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// Success returns a 200 response with the payload as body.
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, data)
}

// Created returns a 201 response with the payload as body.
func Created(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, data)
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	ctx.JSON(status, ErrorResponse{Code: code, Message: message})
}

// Abort maps err onto the response and stops the handler chain.
// Internal errors are logged and replaced by a generic message.
func Abort(ctx *gin.Context, err error) {
	appErr := AsAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		Logger.Error("request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("code", appErr.Code),
			zap.Error(err),
		)
	}
	ctx.AbortWithStatusJSON(appErr.Status, ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}
