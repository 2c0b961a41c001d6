package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExposeInternalErrors controls whether 500 responses carry the raw error
// text. It is set once at startup from server.expose_errors.
var ExposeInternalErrors = true

// genericInternalError replaces the raw error text when it is hidden.
const genericInternalError = "Error interno del servidor"

// SuccessResponse writes data as-is with status 200.
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SuccessWithMessage writes {"message": message} plus any extra keys.
func SuccessWithMessage(c *gin.Context, message string, extra gin.H) {
	MessageResponse(c, http.StatusOK, message, extra)
}

// Created 201 with the new row id.
func Created(c *gin.Context, id uint, message string) {
	MessageResponse(c, http.StatusCreated, message, gin.H{"id": id})
}

// MessageResponse writes {"message": message} merged with extra.
func MessageResponse(c *gin.Context, code int, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(code, body)
}

// ErrorResponse writes {"error": message}.
func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message)
}

// Unauthorized 401. The client reads "message" on auth failures.
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": message})
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message)
}

// Conflict 409
func Conflict(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, message)
}

// InternalError records err on the context for the request logger and
// answers 500.
func InternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	message := genericInternalError
	if ExposeInternalErrors {
		message = err.Error()
	}
	ErrorResponse(c, http.StatusInternalServerError, message)
}
