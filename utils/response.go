package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessBody is the uniform envelope for successful API responses.
type SuccessBody struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ErrorBody is the uniform envelope for failed API responses.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success writes a 200 response with the standard envelope.
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, SuccessBody{Message: "success", Data: data})
}

// Created writes a 201 response with the standard envelope.
func Created(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, SuccessBody{Message: "success", Data: data})
}

// Error writes an error response carrying only a message string.
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, ErrorBody{Error: message})
}
