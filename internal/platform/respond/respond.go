// Copyright (c) 2026 VideoTube. All rights reserved.

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// It ensures that every response (Success or Error) across the entire application
// follows a strict, predictable JSON envelope structure. This consistency is
// crucial for mobile apps and frontend SPAs to parse data robustly.
//
// Success envelope:
//
//	{"statusCode": 200, "data": {...}, "message": "...", "success": true}
//
// Failure envelope:
//
//	{"statusCode": 404, "message": "...", "errors": [...], "success": false}
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/videotube/videotube/internal/platform/apperr"
	"github.com/videotube/videotube/internal/platform/ctxkey"
)

// SuccessEnvelope is the JSON envelope for successful responses.
type SuccessEnvelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	StatusCode int                 `json:"statusCode"`
	Message    string              `json:"message"`
	Errors     []apperr.FieldError `json:"errors,omitempty"`
	Success    bool                `json:"success"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// Success writes a response with the given status, data and message wrapped in
// the standard success envelope. The envelope's statusCode mirrors the HTTP
// status so clients can branch without inspecting transport metadata.
func Success(writer http.ResponseWriter, statusCode int, data interface{}, message string) {
	JSON(writer, statusCode, SuccessEnvelope{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// OK writes a 200 OK success envelope.
func OK(writer http.ResponseWriter, data interface{}, message string) {
	Success(writer, http.StatusOK, data, message)
}

// Created writes a 201 Created success envelope.
func Created(writer http.ResponseWriter, data interface{}, message string) {
	Success(writer, http.StatusCreated, data, message)
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client for security.
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", getRequestIDFromContext(request)),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", getRequestIDFromContext(request)),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		StatusCode: appError.HTTPStatus,
		Message:    appError.Message,
		Errors:     appError.Details,
		Success:    false,
	})
}

// getLoggerFromContext extracts the per-request logger.
func getLoggerFromContext(request *http.Request) *slog.Logger {
	if logger, ok := request.Context().Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// getRequestIDFromContext extracts the X-Request-ID for log correlation.
func getRequestIDFromContext(request *http.Request) string {
	if id, ok := request.Context().Value(ctxkey.KeyRequestID).(string); ok {
		return id
	}
	return ""
}
