// Package response writes the JSON bodies the storefront API returns.
//
// Success payloads are written bare (an entity, a list, or {"message": ...});
// validation failures are the field → message map itself.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// MessageBody is the {"message": ...} shape used for confirmations and
// not-found / conflict errors.
type MessageBody struct {
	Message string `json:"message"`
}

// CreatedBody confirms a create and carries the new identifier.
type CreatedBody struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

// InternalErrorMessage is the body sent for any unexpected failure.
const InternalErrorMessage = "Internal server error"

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("response: encode failed", "error", err)
	}
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, MessageBody{Message: msg})
}

// Created writes 201 {"message": msg, "id": id}.
func Created(w http.ResponseWriter, msg string, id uint) {
	JSON(w, http.StatusCreated, CreatedBody{Message: msg, ID: id})
}

// ValidationError writes 400 with the field-level error map as the body.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	JSON(w, http.StatusBadRequest, errs)
}

// NotFound writes 404 {"message": msg}.
func NotFound(w http.ResponseWriter, msg string) {
	Message(w, http.StatusNotFound, msg)
}

// Conflict writes 409 {"message": msg}.
func Conflict(w http.ResponseWriter, msg string) {
	Message(w, http.StatusConflict, msg)
}

// InternalError writes 500 {"message": "Internal server error"}.
func InternalError(w http.ResponseWriter) {
	Message(w, http.StatusInternalServerError, InternalErrorMessage)
}
