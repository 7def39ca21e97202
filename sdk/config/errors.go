// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error kinds. Every *APIError unwraps to exactly one of them.
var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrDiskPathConflict    = errors.New("disk path conflict")
	ErrPreconditionFailed  = errors.New("precondition failed")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrInternalServerError = errors.New("internal server error")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrInsufficientStorage = errors.New("insufficient storage")
	ErrRequest             = errors.New("request error")
)

var statusErrors = map[int]error{
	http.StatusUnauthorized:          ErrUnauthorized,
	http.StatusForbidden:             ErrForbidden,
	http.StatusNotFound:              ErrNotFound,
	http.StatusConflict:              ErrDiskPathConflict,
	http.StatusPreconditionFailed:    ErrPreconditionFailed,
	http.StatusRequestEntityTooLarge: ErrPayloadTooLarge,
	http.StatusInternalServerError:   ErrInternalServerError,
	http.StatusServiceUnavailable:    ErrServiceUnavailable,
	http.StatusInsufficientStorage:   ErrInsufficientStorage,
}

// APIError is a non-success answer of the Disk API.
type APIError struct {
	StatusCode int
	Kind       error
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (status %d): %s", e.Kind, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// KindForStatus returns the error kind mapped to code, ErrRequest when unmapped.
func KindForStatus(code int) error {
	if kind, ok := statusErrors[code]; ok {
		return kind
	}
	return ErrRequest
}

// NewAPIError classifies a failed response by its status code.
func NewAPIError(code int, message string) *APIError {
	return &APIError{StatusCode: code, Kind: KindForStatus(code), Message: message}
}

// folderExistsMessage is the text the API puts in a 409 when a folder is created twice.
const folderExistsMessage = "уже существует папка с таким именем"

// IsFolderAlreadyExists reports whether err is the conflict returned when creating a
// folder that is already there.
func IsFolderAlreadyExists(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return errors.Is(apiErr, ErrDiskPathConflict) && strings.Contains(apiErr.Message, folderExistsMessage)
}
