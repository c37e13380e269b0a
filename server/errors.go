// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aph-tools/aph/address"
)

// RequestError is an error with the HTTP status it should be reported with.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func badRequest(message string, err error) *RequestError {
	return &RequestError{Status: http.StatusBadRequest, Message: message, Err: err}
}

// classify maps err to a RequestError.
func classify(err error) *RequestError {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}

	switch {
	case errors.Is(err, address.ErrNoParent), errors.Is(err, address.ErrNoGeometry):
		return badRequest("invalid parent feature", err)
	case errors.Is(err, address.ErrInvalidHouseNumber):
		return &RequestError{Status: http.StatusUnprocessableEntity, Message: "house number rejected", Err: err}
	default:
		return &RequestError{Status: http.StatusInternalServerError, Message: "internal error", Err: err}
	}
}
