/*
Copyright 2025 Vejbill Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package recerr

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

type ErrorCode string

const (
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrUpstream     ErrorCode = "UPSTREAM"
	ErrInternal     ErrorCode = "INTERNAL"
)

// RecError is the typed error returned by the store and the Vejman client.
// Upstream errors halt the current equipment-type group; everything else is
// absorbed by the orchestrator.
type RecError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e RecError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code ErrorCode, message string, details interface{}) RecError {
	logrus.Error(details)
	return RecError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// IsUpstream reports whether err is an upstream fetch failure, which is
// fatal for the equipment-type group being processed.
func IsUpstream(err error) bool {
	var recErr RecError
	if errors.As(err, &recErr) {
		return recErr.Code == ErrUpstream
	}
	return false
}

// IsNotFound reports whether err represents a missing record.
func IsNotFound(err error) bool {
	var recErr RecError
	if errors.As(err, &recErr) {
		return recErr.Code == ErrNotFound
	}
	return false
}
