/*
Copyright 2024 Blnk Finance Authors.

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

package apierror_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/tcdirect/direct/internal/apierror"
)

func TestNewAPIError(t *testing.T) {
	details := errors.New("connection reset by peer")
	apiErr := apierror.NewAPIError(apierror.ErrInternalServer, "An error occurred while querying for challenges", details)

	assert.Equal(t, apierror.ErrInternalServer, apiErr.Code)
	assert.Equal(t, "An error occurred while querying for challenges", apiErr.Message)
	assert.Equal(t, details, apiErr.Details)
	assert.Equal(t, "INTERNAL_SERVER_ERROR: An error occurred while querying for challenges", apiErr.Error())
	assert.ErrorIs(t, apiErr, details)
}

func TestAPIError_DetailsNotSerialized(t *testing.T) {
	apiErr := apierror.NewAPIError(apierror.ErrInternalServer, "Something went wrong", errors.New("pq: relation does not exist"))

	body, err := json.Marshal(apiErr)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"code":"INTERNAL_SERVER_ERROR","message":"Something went wrong"}`, string(body))
}

func TestIsCode(t *testing.T) {
	err := pkgerrors.Wrap(apierror.BadRequest("Invalid clientId."), "validating")

	assert.True(t, apierror.IsCode(err, apierror.ErrBadRequest))
	assert.False(t, apierror.IsCode(err, apierror.ErrInternalServer))
	assert.False(t, apierror.IsCode(errors.New("plain"), apierror.ErrBadRequest))
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "NotFound Error",
			err:      apierror.NewAPIError(apierror.ErrNotFound, "Resource not found", nil),
			expected: http.StatusNotFound,
		},
		{
			name:     "BadRequest Error",
			err:      apierror.BadRequest("Invalid offset, must be 0 or more."),
			expected: http.StatusBadRequest,
		},
		{
			name:     "Unauthorized Error",
			err:      apierror.NewAPIError(apierror.ErrUnauthorized, "Unauthorized access.", nil),
			expected: http.StatusUnauthorized,
		},
		{
			name:     "InternalServerError",
			err:      apierror.NewAPIError(apierror.ErrInternalServer, "Internal server error", nil),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Wrapped BadRequest",
			err:      pkgerrors.Wrap(apierror.BadRequest("Invalid limit, -1 if you want to get all records."), "compile"),
			expected: http.StatusBadRequest,
		},
		{
			name:     "Unknown Error",
			err:      errors.New("Unknown error"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statusCode := apierror.MapErrorToHTTPStatus(tt.err)
			assert.Equal(t, tt.expected, statusCode)
		})
	}
}
