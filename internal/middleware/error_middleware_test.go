package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	HandleAPIError(c, err)
	return recorder
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) *dto.ErrorDetail {
	t.Helper()
	var body dto.APIResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("error decoding body: %v", err)
	}
	if body.Error == nil {
		t.Fatal("expected an error payload")
	}
	return body.Error
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"course not found", apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"content not found", apperrors.ErrContentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"not enrolled", apperrors.ErrNotEnrolled, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"binding not found", apperrors.ErrRelationshipNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"binding conflict", apperrors.ErrRelationshipExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"completion conflict", apperrors.ErrCompletionExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"invalid role", apperrors.ErrInvalidRole, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"login locked", apperrors.ErrLoginLocked, http.StatusTooManyRequests, dto.ErrorCodeLoginLocked},
		{"account disabled", apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"unmapped error", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := respond(tc.err)
			if recorder.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, recorder.Code)
			}
			detail := decodeError(t, recorder)
			if detail.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, detail.Code)
			}
		})
	}
}

func TestHandleAPIErrorKeepsContextMessage(t *testing.T) {
	recorder := respond(apperrors.NewBadRequestError("content_id is missing"))

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	detail := decodeError(t, recorder)
	if detail.Message != "content_id is missing" {
		t.Fatalf("expected the contextual message, got %q", detail.Message)
	}
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	wrapped := apperrors.NewCustomError(apperrors.ErrInvalidPassword, "password is too short")
	recorder := respond(wrapped)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	detail := decodeError(t, recorder)
	if detail.Code != dto.ErrorCodeInvalidPassword || detail.Message != "password is too short" {
		t.Fatalf("unexpected payload %+v", detail)
	}
}
