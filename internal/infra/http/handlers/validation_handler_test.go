package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockLeadDuplicityChecker
type MockLeadDuplicityChecker struct {
	mock.Mock
}

func (m *MockLeadDuplicityChecker) CountByEmail(ctx context.Context, email string) (int, error) {
	args := m.Called(ctx, email)
	return args.Int(0), args.Error(1)
}

func TestValidationHandlerNewEmail(t *testing.T) {
	mockChecker := new(MockLeadDuplicityChecker)
	mockChecker.On("CountByEmail", mock.Anything, "ada@example.com").Return(0, nil)

	handler := NewValidationHandler(mockChecker)

	req := httptest.NewRequest("POST", "/leads/validate", bytes.NewReader([]byte(`{"email":"ada@example.com"}`)))
	w := httptest.NewRecorder()

	handler.Handle(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidationHandlerExistingEmail(t *testing.T) {
	mockChecker := new(MockLeadDuplicityChecker)
	mockChecker.On("CountByEmail", mock.Anything, "ada@example.com").Return(1, nil)

	handler := NewValidationHandler(mockChecker)

	req := httptest.NewRequest("POST", "/leads/validate", bytes.NewReader([]byte(`{"email":"ada@example.com"}`)))
	w := httptest.NewRecorder()

	handler.Handle(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestValidationHandlerMissingEmail(t *testing.T) {
	mockChecker := new(MockLeadDuplicityChecker)
	handler := NewValidationHandler(mockChecker)

	req := httptest.NewRequest("POST", "/leads/validate", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()

	handler.Handle(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockChecker.AssertNotCalled(t, "CountByEmail", mock.Anything, mock.Anything)
}

func TestValidationHandlerDatabaseError(t *testing.T) {
	mockChecker := new(MockLeadDuplicityChecker)
	mockChecker.On("CountByEmail", mock.Anything, mock.Anything).Return(0, errors.New("db down"))

	handler := NewValidationHandler(mockChecker)

	req := httptest.NewRequest("POST", "/leads/validate", bytes.NewReader([]byte(`{"email":"ada@example.com"}`)))
	w := httptest.NewRecorder()

	handler.Handle(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
