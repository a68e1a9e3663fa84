package handlers_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-content-notifier/internal/api/handlers"
	domainerrors "github.com/central-university-dev/go-content-notifier/internal/domain/errors"
	"github.com/central-university-dev/go-content-notifier/internal/domain/models"
)

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Check(ctx context.Context) (*models.CheckResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CheckResult), args.Error(1)
}

func TestTriggerHandler_MissingToken(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	mockService := new(MockNotificationService)

	handler := handlers.NewTriggerHandler(mockService, "secret", logger)

	req := httptest.NewRequest(http.MethodPost, "/updates/check", http.NoBody)
	rec := httptest.NewRecorder()

	handler.Check(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockService.AssertNotCalled(t, "Check", mock.Anything)
}

func TestTriggerHandler_WrongToken(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	mockService := new(MockNotificationService)

	handler := handlers.NewTriggerHandler(mockService, "secret", logger)

	req := httptest.NewRequest(http.MethodPost, "/updates/check", http.NoBody)
	req.Header.Set("Authorization", "Bearer wrong")

	rec := httptest.NewRecorder()

	handler.Check(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockService.AssertNotCalled(t, "Check", mock.Anything)
}

func TestTriggerHandler_EmptyConfiguredSecretRejectsEveryone(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	mockService := new(MockNotificationService)

	handler := handlers.NewTriggerHandler(mockService, "", logger)

	req := httptest.NewRequest(http.MethodPost, "/updates/check", http.NoBody)
	req.Header.Set("Authorization", "Bearer ")

	rec := httptest.NewRecorder()

	handler.Check(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockService.AssertNotCalled(t, "Check", mock.Anything)
}

func TestTriggerHandler_Success(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	lastChecked := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	mockService := new(MockNotificationService)
	mockService.On("Check", mock.Anything).Return(&models.CheckResult{
		NewPosts:    2,
		NewGuides:   1,
		Subscribers: 5,
		LastChecked: lastChecked,
	}, nil)

	handler := handlers.NewTriggerHandler(mockService, "secret", logger)

	req := httptest.NewRequest(http.MethodPost, "/updates/check", http.NoBody)
	req.Header.Set("Authorization", "Bearer secret")

	rec := httptest.NewRecorder()

	handler.Check(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		NewPosts    int       `json:"newPosts"`
		NewGuides   int       `json:"newGuides"`
		Subscribers int       `json:"subscribers"`
		LastChecked time.Time `json:"lastChecked"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.NewPosts)
	assert.Equal(t, 1, body.NewGuides)
	assert.Equal(t, 5, body.Subscribers)
	assert.Equal(t, lastChecked, body.LastChecked)

	mockService.AssertExpectations(t)
}

func TestTriggerHandler_SourceUnavailable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	mockService := new(MockNotificationService)
	mockService.On("Check", mock.Anything).
		Return(nil, &domainerrors.ErrSourceUnavailable{Source: "Posts", Cause: assert.AnError})

	handler := handlers.NewTriggerHandler(mockService, "secret", logger)

	req := httptest.NewRequest(http.MethodPost, "/updates/check", http.NoBody)
	req.Header.Set("Authorization", "Bearer secret")

	rec := httptest.NewRecorder()

	handler.Check(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
