package service_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/central-university-dev/go-content-notifier/internal/domain/errors"
	"github.com/central-university-dev/go-content-notifier/internal/domain/models"
	"github.com/central-university-dev/go-content-notifier/internal/registry"
	"github.com/central-university-dev/go-content-notifier/internal/service"
)

type MockContentSource struct {
	mock.Mock
}

func (m *MockContentSource) FetchPosts(ctx context.Context) ([]models.ContentRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.ContentRecord), args.Error(1)
}

func (m *MockContentSource) FetchGuides(ctx context.Context) ([]models.ContentRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.ContentRecord), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) NotifyNew(
	ctx context.Context,
	newPosts, newGuides []models.ContentRecord,
	subscribers []*models.Subscription,
) (*models.DispatchReport, error) {
	args := m.Called(ctx, newPosts, newGuides, subscribers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.DispatchReport), args.Error(1)
}

func mockTime() time.Time {
	return time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
}

func newTestRegistry(t *testing.T, endpoints ...string) *registry.SubscriptionRegistry {
	t.Helper()

	r := registry.NewSubscriptionRegistry()

	for _, endpoint := range endpoints {
		err := r.Save(context.Background(), &models.Subscription{
			Endpoint: endpoint,
			Keys:     models.SubscriptionKeys{P256dh: "p", Auth: "a"},
		})
		require.NoError(t, err)
	}

	return r
}

func TestNotificationService_FirstRunReportsEverythingNew(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	mockSource := new(MockContentSource)
	mockSource.On("FetchPosts", ctx).Return([]models.ContentRecord{{ID: "p1"}, {ID: "p2"}}, nil)
	mockSource.On("FetchGuides", ctx).Return([]models.ContentRecord{{ID: "g1"}}, nil)

	mockDispatcher := new(MockDispatcher)
	mockDispatcher.On("NotifyNew", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.DispatchReport{}, nil)

	svc := service.NewNotificationService(
		mockSource,
		newTestRegistry(t, "https://push.example/ep1"),
		mockDispatcher,
		service.NewContentSnapshot(),
		logger,
	)

	result, err := svc.Check(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, result.NewPosts)
	assert.Equal(t, 1, result.NewGuides)
	assert.Equal(t, 1, result.Subscribers)
	assert.False(t, result.LastChecked.IsZero())

	mockDispatcher.AssertExpectations(t)
}

func TestNotificationService_NoNewContentShortCircuit(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	posts := []models.ContentRecord{{ID: "p1"}, {ID: "p2"}}
	guides := []models.ContentRecord{{ID: "g1"}}

	mockSource := new(MockContentSource)
	mockSource.On("FetchPosts", ctx).Return(posts, nil)
	mockSource.On("FetchGuides", ctx).Return(guides, nil)

	mockDispatcher := new(MockDispatcher)
	mockDispatcher.On("NotifyNew", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.DispatchReport{}, nil).Once()

	svc := service.NewNotificationService(
		mockSource,
		newTestRegistry(t, "https://push.example/ep1"),
		mockDispatcher,
		service.NewContentSnapshot(),
		logger,
	)

	_, err := svc.Check(ctx)
	require.NoError(t, err)

	// Контент не изменился: рассылка не должна вызываться повторно.
	result, err := svc.Check(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0, result.NewPosts)
	assert.Equal(t, 0, result.NewGuides)
	assert.Nil(t, result.Dispatch)

	mockDispatcher.AssertNumberOfCalls(t, "NotifyNew", 1)
}

func TestNotificationService_SnapshotAdvancesDespiteDispatchFailure(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	mockSource := new(MockContentSource)
	mockSource.On("FetchPosts", ctx).
		Return([]models.ContentRecord{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}, nil)
	mockSource.On("FetchGuides", ctx).Return([]models.ContentRecord{}, nil)

	// Полный сбой доставки: все отправки упали, но отчёт вернулся без ошибки.
	failedReport := &models.DispatchReport{
		Notifications: []models.NotificationReport{
			{Total: 3, Successful: 0, Failed: 3},
		},
	}

	mockDispatcher := new(MockDispatcher)
	mockDispatcher.On("NotifyNew", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(failedReport, nil)

	snapshot := service.NewContentSnapshot()
	snapshot.Swap([]string{"p1", "p2"}, nil, mockTime())

	svc := service.NewNotificationService(
		mockSource,
		newTestRegistry(t, "https://push.example/ep1", "https://push.example/ep2", "https://push.example/ep3"),
		mockDispatcher,
		snapshot,
		logger,
	)

	first, err := svc.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.NewPosts)
	require.NotNil(t, first.Dispatch)
	assert.Equal(t, 3, first.Dispatch.Notifications[0].Failed)

	// Снапшот обновлён до рассылки, поэтому повторная проверка ничего не находит
	// и доставка не повторяется.
	second, err := svc.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.NewPosts)

	mockDispatcher.AssertNumberOfCalls(t, "NotifyNew", 1)
}

func TestNotificationService_FetchFailureAbortsCheck(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	sourceErr := &domainerrors.ErrSourceUnavailable{Source: "Posts", Cause: assert.AnError}

	mockSource := new(MockContentSource)
	mockSource.On("FetchPosts", ctx).Return(nil, sourceErr)
	mockSource.On("FetchGuides", ctx).Return([]models.ContentRecord{{ID: "g1"}}, nil)

	mockDispatcher := new(MockDispatcher)

	snapshot := service.NewContentSnapshot()

	svc := service.NewNotificationService(
		mockSource,
		newTestRegistry(t, "https://push.example/ep1"),
		mockDispatcher,
		snapshot,
		logger,
	)

	_, err := svc.Check(ctx)

	require.Error(t, err)
	require.ErrorIs(t, err, &domainerrors.ErrSourceUnavailable{})

	mockDispatcher.AssertNotCalled(t, "NotifyNew", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationService_RemovedRecordsNotReported(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	mockSource := new(MockContentSource)
	mockSource.On("FetchPosts", ctx).Return([]models.ContentRecord{{ID: "p2"}}, nil)
	mockSource.On("FetchGuides", ctx).Return([]models.ContentRecord{}, nil)

	mockDispatcher := new(MockDispatcher)

	snapshot := service.NewContentSnapshot()
	snapshot.Swap([]string{"p1", "p2", "p3"}, nil, mockTime())

	svc := service.NewNotificationService(
		mockSource,
		newTestRegistry(t),
		mockDispatcher,
		snapshot,
		logger,
	)

	result, err := svc.Check(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0, result.NewPosts)

	mockDispatcher.AssertNotCalled(t, "NotifyNew", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
