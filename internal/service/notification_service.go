package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/central-university-dev/go-content-notifier/internal/common/metrics"
	"github.com/central-university-dev/go-content-notifier/internal/detector"
	"github.com/central-university-dev/go-content-notifier/internal/domain/models"
)

type ContentSource interface {
	FetchPosts(ctx context.Context) ([]models.ContentRecord, error)

	FetchGuides(ctx context.Context) ([]models.ContentRecord, error)
}

type SubscriptionRepository interface {
	List(ctx context.Context) ([]*models.Subscription, error)

	Count(ctx context.Context) (int, error)
}

type UpdateDispatcher interface {
	NotifyNew(
		ctx context.Context,
		newPosts, newGuides []models.ContentRecord,
		subscribers []*models.Subscription,
	) (*models.DispatchReport, error)
}

// NotificationService выполняет один проход пайплайна:
// загрузка контента → поиск новых записей → обновление снапшота → рассылка.
type NotificationService struct {
	source     ContentSource
	registry   SubscriptionRepository
	dispatcher UpdateDispatcher
	snapshot   *ContentSnapshot
	logger     *slog.Logger
}

func NewNotificationService(
	source ContentSource,
	registry SubscriptionRepository,
	dispatcher UpdateDispatcher,
	snapshot *ContentSnapshot,
	logger *slog.Logger,
) *NotificationService {
	return &NotificationService{
		source:     source,
		registry:   registry,
		dispatcher: dispatcher,
		snapshot:   snapshot,
		logger:     logger,
	}
}

func (s *NotificationService) Check(ctx context.Context) (*models.CheckResult, error) {
	s.logger.Info("Запуск проверки обновлений контента")

	var (
		posts, guides       []models.ContentRecord
		postsErr, guidesErr error
	)

	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()

		posts, postsErr = s.source.FetchPosts(ctx)
	}()

	go func() {
		defer wg.Done()

		guides, guidesErr = s.source.FetchGuides(ctx)
	}()

	wg.Wait()

	// Сбой любой из загрузок прерывает проверку целиком: частичная рассылка недопустима.
	if postsErr != nil {
		s.logger.Error("Ошибка при загрузке постов",
			"error", postsErr,
		)
		metrics.RecordCheck("error")

		return nil, postsErr
	}

	if guidesErr != nil {
		s.logger.Error("Ошибка при загрузке гайдов",
			"error", guidesErr,
		)
		metrics.RecordCheck("error")

		return nil, guidesErr
	}

	postIDs := recordIDs(posts)
	guideIDs := recordIDs(guides)
	checkedAt := time.Now()

	// Снапшот заменяется до рассылки: сбой доставки не приводит к повторному
	// уведомлению на следующей проверке.
	prevPosts, prevGuides := s.snapshot.Swap(postIDs, guideIDs, checkedAt)

	newPosts := pickRecords(posts, detector.Detect(postIDs, prevPosts))
	newGuides := pickRecords(guides, detector.Detect(guideIDs, prevGuides))

	metrics.RecordNewContent(string(models.ContentTypePost), len(newPosts))
	metrics.RecordNewContent(string(models.ContentTypeGuide), len(newGuides))

	subscribers, err := s.registry.List(ctx)
	if err != nil {
		metrics.RecordCheck("error")
		return nil, err
	}

	result := &models.CheckResult{
		NewPosts:    len(newPosts),
		NewGuides:   len(newGuides),
		Subscribers: len(subscribers),
		LastChecked: checkedAt,
	}

	if len(newPosts) == 0 && len(newGuides) == 0 {
		s.logger.Info("Новых публикаций нет",
			"posts", len(posts),
			"guides", len(guides),
		)
		metrics.RecordCheck("success")

		return result, nil
	}

	s.logger.Info("Обнаружены новые публикации",
		"newPosts", len(newPosts),
		"newGuides", len(newGuides),
		"subscribers", len(subscribers),
	)

	report, err := s.dispatcher.NotifyNew(ctx, newPosts, newGuides, subscribers)
	if err != nil {
		s.logger.Error("Ошибка при рассылке уведомлений",
			"error", err,
		)
		metrics.RecordCheck("error")

		return nil, err
	}

	result.Dispatch = report

	metrics.RecordCheck("success")

	return result, nil
}

func recordIDs(records []models.ContentRecord) []string {
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}

	return ids
}

func pickRecords(records []models.ContentRecord, ids []string) []models.ContentRecord {
	idSet := detector.IDSet(ids)

	picked := make([]models.ContentRecord, 0, len(ids))

	for _, record := range records {
		if _, ok := idSet[record.ID]; ok {
			picked = append(picked, record)
		}
	}

	return picked
}
