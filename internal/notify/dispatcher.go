package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/central-university-dev/go-content-notifier/internal/common/metrics"
	"github.com/central-university-dev/go-content-notifier/internal/domain/models"
)

// PushSender отправляет одно уведомление на один endpoint подписки.
type PushSender interface {
	Send(ctx context.Context, subscription *models.Subscription, notification *models.Notification) error
}

// Dispatcher рассылает уведомления о новом контенте всем подписчикам.
type Dispatcher struct {
	sender      PushSender
	siteBaseURL string
	logger      *slog.Logger
}

func NewDispatcher(sender PushSender, siteBaseURL string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sender:      sender,
		siteBaseURL: siteBaseURL,
		logger:      logger,
	}
}

// NotifyNew отправляет каждое сформированное уведомление каждому подписчику.
// Отправки выполняются независимо: ошибка одной доставки не прерывает остальные,
// повторных попыток нет, подписки при сбое не удаляются.
func (d *Dispatcher) NotifyNew(
	ctx context.Context,
	newPosts, newGuides []models.ContentRecord,
	subscribers []*models.Subscription,
) (*models.DispatchReport, error) {
	notifications := BuildNotifications(newPosts, newGuides, d.siteBaseURL)

	d.logger.Info("Начало рассылки уведомлений",
		"notifications", len(notifications),
		"subscribers", len(subscribers),
	)

	report := &models.DispatchReport{
		Notifications: make([]models.NotificationReport, 0, len(notifications)),
	}

	for i := range notifications {
		notificationReport := d.fanOut(ctx, &notifications[i], subscribers)
		report.Notifications = append(report.Notifications, notificationReport)
	}

	return report, nil
}

func (d *Dispatcher) fanOut(
	ctx context.Context,
	notification *models.Notification,
	subscribers []*models.Subscription,
) models.NotificationReport {
	results := make(chan error, len(subscribers))

	wg := sync.WaitGroup{}

	for _, subscriber := range subscribers {
		wg.Add(1)

		go func(subscriber *models.Subscription) {
			defer wg.Done()
			results <- d.sender.Send(ctx, subscriber, notification)
		}(subscriber)
	}

	wg.Wait()
	close(results)

	report := models.NotificationReport{
		Title: notification.Title,
		Total: len(subscribers),
	}

	for err := range results {
		if err != nil {
			report.Failed++

			metrics.RecordPushSend("error")
		} else {
			report.Successful++

			metrics.RecordPushSend("success")
		}
	}

	d.logger.Info("Рассылка уведомления завершена",
		"title", notification.Title,
		"total", report.Total,
		"successful", report.Successful,
		"failed", report.Failed,
	)

	return report
}
