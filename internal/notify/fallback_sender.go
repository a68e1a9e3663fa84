package notify

import (
	"context"
	"log/slog"

	"github.com/central-university-dev/go-content-notifier/internal/domain/models"
)

// FallbackPushSender пробует основной транспорт и при его сбое — резервный.
type FallbackPushSender struct {
	primary   PushSender
	secondary PushSender
	logger    *slog.Logger
}

func NewFallbackPushSender(primary, secondary PushSender, logger *slog.Logger) *FallbackPushSender {
	return &FallbackPushSender{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

func (s *FallbackPushSender) Send(
	ctx context.Context,
	subscription *models.Subscription,
	notification *models.Notification,
) error {
	err := s.primary.Send(ctx, subscription, notification)
	if err == nil {
		return nil
	}

	s.logger.Warn("Основной транспорт недоступен, переключаемся на резервный",
		"primaryError", err,
		"endpoint", subscription.Endpoint,
	)

	fallbackErr := s.secondary.Send(ctx, subscription, notification)
	if fallbackErr != nil {
		return err
	}

	s.logger.Info("Уведомление успешно отправлено через резервный транспорт",
		"endpoint", subscription.Endpoint,
	)

	return nil
}
