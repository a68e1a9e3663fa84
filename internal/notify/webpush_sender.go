package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/central-university-dev/go-content-notifier/internal/config"
	"github.com/central-university-dev/go-content-notifier/internal/domain/errors"
	"github.com/central-university-dev/go-content-notifier/internal/domain/models"
)

// WebPushSender доставляет уведомления по стандартному Web Push протоколу с VAPID.
type WebPushSender struct {
	ttl        int
	subscriber string
	publicKey  string
	privateKey string
	logger     *slog.Logger
}

func NewWebPushSender(cfg *config.Config, logger *slog.Logger) *WebPushSender {
	return &WebPushSender{
		ttl:        cfg.PushTTL,
		subscriber: cfg.VAPIDSubscriber,
		publicKey:  cfg.VAPIDPublicKey,
		privateKey: cfg.VAPIDPrivateKey,
		logger:     logger,
	}
}

func (s *WebPushSender) Send(
	ctx context.Context,
	subscription *models.Subscription,
	notification *models.Notification,
) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("ошибка при сериализации уведомления: %w", err)
	}

	pushSubscription := &webpush.Subscription{
		Endpoint: subscription.Endpoint,
		Keys: webpush.Keys{
			P256dh: subscription.Keys.P256dh,
			Auth:   subscription.Keys.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, pushSubscription, &webpush.Options{
		TTL:             s.ttl,
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
	})
	if err != nil {
		s.logger.Error("Ошибка при отправке push-уведомления",
			"endpoint", subscription.Endpoint,
			"error", err,
		)

		return fmt.Errorf("ошибка при отправке push-уведомления: %w", err)
	}

	defer resp.Body.Close()

	// Недействительный и просроченный endpoint не различаются: и то и другое — сбой доставки.
	if resp.StatusCode >= http.StatusBadRequest {
		s.logger.Warn("Push-транспорт отклонил доставку",
			"endpoint", subscription.Endpoint,
			"status", resp.StatusCode,
		)

		return &errors.HTTPError{StatusCode: resp.StatusCode}
	}

	return nil
}
