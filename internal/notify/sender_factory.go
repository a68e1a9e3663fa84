package notify

import (
	"log/slog"
	"strings"

	"github.com/central-university-dev/go-content-notifier/internal/config"
	"github.com/central-university-dev/go-content-notifier/internal/domain/errors"
)

type SenderType string

const (
	WebPushTransport SenderType = "WEBPUSH"
	KafkaTransport   SenderType = "KAFKA"
)

type SenderFactory struct {
	config *config.Config
	logger *slog.Logger
}

func NewSenderFactory(config *config.Config, logger *slog.Logger) *SenderFactory {
	return &SenderFactory{
		config: config,
		logger: logger,
	}
}

func (f *SenderFactory) CreateSender() (PushSender, error) {
	primary, err := f.createTransport(SenderType(strings.ToUpper(f.config.PushTransport)))
	if err != nil {
		return nil, err
	}

	if !f.config.FallbackEnabled {
		return primary, nil
	}

	secondary, err := f.createTransport(SenderType(strings.ToUpper(f.config.FallbackTransport)))
	if err != nil {
		return nil, err
	}

	f.logger.Info("Резервный транспорт включён",
		"primary", f.config.PushTransport,
		"fallback", f.config.FallbackTransport,
	)

	return NewFallbackPushSender(primary, secondary, f.logger), nil
}

func (f *SenderFactory) createTransport(senderType SenderType) (PushSender, error) {
	f.logger.Info("Создание push-транспорта",
		"type", senderType,
	)

	switch senderType {
	case WebPushTransport:
		return NewWebPushSender(f.config, f.logger), nil
	case KafkaTransport:
		brokers := strings.Split(f.config.KafkaBrokers, ",")
		return NewKafkaPushSender(brokers, f.config.TopicPushDeliveries, f.config.TopicDeadLetterQueue, f.logger), nil
	default:
		return nil, &errors.ErrUnknownPushTransport{Transport: string(senderType)}
	}
}
