package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/central-university-dev/go-content-notifier/internal/domain/models"
	"github.com/segmentio/kafka-go"
)

// KafkaPushSender публикует уведомления в Kafka для доставки внешним воркером.
type KafkaPushSender struct {
	producer    *kafka.Writer
	dlqProducer *kafka.Writer
	logger      *slog.Logger
	topic       string
	dlqTopic    string
}

type pushDeliveryMessage struct {
	Endpoint     string              `json:"endpoint"`
	Notification models.Notification `json:"notification"`
}

func NewKafkaPushSender(brokers []string, topic, dlqTopic string, logger *slog.Logger) *KafkaPushSender {
	producer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		Logger:       kafka.LoggerFunc(logger.Debug),
		ErrorLogger:  kafka.LoggerFunc(logger.Error),
	}

	dlqProducer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        dlqTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		Logger:       kafka.LoggerFunc(logger.Debug),
		ErrorLogger:  kafka.LoggerFunc(logger.Error),
	}

	return &KafkaPushSender{
		producer:    producer,
		dlqProducer: dlqProducer,
		logger:      logger,
		topic:       topic,
		dlqTopic:    dlqTopic,
	}
}

func (s *KafkaPushSender) Send(
	ctx context.Context,
	subscription *models.Subscription,
	notification *models.Notification,
) error {
	message := pushDeliveryMessage{
		Endpoint:     subscription.Endpoint,
		Notification: *notification,
	}

	value, err := json.Marshal(message)
	if err != nil {
		s.logger.Error("Ошибка при сериализации сообщения",
			"error", err,
		)

		return fmt.Errorf("ошибка при сериализации сообщения: %w", err)
	}

	err = s.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(subscription.Endpoint),
		Value: value,
		Time:  time.Now(),
	})

	if err != nil {
		s.logger.Error("Ошибка при отправке сообщения в Kafka",
			"error", err,
			"topic", s.topic,
		)

		return fmt.Errorf("ошибка при отправке сообщения в Kafka: %w", err)
	}

	return nil
}

func (s *KafkaPushSender) SendToDLQ(ctx context.Context, message []byte, errMsg string) error {
	s.logger.Info("Отправка сообщения в DLQ",
		"error", errMsg,
		"topic", s.dlqTopic,
	)

	err := s.dlqProducer.WriteMessages(ctx, kafka.Message{
		Key:   []byte("error"),
		Value: message,
		Headers: []kafka.Header{
			{Key: "error", Value: []byte(errMsg)},
			{Key: "timestamp", Value: []byte(time.Now().Format(time.RFC3339))},
		},
		Time: time.Now(),
	})

	if err != nil {
		s.logger.Error("Ошибка при отправке сообщения в DLQ",
			"error", err,
		)

		return fmt.Errorf("ошибка при отправке сообщения в DLQ: %w", err)
	}

	return nil
}

func (s *KafkaPushSender) Close() error {
	if err := s.producer.Close(); err != nil {
		return err
	}

	return s.dlqProducer.Close()
}
