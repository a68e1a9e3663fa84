package notify_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-content-notifier/internal/config"
	"github.com/central-university-dev/go-content-notifier/internal/domain/errors"
	"github.com/central-university-dev/go-content-notifier/internal/notify"
)

func TestSenderFactory_WebPush(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := &config.Config{PushTransport: "webpush"}

	sender, err := notify.NewSenderFactory(cfg, logger).CreateSender()

	require.NoError(t, err)
	assert.IsType(t, &notify.WebPushSender{}, sender)
}

func TestSenderFactory_UnknownTransport(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := &config.Config{PushTransport: "SMTP"}

	_, err := notify.NewSenderFactory(cfg, logger).CreateSender()

	require.Error(t, err)
	assert.ErrorContains(t, err, "неизвестный транспорт")

	var transportErr *errors.ErrUnknownPushTransport

	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "SMTP", transportErr.Transport)
}

func TestSenderFactory_FallbackWrapping(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := &config.Config{
		PushTransport:     "WEBPUSH",
		FallbackEnabled:   true,
		FallbackTransport: "Kafka",
		KafkaBrokers:      "localhost:9092",
	}

	sender, err := notify.NewSenderFactory(cfg, logger).CreateSender()

	require.NoError(t, err)
	assert.IsType(t, &notify.FallbackPushSender{}, sender)
}
