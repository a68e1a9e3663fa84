package httputil

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/central-university-dev/go-content-notifier/internal/config"
	"github.com/central-university-dev/go-content-notifier/internal/domain/errors"
	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

// CreateResilientHTTPClient собирает resty-клиент с повторными попытками и circuit breaker.
// Используется для всех обращений к внешним сервисам (источник контента, push-транспорт).
func CreateResilientHTTPClient(cfg *config.Config, logger *slog.Logger, serviceName string) *resty.Client {
	client := resty.New()

	client.SetTimeout(cfg.ExternalRequestTimeout)

	client.SetRetryCount(cfg.RetryCount)
	client.SetRetryWaitTime(cfg.RetryBackoff)
	client.SetRetryMaxWaitTime(cfg.RetryBackoff * 5)

	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}

		for _, status := range cfg.RetryableStatusCodes {
			if r.StatusCode() == status {
				return true
			}
		}

		return false
	})

	client.SetTransport(newCircuitBreakerTransport(cfg, logger, serviceName, http.DefaultTransport))

	if logger != nil {
		client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			if resp.Request.Attempt > 1 {
				logger.Info("Повторная попытка HTTP запроса",
					"service", serviceName,
					"url", resp.Request.URL,
					"attempt", resp.Request.Attempt,
					"status", resp.StatusCode(),
				)
			}

			return nil
		})
	}

	return client
}

type circuitBreakerTransport struct {
	circuitBreaker    *gobreaker.CircuitBreaker
	originalTransport http.RoundTripper
	logger            *slog.Logger
	serviceName       string
}

func newCircuitBreakerTransport(
	cfg *config.Config,
	logger *slog.Logger,
	serviceName string,
	original http.RoundTripper,
) *circuitBreakerTransport {
	settings := gobreaker.Settings{
		Name:        serviceName + "_circuit_breaker",
		MaxRequests: uint32(cfg.CBPermittedCallsInHalfOpen), //nolint:gosec // G115: Значение из конфига
		Interval:    time.Duration(cfg.CBSlidingWindowSize) * time.Second,
		Timeout:     cfg.CBWaitDurationInOpenState,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= uint32(cfg.CBMinimumRequiredCalls) && //nolint:gosec // G115: Значение из конфига
				failureRatio >= float64(cfg.CBFailureRateThreshold)/100.0
		},
	}

	return &circuitBreakerTransport{
		circuitBreaker:    gobreaker.NewCircuitBreaker(settings),
		originalTransport: original,
		logger:            logger,
		serviceName:       serviceName,
	}
}

func (t *circuitBreakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	result, err := t.circuitBreaker.Execute(func() (interface{}, error) {
		resp, err := t.originalTransport.RoundTrip(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, &errors.HTTPError{StatusCode: resp.StatusCode}
		}

		return resp, nil
	})

	if err != nil {
		if err == gobreaker.ErrOpenState {
			if t.logger != nil {
				t.logger.Warn("Circuit breaker is open",
					"service", t.serviceName,
					"url", req.URL.String(),
				)
			}
		}

		return nil, err
	}

	return result.(*http.Response), nil
}
