package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/central-university-dev/go-content-notifier/internal/common/metrics"
	"github.com/central-university-dev/go-content-notifier/internal/domain/models"
)

type SubscriptionRegistry interface {
	Save(ctx context.Context, subscription *models.Subscription) error

	Delete(ctx context.Context, endpoint string) error

	Count(ctx context.Context) (int, error)
}

type SubscriptionHandler struct {
	registry SubscriptionRegistry
	logger   *slog.Logger
}

func NewSubscriptionHandler(registry SubscriptionRegistry, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		registry: registry,
		logger:   logger,
	}
}

type subscribeRequest struct {
	Subscription *models.Subscription `json:"subscription"`
}

type unsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiErrorResponse{Description: "Некорректное тело запроса"})
		return
	}

	if req.Subscription == nil || req.Subscription.Endpoint == "" {
		writeJSON(w, http.StatusBadRequest, apiErrorResponse{Description: "Отсутствует обязательное поле: endpoint"})
		return
	}

	if req.Subscription.Keys.P256dh == "" || req.Subscription.Keys.Auth == "" {
		writeJSON(w, http.StatusBadRequest, apiErrorResponse{Description: "Отсутствует обязательное поле: keys"})
		return
	}

	if err := h.registry.Save(r.Context(), req.Subscription); err != nil {
		h.logger.Error("Ошибка при сохранении подписки",
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, apiErrorResponse{Description: "Ошибка при сохранении подписки"})

		return
	}

	count, err := h.registry.Count(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apiErrorResponse{Description: "Ошибка при подсчёте подписок"})
		return
	}

	metrics.UpdateSubscribersCount(count)

	h.logger.Info("Подписка зарегистрирована",
		"endpoint", req.Subscription.Endpoint,
		"subscribers", count,
	)

	writeJSON(w, http.StatusCreated, countResponse{Count: count})
}

func (h *SubscriptionHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req unsubscribeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiErrorResponse{Description: "Некорректное тело запроса"})
		return
	}

	if req.Endpoint == "" {
		writeJSON(w, http.StatusBadRequest, apiErrorResponse{Description: "Отсутствует обязательное поле: endpoint"})
		return
	}

	// Удаление неизвестного endpoint не является ошибкой.
	if err := h.registry.Delete(r.Context(), req.Endpoint); err != nil {
		h.logger.Error("Ошибка при удалении подписки",
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, apiErrorResponse{Description: "Ошибка при удалении подписки"})

		return
	}

	count, err := h.registry.Count(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apiErrorResponse{Description: "Ошибка при подсчёте подписок"})
		return
	}

	metrics.UpdateSubscribersCount(count)

	writeJSON(w, http.StatusOK, countResponse{Count: count})
}

func (h *SubscriptionHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.registry.Count(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apiErrorResponse{Description: "Ошибка при подсчёте подписок"})
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: count})
}
