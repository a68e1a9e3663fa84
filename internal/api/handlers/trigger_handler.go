package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	domainerrors "github.com/central-university-dev/go-content-notifier/internal/domain/errors"
	"github.com/central-university-dev/go-content-notifier/internal/domain/models"
)

type NotificationService interface {
	Check(ctx context.Context) (*models.CheckResult, error)
}

// TriggerHandler — endpoint для внешнего планировщика (cron).
// Авторизация по общему секрету: без валидного токена проверка не запускается.
type TriggerHandler struct {
	service NotificationService
	secret  string
	logger  *slog.Logger
}

func NewTriggerHandler(service NotificationService, secret string, logger *slog.Logger) *TriggerHandler {
	return &TriggerHandler{
		service: service,
		secret:  secret,
		logger:  logger,
	}
}

func (h *TriggerHandler) Check(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		h.logger.Warn("Отклонён запуск проверки: недействительный токен")
		writeJSON(w, http.StatusUnauthorized, apiErrorResponse{Description: "Недействительный токен авторизации"})

		return
	}

	result, err := h.service.Check(r.Context())
	if err != nil {
		var sourceErr *domainerrors.ErrSourceUnavailable
		if errors.As(err, &sourceErr) {
			writeJSON(w, http.StatusBadGateway, apiErrorResponse{Description: "Источник контента недоступен"})
			return
		}

		writeJSON(w, http.StatusInternalServerError, apiErrorResponse{Description: "Ошибка при проверке обновлений"})

		return
	}

	writeJSON(w, http.StatusOK, checkResponse{
		NewPosts:    result.NewPosts,
		NewGuides:   result.NewGuides,
		Subscribers: result.Subscribers,
		LastChecked: result.LastChecked,
	})
}

func (h *TriggerHandler) authorized(r *http.Request) bool {
	if h.secret == "" {
		return false
	}

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	return token == h.secret
}
