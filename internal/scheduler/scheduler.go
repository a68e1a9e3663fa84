package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/central-university-dev/go-content-notifier/internal/domain/models"

	"github.com/go-co-op/gocron"
)

type NotificationService interface {
	Check(ctx context.Context) (*models.CheckResult, error)
}

// Scheduler запускает проверку обновлений по интервалу внутри процесса.
// Используется, когда внешний cron недоступен; по умолчанию выключен.
type Scheduler struct {
	scheduler           *gocron.Scheduler
	notificationService NotificationService
	logger              *slog.Logger
	interval            time.Duration
}

func NewScheduler(notificationService NotificationService, interval time.Duration, logger *slog.Logger) *Scheduler {
	scheduler := gocron.NewScheduler(time.UTC)

	return &Scheduler{
		scheduler:           scheduler,
		notificationService: notificationService,
		logger:              logger,
		interval:            interval,
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("Запуск планировщика",
		"interval", s.interval.String(),
	)

	_, err := s.scheduler.Every(s.interval).Do(func() {
		s.logger.Info("Запуск проверки обновлений")

		ctx := context.Background()

		result, err := s.notificationService.Check(ctx)
		if err != nil {
			s.logger.Error("Ошибка при проверке обновлений",
				"error", err,
			)

			return
		}

		s.logger.Info("Проверка обновлений завершена",
			"newPosts", result.NewPosts,
			"newGuides", result.NewGuides,
			"subscribers", result.Subscribers,
		)
	})

	if err != nil {
		s.logger.Error("Ошибка при настройке планировщика",
			"error", err,
		)

		return
	}

	s.scheduler.StartAsync()
}

func (s *Scheduler) Stop() {
	s.logger.Info("Остановка планировщика")
	s.scheduler.Stop()
}
