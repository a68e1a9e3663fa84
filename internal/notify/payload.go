package notify

import (
	"github.com/central-university-dev/go-content-notifier/internal/domain/models"
)

const (
	postNotificationTitle  = "Новый пост в блоге"
	guideNotificationTitle = "Новые гайды"

	postBodyFallback = "Вышел новый пост — загляните в блог"
	guideBody        = "Появились новые гайды в разделе гайдов"
)

// BuildNotifications формирует по одному уведомлению на каждую новую запись.
// Посты ведут на страницу поста, гайды — на общий список гайдов.
func BuildNotifications(newPosts, newGuides []models.ContentRecord, siteBaseURL string) []models.Notification {
	notifications := make([]models.Notification, 0, len(newPosts)+len(newGuides))

	for _, post := range newPosts {
		body := post.Title
		if body == "" {
			body = postBodyFallback
		}

		notifications = append(notifications, models.Notification{
			Title: postNotificationTitle,
			Body:  body,
			URL:   siteBaseURL + "/blog/" + post.ID,
		})
	}

	for range newGuides {
		notifications = append(notifications, models.Notification{
			Title: guideNotificationTitle,
			Body:  guideBody,
			URL:   siteBaseURL + "/guides",
		})
	}

	return notifications
}
