package models

type ContentType string

const (
	ContentTypePost  ContentType = "post"
	ContentTypeGuide ContentType = "guide"
)

// ContentRecord — одна публикация из внешнего источника контента.
// Система только читает записи и никогда их не изменяет.
type ContentRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Notification — полезная нагрузка push-уведомления.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}
