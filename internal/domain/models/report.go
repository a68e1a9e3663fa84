package models

import "time"

// NotificationReport — агрегированный итог рассылки одного уведомления.
type NotificationReport struct {
	Title      string `json:"title"`
	Total      int    `json:"total"`
	Successful int    `json:"successful"`
	Failed     int    `json:"failed"`
}

// DispatchReport — итоги рассылки всех уведомлений за одну проверку.
type DispatchReport struct {
	Notifications []NotificationReport `json:"notifications"`
}

// CheckResult — итог одной проверки обновлений контента.
type CheckResult struct {
	NewPosts    int             `json:"newPosts"`
	NewGuides   int             `json:"newGuides"`
	Subscribers int             `json:"subscribers"`
	LastChecked time.Time       `json:"lastChecked"`
	Dispatch    *DispatchReport `json:"dispatch,omitempty"`
}
