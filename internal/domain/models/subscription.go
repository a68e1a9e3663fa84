package models

import "time"

// SubscriptionKeys — ключи шифрования push-транспорта, передаются без изменений.
type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// Subscription — регистрация одного браузера/устройства на push-уведомления.
// Endpoint является первичным ключом.
type Subscription struct {
	Endpoint     string           `json:"endpoint"`
	Keys         SubscriptionKeys `json:"keys"`
	SubscribedAt time.Time        `json:"subscribedAt"`
}
