package registry

import (
	"context"
	"sync"
	"time"

	"github.com/central-university-dev/go-content-notifier/internal/domain/models"
)

// SubscriptionRegistry хранит текущие push-подписки в памяти процесса.
// Endpoint выступает первичным ключом: повторная подписка с тем же endpoint
// перезаписывает ключи и время регистрации. Хранилище теряется при перезапуске.
type SubscriptionRegistry struct {
	subscriptions map[string]*models.Subscription
	order         []string
	mu            sync.RWMutex
}

func NewSubscriptionRegistry() *SubscriptionRegistry {
	return &SubscriptionRegistry{
		subscriptions: make(map[string]*models.Subscription),
		order:         make([]string, 0),
	}
}

func (r *SubscriptionRegistry) Save(_ context.Context, subscription *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *subscription
	if stored.SubscribedAt.IsZero() {
		stored.SubscribedAt = time.Now()
	}

	if _, exists := r.subscriptions[stored.Endpoint]; !exists {
		r.order = append(r.order, stored.Endpoint)
	}

	r.subscriptions[stored.Endpoint] = &stored

	return nil
}

func (r *SubscriptionRegistry) Delete(_ context.Context, endpoint string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.subscriptions[endpoint]; !exists {
		return nil
	}

	delete(r.subscriptions, endpoint)

	for i, stored := range r.order {
		if stored == endpoint {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

// List возвращает копии всех подписок в порядке регистрации.
func (r *SubscriptionRegistry) List(_ context.Context) ([]*models.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subscriptions := make([]*models.Subscription, 0, len(r.order))

	for _, endpoint := range r.order {
		stored := *r.subscriptions[endpoint]
		subscriptions = append(subscriptions, &stored)
	}

	return subscriptions, nil
}

func (r *SubscriptionRegistry) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.subscriptions), nil
}
