package api

import (
	"net/http"

	"github.com/central-university-dev/go-content-notifier/internal/api/handlers"
)

func NewRouter(
	subscriptionHandler *handlers.SubscriptionHandler,
	triggerHandler *handlers.TriggerHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /subscriptions", subscriptionHandler.Subscribe)
	mux.HandleFunc("DELETE /subscriptions", subscriptionHandler.Unsubscribe)
	mux.HandleFunc("GET /subscriptions/count", subscriptionHandler.Count)
	mux.HandleFunc("POST /updates/check", triggerHandler.Check)

	return mux
}
