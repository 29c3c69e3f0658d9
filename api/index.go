package handler

import (
	"net/http"
	"rkhub/config"
	"rkhub/di"
	"rkhub/shared/logger"
	"rkhub/shared/timezone"
	"sync"
)

var (
	app     http.Handler
	appOnce sync.Once
)

// Handler is the serverless entrypoint. The service graph is built once per
// instance and reused across invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	appOnce.Do(func() {
		logger.InitLogger()

		cfg := config.Get()
		logger.Configure(cfg)
		timezone.Configure(cfg)

		app = di.InitializeService()
	})

	app.ServeHTTP(w, r)
}
