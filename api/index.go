package handler

import (
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"net/http"
	"sync"
)

var (
	app  http.Handler
	once sync.Once
)

// Handler serves the whole API from a single serverless function. The
// application graph is built on the first request and reused afterwards.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.Init(cfg)

		app = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	app.ServeHTTP(w, r)
}
