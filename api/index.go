package handler

import (
	"net/http"
	"svim/config"
	"svim/di"
	"svim/shared/failure"
	"svim/shared/logger"
	"svim/transport/http/response"
	"sync"

	transport "svim/transport/http"
)

var (
	server  *transport.HTTP
	initErr error
	once    sync.Once
)

// Handler is the serverless entry point. The service graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.Configure(cfg)

		server, _, initErr = di.InitializeService()
	})

	if initErr != nil {
		response.WithError(w, failure.InternalError(initErr))

		return
	}

	server.ServeHTTP(w, r)
}
